package models

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newTestBoltRepo(t *testing.T) *BoltLedgerRepository {
	t.Helper()
	repo, err := OpenBoltLedgerRepository(filepath.Join(t.TempDir(), "balanco.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestBoltLedgerRepositoryMissingKey(t *testing.T) {
	repo := newTestBoltRepo(t)

	l, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestBoltLedgerRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestBoltRepo(t)

	l := NewLedger()
	l.Add("Vinho Tinto", Quantities{SectorAdegaSalao: dec("3")})
	l.Add("vinho tinto", Quantities{SectorAdegaSalao: dec("2")})
	l.Add("Farinha", Quantities{SectorPesados: dec("2.5")})
	require.NoError(t, repo.Save(ctx, l))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Vinho Tinto", "Farinha"}, names(loaded))

	rec, ok := loaded.Find("VINHO TINTO")
	require.True(t, ok)
	assert.True(t, dec("5").Equal(rec.Quantity(SectorAdegaSalao)))
	farinha, _ := loaded.Find("farinha")
	assert.True(t, dec("2.5").Equal(farinha.Quantity(SectorPesados)))
}

func TestBoltLedgerRepositoryCorruptValue(t *testing.T) {
	repo := newTestBoltRepo(t)
	err := repo.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(ledgerBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(LedgerKey), []byte("{not json"))
	})
	require.NoError(t, err)

	l, err := repo.Load(context.Background())
	assert.True(t, errors.Is(err, ErrCorruptLedger))
	require.NotNil(t, l)
	assert.Equal(t, 0, l.Len())
}

func TestBoltLedgerRepositoryCanceledContext(t *testing.T) {
	repo := newTestBoltRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Save(ctx, NewLedger()), context.Canceled)
}

func names(l *Ledger) []string {
	var out []string
	for _, r := range l.Records() {
		out = append(out, r.Name)
	}
	return out
}
