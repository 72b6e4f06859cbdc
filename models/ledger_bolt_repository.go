package models

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	bolt "go.etcd.io/bbolt"
)

// LedgerKey is the single storage key holding the whole ledger.
const LedgerKey = "balanco-mensal"

var (
	ledgerBucket = []byte("balanco")
	json         = jsoniter.ConfigCompatibleWithStandardLibrary
)

// BoltLedgerRepository keeps the ledger as one JSON array under LedgerKey.
type BoltLedgerRepository struct {
	db  *bolt.DB
	key []byte
}

// OpenBoltLedgerRepository opens (or creates) the bbolt file at path.
func OpenBoltLedgerRepository(path string) (*BoltLedgerRepository, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open ledger file %s: %w", path, err)
	}
	return NewBoltLedgerRepository(db), nil
}

func NewBoltLedgerRepository(db *bolt.DB) *BoltLedgerRepository {
	return &BoltLedgerRepository{db: db, key: []byte(LedgerKey)}
}

// Load reads the ledger. A missing key is an empty ledger; an undecodable value is an
// empty ledger together with ErrCorruptLedger.
func (r *BoltLedgerRepository) Load(ctx context.Context) (*Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(ledgerBucket)
		if b == nil {
			return nil
		}
		if v := b.Get(r.key); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if len(raw) == 0 {
		return NewLedger(), nil
	}

	var records []ProductRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return NewLedger(), fmt.Errorf("%w: %v", ErrCorruptLedger, err)
	}
	return NewLedger(records...), nil
}

// Save serializes the full ledger under LedgerKey.
func (r *BoltLedgerRepository) Save(ctx context.Context, l *Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(l.Records())
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	err = r.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(ledgerBucket)
		if err != nil {
			return err
		}
		return b.Put(r.key, data)
	})
	if err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

func (r *BoltLedgerRepository) Close() error {
	return r.db.Close()
}
