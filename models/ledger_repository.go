package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrCorruptLedger is returned with an empty ledger when the stored data cannot be
// decoded.
var ErrCorruptLedger = errors.New("stored ledger is corrupt")

// LedgerProduct is the relational form of a ProductRecord.
type LedgerProduct struct {
	ID         uint             `gorm:"primaryKey"`
	Name       string           `gorm:"not null"`
	NameKey    string           `gorm:"uniqueIndex;not null"`
	Position   int              `gorm:"not null"`
	Quantities []LedgerQuantity `gorm:"foreignKey:ProductID"`
}

func (p *LedgerProduct) TableName() string {
	return "product_records"
}

// LedgerQuantity is one sector amount of a LedgerProduct.
type LedgerQuantity struct {
	ID        uint            `gorm:"primaryKey"`
	ProductID uint            `gorm:"index;not null"`
	Sector    SectorID        `gorm:"size:32;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,3);not null"`
}

func (q *LedgerQuantity) TableName() string {
	return "product_quantities"
}

// GormLedgerRepository stores the ledger in two relational tables.
// Save always rewrites the whole ledger in one transaction.
type GormLedgerRepository struct {
	db *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{
		db: db,
	}
}

// Migrate creates or updates the ledger tables.
func (r *GormLedgerRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&LedgerProduct{}, &LedgerQuantity{})
}

func (r *GormLedgerRepository) Load(ctx context.Context) (*Ledger, error) {
	var rows []LedgerProduct
	if err := r.db.WithContext(ctx).
		Preload("Quantities").
		Order("position").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	records := make([]ProductRecord, len(rows))
	for i, row := range rows {
		q := make(Quantities, len(row.Quantities))
		for _, lq := range row.Quantities {
			q[lq.Sector] = lq.Amount
		}
		records[i] = ProductRecord{Name: row.Name, Quantities: q}
	}
	return NewLedger(records...), nil
}

func (r *GormLedgerRepository) Save(ctx context.Context, l *Ledger) error {
	records := l.Records()
	rows := make([]LedgerProduct, len(records))
	for i, rec := range records {
		row := LedgerProduct{Name: rec.Name, NameKey: rec.Key(), Position: i}
		for id, amount := range rec.Quantities {
			row.Quantities = append(row.Quantities, LedgerQuantity{Sector: id, Amount: amount})
		}
		rows[i] = row
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&LedgerQuantity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&LedgerProduct{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}
