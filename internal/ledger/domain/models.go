// Package domain holds the tenant ledger entry posted after a rating run.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const (
	KindCharge = "charge"

	// DueToMetroDescription keys the single charge posted per tenant per
	// period; reposting the same run replaces nothing and adds nothing.
	DueToMetroDescription = "Due to Metro"
)

// Entry is one signed ledger row; charges are positive.
type Entry struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	TenantID    snowflake.ID `gorm:"not null;uniqueIndex:idx_ledger_charge,priority:1"`
	Period      string       `gorm:"type:text;not null;uniqueIndex:idx_ledger_charge,priority:2"`
	Description string       `gorm:"type:text;not null;uniqueIndex:idx_ledger_charge,priority:3"`
	Kind        string       `gorm:"type:text;not null"`
	AmountCents int64        `gorm:"not null"`
	Ref         string       `gorm:"type:text"`
	TxnDate     time.Time    `gorm:"not null"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Entry) TableName() string { return "tenant_ledger_entries" }

type Repository interface {
	// UpsertCharge posts a charge keyed (tenant, period, description),
	// updating the amount when the run is replayed.
	UpsertCharge(ctx context.Context, db *gorm.DB, entry *Entry) error
	ListByTenant(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]Entry, error)
}
