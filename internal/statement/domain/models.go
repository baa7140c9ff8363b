// Package domain holds the persisted statement models: the idempotent
// projection of rating results keyed by (tenant, meter, period).
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
	"gorm.io/gorm"
)

// MeterStatement is one meter's stored bill for one period. Re-running
// the rating engine replaces the row in place.
type MeterStatement struct {
	ID              snowflake.ID `gorm:"primaryKey"`
	TenantID        snowflake.ID `gorm:"not null;uniqueIndex:idx_meter_statement,priority:1"`
	MeterID         snowflake.ID `gorm:"not null;uniqueIndex:idx_meter_statement,priority:2"`
	Period          string       `gorm:"type:text;not null;uniqueIndex:idx_meter_statement,priority:3"`
	UtilityType     string       `gorm:"type:text;not null"`
	PrevDate        time.Time
	PrevReading     int64
	CurrDate        time.Time
	CurrReading     int64
	Days            int
	Consumption     int64
	WSTotalCents    int64
	SDTotalCents    int64
	ElecTotalCents  int64
	WaterTotalCents int64
	TotalDueCents   int64 `gorm:"not null"`
	UpdatedAt       time.Time
}

func (MeterStatement) TableName() string { return "meter_statements" }

// StatementLine is one stored charge line; the set for a statement is
// replaced wholesale on every run.
type StatementLine struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	StatementID snowflake.ID `gorm:"not null;index"`
	Code        string       `gorm:"type:text"`
	Description string       `gorm:"type:text;not null"`
	GroupTag    string       `gorm:"type:text;not null"`
	Quantity    *float64
	RateCents   *int64
	AmountCents *int64
	Rank        int `gorm:"not null"`
}

func (StatementLine) TableName() string { return "statement_lines" }

// TenantStatement aggregates a tenant's meters for a period, keyed
// (tenant, period).
type TenantStatement struct {
	ID              snowflake.ID `gorm:"primaryKey"`
	TenantID        snowflake.ID `gorm:"not null;uniqueIndex:idx_tenant_statement,priority:1"`
	Period          string       `gorm:"type:text;not null;uniqueIndex:idx_tenant_statement,priority:2"`
	ElecTotalCents  int64
	WaterTotalCents int64
	DueToMetroCents int64 `gorm:"not null"`
	UpdatedAt       time.Time
}

func (TenantStatement) TableName() string { return "tenant_statements" }

type Repository interface {
	UpsertMeterStatement(ctx context.Context, db *gorm.DB, stmt *MeterStatement) (snowflake.ID, error)
	ReplaceLines(ctx context.Context, db *gorm.DB, statementID snowflake.ID, lines []StatementLine) error
	UpsertTenantStatement(ctx context.Context, db *gorm.DB, stmt *TenantStatement) error
	FindTenantStatement(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, period string) (*TenantStatement, error)
	ListMeterStatements(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, period string) ([]MeterStatement, error)
	ListLines(ctx context.Context, db *gorm.DB, statementID snowflake.ID) ([]StatementLine, error)
}

// Service persists a completed rating run idempotently.
type Service interface {
	Commit(ctx context.Context, run *ratingdomain.RunResult) error
}
