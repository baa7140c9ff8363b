// Package domain holds the per-period consumption read model the rating
// engine consumes. Rows are produced by the metering collaborator.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// ConsumptionRecord is one meter's consumption for one billing period,
// derived from two readings. Quantity is kL for water-family meters and
// kWh for electricity.
type ConsumptionRecord struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	MeterID     snowflake.ID `gorm:"not null;uniqueIndex:idx_consumption_meter_period,priority:1"`
	Period      string       `gorm:"type:text;not null;uniqueIndex:idx_consumption_meter_period,priority:2"`
	PrevDate    time.Time    `gorm:"not null"`
	PrevReading int64        `gorm:"not null"`
	CurrDate    time.Time    `gorm:"not null"`
	CurrReading int64        `gorm:"not null"`
	Days        int          `gorm:"not null"`
	Consumption int64        `gorm:"not null"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ConsumptionRecord) TableName() string { return "consumption_records" }

// MeterConsumptionRow joins a consumption record with its meter; this is
// the orchestrator's unit of work. Electricity meters sort first so the
// statement order matches the metro account layout.
type MeterConsumptionRow struct {
	MeterID     snowflake.ID
	MeterNumber string
	UtilityType string
	TenantID    snowflake.ID
	Period      string
	PrevDate    time.Time
	PrevReading int64
	CurrDate    time.Time
	CurrReading int64
	Days        int
	Consumption int64
}

type Repository interface {
	Upsert(ctx context.Context, rec *ConsumptionRecord) error
	// ListForTenantPeriod returns the tenant's consumption rows for the
	// period, electricity first then by meter number.
	ListForTenantPeriod(ctx context.Context, tenantID snowflake.ID, period string) ([]MeterConsumptionRow, error)
}
