// Package domain describes which optional charges apply to a meter.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/meterworks/metrobill/internal/period"
)

// MeterChargeMap enables one charge code for one meter over an optional
// effective window. Rows are edited by the configuration surface and read
// only by the rating engine.
type MeterChargeMap struct {
	ID                 snowflake.ID `gorm:"primaryKey"`
	MeterID            snowflake.ID `gorm:"not null;index"`
	ChargeCode         string       `gorm:"type:text;not null"`
	UtilityType        string       `gorm:"type:text;not null"`
	TariffCodeOverride string       `gorm:"type:text"`
	Enabled            bool         `gorm:"not null;default:true"`
	EffectiveStart     *time.Time
	EffectiveEnd       *time.Time
	CreatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (MeterChargeMap) TableName() string { return "meter_charge_maps" }

// AppliesTo reports whether the row is live for the given billing period:
// enabled, and the period's first day inside the effective window (either
// bound may be open).
func (m *MeterChargeMap) AppliesTo(p period.Period) bool {
	if !m.Enabled {
		return false
	}
	ref := p.FirstDay()
	if m.EffectiveStart != nil && m.EffectiveStart.After(ref) {
		return false
	}
	if m.EffectiveEnd != nil && m.EffectiveEnd.Before(ref) {
		return false
	}
	return true
}

// TariffCode is the code the charge prices under: the override when set,
// else the charge code itself.
func (m *MeterChargeMap) TariffCode() string {
	if m.TariffCodeOverride != "" {
		return m.TariffCodeOverride
	}
	return m.ChargeCode
}

type Repository interface {
	// EnabledCharges returns the map rows live for the meter in the period,
	// ordered by charge code for deterministic display. No rows is an empty
	// list, not an error.
	EnabledCharges(ctx context.Context, meterID snowflake.ID, p period.Period) ([]MeterChargeMap, error)
	Insert(ctx context.Context, entry *MeterChargeMap) error
	ListByMeter(ctx context.Context, meterID snowflake.ID) ([]MeterChargeMap, error)
}
