// Package domain holds the versioned tariff model and its read contract.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	UtilityWater       = "water"
	UtilityElectricity = "electricity"
	UtilitySanitation  = "sanitation"
	UtilityRefuse      = "refuse"
	UtilityManagement  = "management"
)

const (
	UnitFlat  = "flat"
	UnitPerKL = "per_kL"
)

// ElecRateCode is the business key for the flat electricity rate.
const ElecRateCode = "ElecRate"

// TariffRate is one immutable tariff version. New prices are new rows with
// a later effective date; lookups pick the latest row effective on or
// before the reference date.
type TariffRate struct {
	ID              snowflake.ID `gorm:"primaryKey"`
	UtilityType     string       `gorm:"type:text;not null;index:idx_tariff_code,priority:2"`
	Code            string       `gorm:"type:text;not null;index:idx_tariff_code,priority:1"`
	Description     string       `gorm:"type:text"`
	RateCents       int64        `gorm:"not null"`
	BlockStart      *float64     // liters per day, inclusive lower bound
	BlockEnd        *float64     // liters per day; nil means open top tier
	ReductionFactor *float64     // sanitation-side quantity multiplier, 0 < f <= 1
	Unit            string       `gorm:"type:text"` // "flat" or "per_kL"; blank tolerated
	EffectiveDate   time.Time    `gorm:"not null;index"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (TariffRate) TableName() string { return "tariff_rates" }

// IsBlock reports whether this row is a consumption band rather than a
// flat or per-unit extra.
func (t *TariffRate) IsBlock() bool {
	return t.BlockStart != nil || t.BlockEnd != nil
}

type Repository interface {
	// Latest returns the newest row for (code, utilityType) effective on or
	// before asOf, or nil when no row qualifies. Missing is not an error.
	Latest(ctx context.Context, code, utilityType string, asOf time.Time) (*TariffRate, error)
	// ListUpTo returns every row effective on or before asOf, ordered by
	// code then effective date ascending. Snapshot building reads this once.
	ListUpTo(ctx context.Context, asOf time.Time) ([]TariffRate, error)
	Insert(ctx context.Context, rate *TariffRate) error
}
