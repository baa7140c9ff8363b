// Package domain defines the rating engine's inputs and outputs: charge
// lines, per-meter bill results, and per-tenant period totals.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/meterworks/metrobill/internal/period"
)

// Charge line group tags, used for display grouping only; monetary totals
// are accumulated by side while the bill is built.
const (
	GroupWS    = "WS"
	GroupSD    = "SD"
	GroupElec  = "ELEC"
	GroupFixed = "FIXED"
)

// ChargeLine is one priced row on a meter's bill. Quantity is nil for
// flat fees; RateCents and AmountCents are nil when the tariff is absent
// and the tolerant-degrade policy leaves the gap visible.
type ChargeLine struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Group       string   `json:"group"`
	Quantity    *float64 `json:"quantity"`
	RateCents   *int64   `json:"rate_cents"`
	AmountCents *int64   `json:"amount_cents"`
	Rank        int      `json:"rank"`
}

// Amount returns the line's contribution to totals; an absent amount
// counts as zero.
func (l ChargeLine) Amount() int64 {
	if l.AmountCents == nil {
		return 0
	}
	return *l.AmountCents
}

// MeterBillResult is a fully priced meter for one period. TotalDueCents is
// always the exact sum of line amounts.
type MeterBillResult struct {
	MeterID         snowflake.ID `json:"meter_id"`
	MeterNumber     string       `json:"meter_number"`
	TenantID        snowflake.ID `json:"tenant_id"`
	Period          string       `json:"period"`
	UtilityType     string       `json:"utility_type"`
	PrevDate        time.Time    `json:"prev_date"`
	PrevReading     int64        `json:"prev_reading"`
	CurrDate        time.Time    `json:"curr_date"`
	CurrReading     int64        `json:"curr_reading"`
	Days            int          `json:"days"`
	Consumption     int64        `json:"consumption"`
	WSTotalCents    int64        `json:"ws_total_cents"`
	SDTotalCents    int64        `json:"sd_total_cents"`
	ElecTotalCents  int64        `json:"elec_total_cents"`
	WaterTotalCents int64        `json:"water_total_cents"`
	TotalDueCents   int64        `json:"total_due_cents"`
	Lines           []ChargeLine `json:"lines"`
}

// TenantPeriodTotals aggregates a tenant's meters for one period.
// DueToMetroCents is what the tenant owes the municipal utility.
type TenantPeriodTotals struct {
	TenantID        snowflake.ID `json:"tenant_id"`
	Period          string       `json:"period"`
	ElecTotalCents  int64        `json:"elec_total_cents"`
	WaterTotalCents int64        `json:"water_total_cents"`
	DueToMetroCents int64        `json:"due_to_metro_cents"`
}

// WarningConfigurationGap tags tolerant-degrade events: a mapped charge
// with no tariff, a missing electricity rate, missing tier definitions.
const WarningConfigurationGap = "configuration_gap"

// Warning is a structured non-fatal finding surfaced beside the result.
type Warning struct {
	MeterID snowflake.ID `json:"meter_id"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
}

// MeterError is a fatal per-meter failure; the rest of the run proceeds.
type MeterError struct {
	MeterID     snowflake.ID `json:"meter_id"`
	MeterNumber string       `json:"meter_number"`
	Reason      string       `json:"reason"`
}

type RunRequest struct {
	TenantID snowflake.ID
	Period   period.Period
}

// RunResult is one tenant's rating run: every meter priced under a single
// frozen tariff snapshot.
type RunResult struct {
	RunID         uuid.UUID          `json:"run_id"`
	TenantID      snowflake.ID       `json:"tenant_id"`
	Period        string             `json:"period"`
	ReferenceDate time.Time          `json:"reference_date"`
	Results       []MeterBillResult  `json:"results"`
	Totals        TenantPeriodTotals `json:"totals"`
	Warnings      []Warning          `json:"warnings"`
	MeterErrors   []MeterError       `json:"meter_errors"`
}
