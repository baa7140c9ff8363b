package service

import (
	"strings"

	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
	tariffdomain "github.com/meterworks/metrobill/internal/tariff/domain"
)

// Sanitation reduction fallback ladder, applied per tier index when the
// tariff row carries no reduction factor. Tariff data always wins.
var defaultReductionLadder = [4]float64{0.95, 0.75, 0.75, 0.65}

// Surcharge codes are per-kL by hard convention even when the tariff's
// unit metadata is blank.
var perKLByConvention = map[string]bool{
	"WSSurcharge": true,
	"SDSurcharge": true,
}

func reductionFor(tier tariffdomain.TariffRate, index int) float64 {
	if tier.ReductionFactor != nil && *tier.ReductionFactor > 0 && *tier.ReductionFactor <= 1 {
		return *tier.ReductionFactor
	}
	if index >= len(defaultReductionLadder) {
		index = len(defaultReductionLadder) - 1
	}
	return defaultReductionLadder[index]
}

func isPerKL(unit string) bool {
	return strings.Contains(strings.ToLower(unit), "kl")
}

// sideForUtility maps a charge-map utility type to the bill side its
// amount lands on. Sanitation and refuse charges sit on the SD side.
func sideForUtility(utilityType string) string {
	switch strings.ToLower(strings.TrimSpace(utilityType)) {
	case tariffdomain.UtilitySanitation, tariffdomain.UtilityRefuse:
		return ratingdomain.GroupSD
	default:
		return ratingdomain.GroupWS
	}
}

func lineDescription(t *tariffdomain.TariffRate) string {
	if t.Description != "" {
		return t.Description
	}
	return t.Code
}

func sumLines(lines []ratingdomain.ChargeLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Amount()
	}
	return total
}

func i64p(v int64) *int64     { return &v }
func f64p(v float64) *float64 { return &v }
