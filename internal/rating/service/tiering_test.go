package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
	tariffdomain "github.com/meterworks/metrobill/internal/tariff/domain"
)

func blockTier(code string, rateCents int64, start float64, end *float64, reduction *float64) tariffdomain.TariffRate {
	return tariffdomain.TariffRate{
		Code:            code,
		RateCents:       rateCents,
		BlockStart:      f64p(start),
		BlockEnd:        end,
		ReductionFactor: reduction,
		Unit:            tariffdomain.UnitPerKL,
	}
}

func TestAllocateTiersWaterScenario(t *testing.T) {
	// 26-day period, 250 kL: tier 1 caps at 200/1000*26 = 5.2 kL, the open
	// tier absorbs the remaining 244.8 kL.
	tiers := []tariffdomain.TariffRate{
		blockTier("Tier1_W&S", 3487, 0, f64p(200), nil),
		blockTier("Tier2_W&S", 4130, 200, nil, nil),
	}

	lines, billable := allocateTiers(250, 26, tiers, ratingdomain.GroupWS, false, false)
	require.Len(t, lines, 2)

	assert.InDelta(t, 5.2, *lines[0].Quantity, 1e-9)
	assert.Equal(t, int64(18132), *lines[0].AmountCents) // 5.2 * 34.87
	assert.InDelta(t, 244.8, *lines[1].Quantity, 1e-9)
	assert.Equal(t, int64(1011024), *lines[1].AmountCents) // 244.8 * 41.30

	assert.InDelta(t, 250, billable, 1e-9)
}

func TestAllocateTiersReducedQuantity(t *testing.T) {
	tiers := []tariffdomain.TariffRate{
		blockTier("Tier1_SD", 920, 0, f64p(200), f64p(0.75)),
	}

	lines, billable := allocateTiers(250, 26, tiers, ratingdomain.GroupSD, true, false)
	require.NotEmpty(t, lines)

	// 5.2 kL allocated, billed at 5.2 * 0.75 = 3.9 kL.
	assert.InDelta(t, 3.9, *lines[0].Quantity, 1e-9)
	assert.Equal(t, int64(3588), *lines[0].AmountCents) // 3.9 * 9.20
	assert.InDelta(t, 3.9, billable, 1e-9)
}

func TestAllocateTiersWaterSideNeverReduced(t *testing.T) {
	reduced := []tariffdomain.TariffRate{
		blockTier("Tier1_W&S", 3487, 0, f64p(200), f64p(0.5)),
	}
	plain := []tariffdomain.TariffRate{
		blockTier("Tier1_W&S", 3487, 0, f64p(200), nil),
	}

	gotReduced, _ := allocateTiers(100, 26, reduced, ratingdomain.GroupWS, false, false)
	gotPlain, _ := allocateTiers(100, 26, plain, ratingdomain.GroupWS, false, false)
	require.Len(t, gotReduced, len(gotPlain))

	for i := range gotReduced {
		assert.Equal(t, *gotPlain[i].Quantity, *gotReduced[i].Quantity)
		assert.Equal(t, *gotPlain[i].AmountCents, *gotReduced[i].AmountCents)
	}
}

func TestAllocateTiersOverflow(t *testing.T) {
	// Both tiers bounded at 2 kL for a 10-day period; 10 kL in leaves 6 kL
	// billed at the last tier's rate as an explicit overflow line.
	tiers := []tariffdomain.TariffRate{
		blockTier("Tier1_W&S", 3487, 0, f64p(200), nil),
		blockTier("Tier2_W&S", 4130, 200, f64p(400), nil),
	}

	lines, _ := allocateTiers(10, 10, tiers, ratingdomain.GroupWS, false, false)
	require.Len(t, lines, 3)

	assert.InDelta(t, 2, *lines[0].Quantity, 1e-9)
	assert.InDelta(t, 2, *lines[1].Quantity, 1e-9)
	assert.InDelta(t, 6, *lines[2].Quantity, 1e-9)
	assert.Contains(t, lines[2].Description, "(overflow)")
	assert.Equal(t, int64(24780), *lines[2].AmountCents) // 6 * 41.30 at the last rate

	// Exhaustive allocation: every kL is billed exactly once.
	var total float64
	for _, l := range lines {
		total += *l.Quantity
	}
	assert.InDelta(t, 10, total, 1e-9)
}

func TestAllocateTiersZeroConsumption(t *testing.T) {
	tiers := []tariffdomain.TariffRate{
		blockTier("Tier1_W&S", 3487, 0, f64p(200), nil),
		blockTier("Tier2_W&S", 4130, 200, nil, nil),
	}

	lines, billable := allocateTiers(0, 31, tiers, ratingdomain.GroupWS, false, false)
	assert.Empty(t, lines)
	assert.Zero(t, billable)

	emitted, _ := allocateTiers(0, 31, tiers, ratingdomain.GroupWS, false, true)
	require.Len(t, emitted, 2)
	for _, l := range emitted {
		assert.Zero(t, *l.Quantity)
		assert.Zero(t, *l.AmountCents)
	}
}

func TestReductionLadderFallback(t *testing.T) {
	// Tariff data wins; a missing factor falls back to the band ladder.
	withFactor := blockTier("Tier2_SD", 920, 200, f64p(833), f64p(0.8))
	assert.Equal(t, 0.8, reductionFor(withFactor, 1))

	noFactor := blockTier("Tier2_SD", 920, 200, f64p(833), nil)
	assert.Equal(t, 0.75, reductionFor(noFactor, 1))
	assert.Equal(t, 0.95, reductionFor(blockTier("Tier1_SD", 545, 0, f64p(200), nil), 0))

	// Indexes past the ladder clamp to the last band.
	assert.Equal(t, 0.65, reductionFor(noFactor, 9))
}
