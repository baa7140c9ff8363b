package service

import (
	"github.com/meterworks/metrobill/internal/money"
	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
	tariffdomain "github.com/meterworks/metrobill/internal/tariff/domain"
)

// qtyEpsilon absorbs float residue when deciding whether any consumption
// remains unallocated.
const qtyEpsilon = 1e-9

const (
	tierRankStep = 10
	overflowRank = 800
	extraRank    = 900
)

// allocateTiers splits a period's consumption across block tariffs. Each
// tier's capacity is its band width in liters/day, prorated to the period:
// (block_end - block_start) / 1000 * days kL. A tier without a block end
// absorbs everything left. When every tier is bounded and consumption
// still remains, the remainder is billed at the last tier's rate as an
// explicit overflow line rather than dropped.
//
// On the reduced (sanitation) side the billable quantity per tier is
// take * reduction factor; the allocation itself is never reduced, so the
// water-side split is identical for the same input.
func allocateTiers(
	consumption float64,
	days int,
	tiers []tariffdomain.TariffRate,
	group string,
	reduced bool,
	emitZero bool,
) (lines []ratingdomain.ChargeLine, billable float64) {
	remaining := consumption

	for i, tier := range tiers {
		var take float64
		if tier.BlockEnd == nil {
			take = remaining
		} else {
			start := 0.0
			if tier.BlockStart != nil {
				start = *tier.BlockStart
			}
			capacity := (*tier.BlockEnd - start) / 1000 * float64(days)
			if capacity < 0 {
				capacity = 0
			}
			take = min(remaining, capacity)
		}
		remaining -= take

		if take <= qtyEpsilon && !emitZero {
			continue
		}

		lines = append(lines, tierLine(tier, i, take, group, reduced, &billable))
		if remaining <= qtyEpsilon && !emitZero {
			break
		}
	}

	// Overflow past the highest bounded tier.
	if remaining > qtyEpsilon && len(tiers) > 0 {
		last := tiers[len(tiers)-1]
		line := tierLine(last, len(tiers)-1, remaining, group, reduced, &billable)
		line.Description = line.Description + " (overflow)"
		line.Rank = overflowRank
		lines = append(lines, line)
	}

	return lines, money.Quantize3(billable)
}

func tierLine(
	tier tariffdomain.TariffRate,
	index int,
	take float64,
	group string,
	reduced bool,
	billable *float64,
) ratingdomain.ChargeLine {
	qty := take
	if reduced {
		qty = money.Quantize3(take * reductionFor(tier, index))
	}
	*billable += qty

	return ratingdomain.ChargeLine{
		Code:        tier.Code,
		Description: lineDescription(&tier),
		Group:       group,
		Quantity:    f64p(qty),
		RateCents:   i64p(tier.RateCents),
		AmountCents: i64p(money.LineAmount(qty, tier.RateCents)),
		Rank:        (index + 1) * tierRankStep,
	}
}
