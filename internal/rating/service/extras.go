package service

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	chargemapdomain "github.com/meterworks/metrobill/internal/chargemap/domain"
	"github.com/meterworks/metrobill/internal/money"
	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
	tariffdomain "github.com/meterworks/metrobill/internal/tariff/domain"
)

// resolveExtras prices the charge-map entries for one meter. Per-unit
// charges bill the raw consumption on the water side and the reduced
// billable volume on the sanitation side; everything else is a flat
// monthly fee. A mapped code with no tariff row is skipped and surfaced
// as a configuration-gap warning, never an error.
func resolveExtras(
	meterID snowflake.ID,
	entries []chargemapdomain.MeterChargeMap,
	snap *tariffdomain.Snapshot,
	consumptionKL float64,
	billableSDKL float64,
) (ws, sd []ratingdomain.ChargeLine, warnings []ratingdomain.Warning) {
	for i, entry := range entries {
		tariff := snap.LatestByCode(entry.TariffCode())
		if tariff == nil {
			warnings = append(warnings, ratingdomain.Warning{
				MeterID: meterID,
				Code:    ratingdomain.WarningConfigurationGap,
				Message: fmt.Sprintf("no tariff for mapped charge %s; line omitted", entry.TariffCode()),
			})
			continue
		}

		side := sideForUtility(entry.UtilityType)
		line := ratingdomain.ChargeLine{
			Code:        tariff.Code,
			Description: lineDescription(tariff),
			RateCents:   i64p(tariff.RateCents),
			Rank:        extraRank + i,
		}

		if isPerKL(tariff.Unit) || perKLByConvention[entry.ChargeCode] {
			qty := consumptionKL
			if side == ratingdomain.GroupSD {
				qty = billableSDKL
			}
			line.Group = side
			line.Quantity = f64p(qty)
			line.AmountCents = i64p(money.LineAmount(qty, tariff.RateCents))
		} else {
			// Flat monthly fee: no quantity, amount is the rate itself.
			line.Group = ratingdomain.GroupFixed
			line.AmountCents = i64p(tariff.RateCents)
		}

		if side == ratingdomain.GroupSD {
			sd = append(sd, line)
		} else {
			ws = append(ws, line)
		}
	}
	return ws, sd, warnings
}
