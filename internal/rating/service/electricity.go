package service

import (
	"github.com/bwmarrin/snowflake"
	"github.com/meterworks/metrobill/internal/money"
	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
	tariffdomain "github.com/meterworks/metrobill/internal/tariff/domain"
)

// rateElectricity prices a meter's kWh at the flat ElecRate. When no rate
// is configured the line is returned with nil rate and amount so the
// absence stays visible on the bill while totals treat it as zero.
func rateElectricity(
	meterID snowflake.ID,
	consumptionKWh float64,
	snap *tariffdomain.Snapshot,
) (ratingdomain.ChargeLine, *ratingdomain.Warning) {
	line := ratingdomain.ChargeLine{
		Code:        tariffdomain.ElecRateCode,
		Description: "Electricity consumption",
		Group:       ratingdomain.GroupElec,
		Quantity:    f64p(consumptionKWh),
		Rank:        tierRankStep,
	}

	tariff := snap.Latest(tariffdomain.ElecRateCode, tariffdomain.UtilityElectricity)
	if tariff == nil {
		return line, &ratingdomain.Warning{
			MeterID: meterID,
			Code:    ratingdomain.WarningConfigurationGap,
			Message: "no electricity rate configured; amount left unpriced",
		}
	}

	line.Description = lineDescription(tariff)
	line.RateCents = i64p(tariff.RateCents)
	line.AmountCents = i64p(money.LineAmount(consumptionKWh, tariff.RateCents))
	return line, nil
}
