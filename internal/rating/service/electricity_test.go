package service

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
	tariffdomain "github.com/meterworks/metrobill/internal/tariff/domain"
)

func TestRateElectricity(t *testing.T) {
	snap := extrasSnapshot(tariffdomain.TariffRate{
		UtilityType: tariffdomain.UtilityElectricity,
		Code:        tariffdomain.ElecRateCode,
		Description: "Electricity per kWh",
		RateCents:   275,
	})

	line, warning := rateElectricity(snowflake.ID(3), 180, snap)
	assert.Nil(t, warning)
	assert.Equal(t, ratingdomain.GroupElec, line.Group)
	assert.InDelta(t, 180, *line.Quantity, 1e-9)
	assert.Equal(t, int64(275), *line.RateCents)
	assert.Equal(t, int64(49500), *line.AmountCents)
}

func TestRateElectricityMissingRate(t *testing.T) {
	// No configured rate leaves the line unpriced but visible; totals
	// treat it as zero.
	line, warning := rateElectricity(snowflake.ID(3), 180, extrasSnapshot())

	require.NotNil(t, warning)
	assert.Equal(t, ratingdomain.WarningConfigurationGap, warning.Code)
	assert.Nil(t, line.RateCents)
	assert.Nil(t, line.AmountCents)
	assert.Zero(t, line.Amount())
}
