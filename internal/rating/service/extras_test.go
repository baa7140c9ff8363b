package service

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chargemapdomain "github.com/meterworks/metrobill/internal/chargemap/domain"
	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
	tariffdomain "github.com/meterworks/metrobill/internal/tariff/domain"
)

var extrasAsOf = time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

func extrasSnapshot(rows ...tariffdomain.TariffRate) *tariffdomain.Snapshot {
	for i := range rows {
		rows[i].EffectiveDate = extrasAsOf.AddDate(0, -1, 0)
	}
	return tariffdomain.NewSnapshot(extrasAsOf, rows)
}

func mapEntry(code, utility string) chargemapdomain.MeterChargeMap {
	return chargemapdomain.MeterChargeMap{
		MeterID:     snowflake.ID(7),
		ChargeCode:  code,
		UtilityType: utility,
		Enabled:     true,
	}
}

func TestResolveExtrasSurchargeAtZeroConsumption(t *testing.T) {
	// WSSurcharge is per-kL by convention even with blank unit metadata;
	// zero consumption yields a zero line, not an omission.
	snap := extrasSnapshot(tariffdomain.TariffRate{
		UtilityType: tariffdomain.UtilityWater,
		Code:        "WSSurcharge",
		RateCents:   150,
	})
	entries := []chargemapdomain.MeterChargeMap{mapEntry("WSSurcharge", tariffdomain.UtilityWater)}

	ws, sd, warnings := resolveExtras(snowflake.ID(7), entries, snap, 0, 0)
	require.Len(t, ws, 1)
	assert.Empty(t, sd)
	assert.Empty(t, warnings)

	assert.Equal(t, ratingdomain.GroupWS, ws[0].Group)
	assert.Zero(t, *ws[0].Quantity)
	assert.Zero(t, *ws[0].AmountCents)
}

func TestResolveExtrasSanitationPerKLUsesBillableVolume(t *testing.T) {
	snap := extrasSnapshot(tariffdomain.TariffRate{
		UtilityType: tariffdomain.UtilitySanitation,
		Code:        "SDSurcharge",
		RateCents:   95,
	})
	entries := []chargemapdomain.MeterChargeMap{mapEntry("SDSurcharge", tariffdomain.UtilitySanitation)}

	ws, sd, warnings := resolveExtras(snowflake.ID(7), entries, snap, 18, 14.55)
	assert.Empty(t, ws)
	assert.Empty(t, warnings)
	require.Len(t, sd, 1)

	assert.Equal(t, ratingdomain.GroupSD, sd[0].Group)
	assert.InDelta(t, 14.55, *sd[0].Quantity, 1e-9)
	assert.Equal(t, int64(1382), *sd[0].AmountCents) // 14.55 * 0.95
}

func TestResolveExtrasFlatFee(t *testing.T) {
	snap := extrasSnapshot(tariffdomain.TariffRate{
		UtilityType: tariffdomain.UtilityManagement,
		Code:        "MgmtFee",
		Description: "Monthly management fee",
		RateCents:   4500,
		Unit:        tariffdomain.UnitFlat,
	})
	entries := []chargemapdomain.MeterChargeMap{mapEntry("MgmtFee", tariffdomain.UtilityManagement)}

	ws, sd, warnings := resolveExtras(snowflake.ID(7), entries, snap, 18, 14.55)
	assert.Empty(t, sd)
	assert.Empty(t, warnings)
	require.Len(t, ws, 1)

	assert.Equal(t, ratingdomain.GroupFixed, ws[0].Group)
	assert.Nil(t, ws[0].Quantity)
	assert.Equal(t, int64(4500), *ws[0].AmountCents)
}

func TestResolveExtrasMissingTariffSkipsWithWarning(t *testing.T) {
	snap := extrasSnapshot()
	entries := []chargemapdomain.MeterChargeMap{mapEntry("WaterLossLevy", tariffdomain.UtilityWater)}

	ws, sd, warnings := resolveExtras(snowflake.ID(7), entries, snap, 18, 14.55)
	assert.Empty(t, ws)
	assert.Empty(t, sd)
	require.Len(t, warnings, 1)
	assert.Equal(t, ratingdomain.WarningConfigurationGap, warnings[0].Code)
}

func TestResolveExtrasTariffCodeOverride(t *testing.T) {
	snap := extrasSnapshot(tariffdomain.TariffRate{
		UtilityType: tariffdomain.UtilityRefuse,
		Code:        "RefuseBin2026",
		RateCents:   19800,
		Unit:        tariffdomain.UnitFlat,
	})
	entry := mapEntry("RefuseBin", tariffdomain.UtilityRefuse)
	entry.TariffCodeOverride = "RefuseBin2026"

	ws, sd, warnings := resolveExtras(snowflake.ID(7), []chargemapdomain.MeterChargeMap{entry}, snap, 18, 14.55)
	assert.Empty(t, ws)
	assert.Empty(t, warnings)
	require.Len(t, sd, 1)
	assert.Equal(t, "RefuseBin2026", sd[0].Code)
	assert.Equal(t, int64(19800), *sd[0].AmountCents)
}
