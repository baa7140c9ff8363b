package domain_test

import (
	"testing"
	"time"

	tariffdomain "github.com/meterworks/metrobill/internal/tariff/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fp(v float64) *float64 { return &v }

func TestSnapshotLatestPicksNewestEffective(t *testing.T) {
	rows := []tariffdomain.TariffRate{
		{Code: "ElecRate", UtilityType: tariffdomain.UtilityElectricity, RateCents: 250, EffectiveDate: day(2024, 7, 1)},
		{Code: "ElecRate", UtilityType: tariffdomain.UtilityElectricity, RateCents: 275, EffectiveDate: day(2025, 7, 1)},
		{Code: "ElecRate", UtilityType: tariffdomain.UtilityElectricity, RateCents: 300, EffectiveDate: day(2026, 7, 1)},
	}

	snap := tariffdomain.NewSnapshot(day(2025, 9, 15), rows)

	got := snap.Latest("ElecRate", tariffdomain.UtilityElectricity)
	require.NotNil(t, got)
	assert.Equal(t, int64(275), got.RateCents)

	// The 2026 row is invisible to a 2025 snapshot.
	assert.Nil(t, snap.Latest("ElecRate", tariffdomain.UtilityWater))
	assert.Nil(t, snap.Latest("NoSuchCode", tariffdomain.UtilityElectricity))
}

func TestSnapshotTiersOrderedByBlockStart(t *testing.T) {
	rows := []tariffdomain.TariffRate{
		{Code: "Tier2_W&S", UtilityType: tariffdomain.UtilityWater, RateCents: 4130, BlockStart: fp(201), BlockEnd: fp(833), EffectiveDate: day(2025, 7, 1)},
		{Code: "Tier4_W&S", UtilityType: tariffdomain.UtilityWater, RateCents: 6020, BlockStart: fp(1001), EffectiveDate: day(2025, 7, 1)},
		{Code: "Tier1_W&S", UtilityType: tariffdomain.UtilityWater, RateCents: 3487, BlockStart: fp(0), BlockEnd: fp(200), EffectiveDate: day(2025, 7, 1)},
		{Code: "Tier1_W&S", UtilityType: tariffdomain.UtilityWater, RateCents: 3300, BlockStart: fp(0), BlockEnd: fp(200), EffectiveDate: day(2024, 7, 1)},
		{Code: "WSSurcharge", UtilityType: tariffdomain.UtilityWater, RateCents: 150, Unit: tariffdomain.UnitPerKL, EffectiveDate: day(2025, 7, 1)},
	}

	snap := tariffdomain.NewSnapshot(day(2025, 9, 1), rows)

	tiers := snap.Tiers(tariffdomain.UtilityWater)
	require.Len(t, tiers, 3)
	assert.Equal(t, "Tier1_W&S", tiers[0].Code)
	assert.Equal(t, int64(3487), tiers[0].RateCents, "latest version wins")
	assert.Equal(t, "Tier2_W&S", tiers[1].Code)
	assert.Equal(t, "Tier4_W&S", tiers[2].Code)
	assert.Nil(t, tiers[2].BlockEnd, "open top tier")
}

func TestSnapshotLatestByCode(t *testing.T) {
	rows := []tariffdomain.TariffRate{
		{Code: "RefuseBin", UtilityType: tariffdomain.UtilityRefuse, RateCents: 9500, Unit: tariffdomain.UnitFlat, EffectiveDate: day(2025, 1, 1)},
	}
	snap := tariffdomain.NewSnapshot(day(2025, 9, 1), rows)

	got := snap.LatestByCode("RefuseBin")
	require.NotNil(t, got)
	assert.Equal(t, int64(9500), got.RateCents)
	assert.Nil(t, snap.LatestByCode("MgmtFee"))
}
