package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	chargemapdomain "github.com/meterworks/metrobill/internal/chargemap/domain"
	"github.com/meterworks/metrobill/internal/chargemap/repository"
	"github.com/meterworks/metrobill/internal/period"
)

func setupRepo(t *testing.T) (chargemapdomain.Repository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&chargemapdomain.MeterChargeMap{}))
	return repository.NewRepository(db), db
}

func datep(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}

func TestEnabledChargesWindowAndOrder(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	meterID := snowflake.ID(200)

	rows := []chargemapdomain.MeterChargeMap{
		{ID: 1, MeterID: meterID, ChargeCode: "WSSurcharge", UtilityType: "water", Enabled: true},
		{ID: 2, MeterID: meterID, ChargeCode: "MgmtFee", UtilityType: "management", Enabled: true, EffectiveStart: datep(2026, 1, 1)},
		{ID: 3, MeterID: meterID, ChargeCode: "RefuseBin", UtilityType: "sanitation", Enabled: false},
		{ID: 4, MeterID: meterID, ChargeCode: "SDSurcharge", UtilityType: "sanitation", Enabled: true, EffectiveEnd: datep(2026, 5, 31)},
		{ID: 5, MeterID: meterID, ChargeCode: "WaterLossLevy", UtilityType: "water", Enabled: true, EffectiveStart: datep(2026, 9, 1)},
		{ID: 6, MeterID: snowflake.ID(999), ChargeCode: "MgmtFee", UtilityType: "management", Enabled: true},
	}
	for i := range rows {
		require.NoError(t, repo.Insert(ctx, &rows[i]))
	}

	p, err := period.Parse("2026-07")
	require.NoError(t, err)

	// Disabled, expired, not-yet-effective and foreign-meter rows all drop
	// out; the survivors keep the charge_code ordering.
	live, err := repo.EnabledCharges(ctx, meterID, p)
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, "MgmtFee", live[0].ChargeCode)
	assert.Equal(t, "WSSurcharge", live[1].ChargeCode)
}
