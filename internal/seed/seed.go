// Package seed loads the default municipal tariff pack and a demo tenant.
// Every Ensure function is idempotent so the seeder can run on each deploy.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	chargemapdomain "github.com/meterworks/metrobill/internal/chargemap/domain"
	consumptiondomain "github.com/meterworks/metrobill/internal/consumption/domain"
	meterdomain "github.com/meterworks/metrobill/internal/meter/domain"
	tariffdomain "github.com/meterworks/metrobill/internal/tariff/domain"
	tenantdomain "github.com/meterworks/metrobill/internal/tenant/domain"
)

// tariffSeed is one row of the default pack. Blocks are liters per day;
// rates are cents per kL for blocks and per the unit for extras.
type tariffSeed struct {
	utility    string
	code       string
	desc       string
	rateCents  int64
	blockStart *float64
	blockEnd   *float64
	reduction  *float64
	unit       string
}

func f(v float64) *float64 { return &v }

// defaultTariffs mirrors the municipal schedule: four chained blocks per
// side, sanitation with band reduction factors, and the fixed extras.
func defaultTariffs() []tariffSeed {
	return []tariffSeed{
		{tariffdomain.UtilityWater, "Tier1_W&S", "Water 0-200 L/day", 3487, f(0), f(200), nil, tariffdomain.UnitPerKL},
		{tariffdomain.UtilityWater, "Tier2_W&S", "Water 200-833 L/day", 4130, f(200), f(833), nil, tariffdomain.UnitPerKL},
		{tariffdomain.UtilityWater, "Tier3_W&S", "Water 833-1000 L/day", 5504, f(833), f(1000), nil, tariffdomain.UnitPerKL},
		{tariffdomain.UtilityWater, "Tier4_W&S", "Water 1000-1500 L/day", 8487, f(1000), f(1500), nil, tariffdomain.UnitPerKL},

		{tariffdomain.UtilitySanitation, "Tier1_SD", "Sanitation 0-200 L/day", 545, f(0), f(200), f(0.95), tariffdomain.UnitPerKL},
		{tariffdomain.UtilitySanitation, "Tier2_SD", "Sanitation 200-833 L/day", 920, f(200), f(833), f(0.75), tariffdomain.UnitPerKL},
		{tariffdomain.UtilitySanitation, "Tier3_SD", "Sanitation 833-1000 L/day", 1754, f(833), f(1000), f(0.75), tariffdomain.UnitPerKL},
		{tariffdomain.UtilitySanitation, "Tier4_SD", "Sanitation 1000-1500 L/day", 2738, f(1000), f(1500), f(0.65), tariffdomain.UnitPerKL},

		{tariffdomain.UtilityElectricity, tariffdomain.ElecRateCode, "Electricity per kWh", 275, nil, nil, nil, ""},

		{tariffdomain.UtilityWater, "WSSurcharge", "Water surcharge", 150, nil, nil, nil, tariffdomain.UnitPerKL},
		{tariffdomain.UtilityWater, "WaterLossLevy", "Water loss levy", 1250, nil, nil, nil, tariffdomain.UnitFlat},
		{tariffdomain.UtilitySanitation, "SDSurcharge", "Sanitation surcharge", 95, nil, nil, nil, ""},
		{tariffdomain.UtilityRefuse, "RefuseBin", "Refuse bins", 19800, nil, nil, nil, tariffdomain.UnitFlat},
		{tariffdomain.UtilityManagement, "MgmtFee", "Monthly management fee", 4500, nil, nil, nil, tariffdomain.UnitFlat},
	}
}

// waterChargeCodes is the full charge map a standard water meter carries.
// Tier packs price unconditionally, so only the extras are mapped; every
// code here must resolve to a tariff row in the default pack.
var waterChargeCodes = []struct {
	code    string
	utility string
}{
	{"WSSurcharge", tariffdomain.UtilityWater},
	{"WaterLossLevy", tariffdomain.UtilityWater},
	{"SDSurcharge", tariffdomain.UtilitySanitation},
	{"RefuseBin", tariffdomain.UtilitySanitation},
	{"MgmtFee", tariffdomain.UtilityManagement},
}

// EnsureTariffPack inserts any default tariff row not yet present. Presence
// is keyed (utility, code, effective date) so later manual versions are
// never touched.
func EnsureTariffPack(db *gorm.DB, effective time.Time) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range defaultTariffs() {
			var count int64
			err := tx.Model(&tariffdomain.TariffRate{}).
				Where("utility_type = ? AND code = ? AND effective_date = ?", s.utility, s.code, effective).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			row := tariffdomain.TariffRate{
				ID:              node.Generate(),
				UtilityType:     s.utility,
				Code:            s.code,
				Description:     s.desc,
				RateCents:       s.rateCents,
				BlockStart:      s.blockStart,
				BlockEnd:        s.blockEnd,
				ReductionFactor: s.reduction,
				Unit:            s.unit,
				EffectiveDate:   effective,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// EnsureDemoTenant seeds one tenant with an electricity and a water meter,
// the standard water charge map, and one period of readings. Keyed by the
// metro account number so re-runs are no-ops.
func EnsureDemoTenant(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing tenantdomain.Tenant
		err := tx.Where("metro_account_no = ?", demoMetroAccount).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		tenant := tenantdomain.Tenant{
			ID:             node.Generate(),
			Name:           "Unit 12 Trust",
			UnitLabel:      "Unit 12",
			MetroAccountNo: demoMetroAccount,
			Email:          "unit12@example.com",
			Active:         true,
		}
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}

		elec := meterdomain.Meter{
			ID:          node.Generate(),
			TenantID:    tenant.ID,
			MeterNumber: "E-001012",
			UtilityType: tariffdomain.UtilityElectricity,
			Active:      true,
		}
		water := meterdomain.Meter{
			ID:          node.Generate(),
			TenantID:    tenant.ID,
			MeterNumber: "W-001012",
			UtilityType: tariffdomain.UtilityWater,
			Active:      true,
		}
		if err := tx.Create(&elec).Error; err != nil {
			return err
		}
		if err := tx.Create(&water).Error; err != nil {
			return err
		}

		for _, c := range waterChargeCodes {
			row := chargemapdomain.MeterChargeMap{
				ID:          node.Generate(),
				MeterID:     water.ID,
				ChargeCode:  c.code,
				UtilityType: c.utility,
				Enabled:     true,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		prev := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)
		curr := time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC)
		reads := []consumptiondomain.ConsumptionRecord{
			{
				ID:          node.Generate(),
				MeterID:     elec.ID,
				Period:      "2026-07",
				PrevDate:    prev,
				PrevReading: 45210,
				CurrDate:    curr,
				CurrReading: 45672,
				Days:        31,
				Consumption: 462,
			},
			{
				ID:          node.Generate(),
				MeterID:     water.ID,
				Period:      "2026-07",
				PrevDate:    prev,
				PrevReading: 1180,
				CurrDate:    curr,
				CurrReading: 1198,
				Days:        31,
				Consumption: 18,
			},
		}
		for i := range reads {
			if err := tx.Create(&reads[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

const demoMetroAccount = "MET-551200"
