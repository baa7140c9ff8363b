package domain_test

import (
	"testing"
	"time"

	chargemapdomain "github.com/meterworks/metrobill/internal/chargemap/domain"
	"github.com/meterworks/metrobill/internal/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPeriod(t *testing.T, s string) period.Period {
	t.Helper()
	p, err := period.Parse(s)
	require.NoError(t, err)
	return p
}

func tp(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}

func TestAppliesToWindow(t *testing.T) {
	june := mustPeriod(t, "2025-06")

	cases := []struct {
		name  string
		entry chargemapdomain.MeterChargeMap
		want  bool
	}{
		{"open window", chargemapdomain.MeterChargeMap{Enabled: true}, true},
		{"disabled", chargemapdomain.MeterChargeMap{Enabled: false}, false},
		{"starts before period", chargemapdomain.MeterChargeMap{Enabled: true, EffectiveStart: tp(2025, 5, 1)}, true},
		{"starts on first day", chargemapdomain.MeterChargeMap{Enabled: true, EffectiveStart: tp(2025, 6, 1)}, true},
		{"starts after first day", chargemapdomain.MeterChargeMap{Enabled: true, EffectiveStart: tp(2025, 6, 2)}, false},
		{"ended before period", chargemapdomain.MeterChargeMap{Enabled: true, EffectiveEnd: tp(2025, 5, 31)}, false},
		{"ends on first day", chargemapdomain.MeterChargeMap{Enabled: true, EffectiveEnd: tp(2025, 6, 1)}, true},
		{"bounded and inside", chargemapdomain.MeterChargeMap{Enabled: true, EffectiveStart: tp(2025, 1, 1), EffectiveEnd: tp(2025, 12, 31)}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.entry.AppliesTo(june))
		})
	}
}

func TestTariffCodeOverride(t *testing.T) {
	entry := chargemapdomain.MeterChargeMap{ChargeCode: "WSSurcharge"}
	assert.Equal(t, "WSSurcharge", entry.TariffCode())

	entry.TariffCodeOverride = "WSSurcharge2025"
	assert.Equal(t, "WSSurcharge2025", entry.TariffCode())
}
