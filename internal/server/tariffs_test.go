package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	tariffdomain "github.com/meterworks/metrobill/internal/tariff/domain"
)

type stubTariffRepo struct {
	gotAsOf time.Time
	rows    []tariffdomain.TariffRate
}

func (r *stubTariffRepo) Latest(ctx context.Context, code, utilityType string, asOf time.Time) (*tariffdomain.TariffRate, error) {
	return nil, nil
}

func (r *stubTariffRepo) ListUpTo(ctx context.Context, asOf time.Time) ([]tariffdomain.TariffRate, error) {
	r.gotAsOf = asOf
	return r.rows, nil
}

func (r *stubTariffRepo) Insert(ctx context.Context, rate *tariffdomain.TariffRate) error {
	return nil
}

type stubClock struct {
	t time.Time
}

func (c stubClock) Now(ctx context.Context) time.Time { return c.t }

func TestListTariffs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	repo := &stubTariffRepo{
		rows: []tariffdomain.TariffRate{{Code: "Tier1_W&S", UtilityType: tariffdomain.UtilityWater, RateCents: 3487}},
	}
	srv := &Server{
		log:        zap.NewNop(),
		clk:        stubClock{t: now},
		tariffRepo: repo,
	}

	router := gin.New()
	router.GET("/api/tariffs", srv.ListTariffs)

	t.Run("defaults as_of to the clock", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tariffs", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)
		require.Equal(t, now, repo.gotAsOf)
	})

	t.Run("explicit as_of wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tariffs?as_of=2025-07-01T00:00:00Z", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)
		require.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), repo.gotAsOf)
	})

	t.Run("malformed as_of rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tariffs?as_of=yesterday", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		require.Equal(t, http.StatusBadRequest, resp.Code)
	})
}
