package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	chargemapdomain "github.com/meterworks/metrobill/internal/chargemap/domain"
	"github.com/meterworks/metrobill/internal/clock"
	"github.com/meterworks/metrobill/internal/config"
	consumptiondomain "github.com/meterworks/metrobill/internal/consumption/domain"
	"github.com/meterworks/metrobill/internal/observability"
	"github.com/meterworks/metrobill/internal/period"
	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
	tariffdomain "github.com/meterworks/metrobill/internal/tariff/domain"
	tenantdomain "github.com/meterworks/metrobill/internal/tenant/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log  *zap.Logger
	clk  clock.Clock
	opts ratingdomain.Options

	metrics *observability.Metrics

	tariffRepo      tariffdomain.Repository
	chargeMapRepo   chargemapdomain.Repository
	consumptionRepo consumptiondomain.Repository
	tenantRepo      tenantdomain.Repository
}

type ServiceParam struct {
	fx.In

	Log             *zap.Logger
	Clock           clock.Clock
	Options         ratingdomain.Options
	Metrics         *observability.Metrics `optional:"true"`
	TariffRepo      tariffdomain.Repository
	ChargeMapRepo   chargemapdomain.Repository
	ConsumptionRepo consumptiondomain.Repository
	TenantRepo      tenantdomain.Repository
}

func NewService(p ServiceParam) ratingdomain.Service {
	return &Service{
		log:  p.Log.Named("rating.service"),
		clk:  p.Clock,
		opts: p.Options,

		metrics: p.Metrics,

		tariffRepo:      p.TariffRepo,
		chargeMapRepo:   p.ChargeMapRepo,
		consumptionRepo: p.ConsumptionRepo,
		tenantRepo:      p.TenantRepo,
	}
}

// RunRating prices every meter a tenant consumed on during the period.
// The tariff snapshot is captured once, so the whole run is priced under
// one consistent rule set; meters are then rated in parallel, and results
// are reassembled in input order.
func (s *Service) RunRating(ctx context.Context, req ratingdomain.RunRequest) (*ratingdomain.RunResult, error) {
	started := time.Now()

	tenant, err := s.tenantRepo.FindByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ratingdomain.ErrTenantNotFound
	}

	referenceDate := s.clk.Now(ctx)
	snap, err := tariffdomain.BuildSnapshot(ctx, s.tariffRepo, referenceDate)
	if err != nil {
		return nil, fmt.Errorf("build tariff snapshot: %w", err)
	}

	rows, err := s.consumptionRepo.ListForTenantPeriod(ctx, req.TenantID, req.Period.String())
	if err != nil {
		return nil, err
	}

	type outcome struct {
		result   *ratingdomain.MeterBillResult
		warnings []ratingdomain.Warning
		err      error
	}
	outcomes := make([]outcome, len(rows))

	workers := s.opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(rows) {
		workers = len(rows)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				result, warnings, err := s.rateMeter(ctx, snap, req.Period, rows[i])
				outcomes[i] = outcome{result: result, warnings: warnings, err: err}
			}
		}()
	}
	for i := range rows {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	run := &ratingdomain.RunResult{
		RunID:         uuid.New(),
		TenantID:      req.TenantID,
		Period:        req.Period.String(),
		ReferenceDate: referenceDate,
	}

	for i, o := range outcomes {
		if o.err != nil {
			run.MeterErrors = append(run.MeterErrors, ratingdomain.MeterError{
				MeterID:     rows[i].MeterID,
				MeterNumber: rows[i].MeterNumber,
				Reason:      o.err.Error(),
			})
			continue
		}
		run.Results = append(run.Results, *o.result)
		run.Warnings = append(run.Warnings, o.warnings...)
	}

	run.Totals = aggregateTotals(req.TenantID, req.Period.String(), run.Results)

	s.observeRun(run, len(rows), time.Since(started))
	s.log.Info("rating run complete",
		zap.String("run_id", run.RunID.String()),
		zap.String("tenant_id", req.TenantID.String()),
		zap.String("period", run.Period),
		zap.Time("reference_date", referenceDate),
		zap.Int("meters", len(rows)),
		zap.Int("errors", len(run.MeterErrors)),
		zap.Int("warnings", len(run.Warnings)),
		zap.Int64("due_to_metro_cents", run.Totals.DueToMetroCents),
	)
	return run, nil
}

func (s *Service) RunAllTenants(ctx context.Context, p period.Period) ([]*ratingdomain.RunResult, error) {
	tenants, err := s.tenantRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*ratingdomain.RunResult, 0, len(tenants))
	for _, tenant := range tenants {
		run, err := s.RunRating(ctx, ratingdomain.RunRequest{TenantID: tenant.ID, Period: p})
		if err != nil {
			s.log.Error("tenant rating run failed",
				zap.String("tenant_id", tenant.ID.String()),
				zap.String("period", p.String()),
				zap.Error(err),
			)
			continue
		}
		results = append(results, run)
	}
	return results, nil
}

func (s *Service) rateMeter(
	ctx context.Context,
	snap *tariffdomain.Snapshot,
	p period.Period,
	row consumptiondomain.MeterConsumptionRow,
) (*ratingdomain.MeterBillResult, []ratingdomain.Warning, error) {
	if row.Days < 1 {
		return nil, nil, fmt.Errorf("%w: got %d", ratingdomain.ErrInvalidDays, row.Days)
	}
	if row.Consumption < 0 {
		return nil, nil, fmt.Errorf("%w: got %d", ratingdomain.ErrNegativeConsumption, row.Consumption)
	}

	result := &ratingdomain.MeterBillResult{
		MeterID:     row.MeterID,
		MeterNumber: row.MeterNumber,
		TenantID:    row.TenantID,
		Period:      p.String(),
		UtilityType: row.UtilityType,
		PrevDate:    row.PrevDate,
		PrevReading: row.PrevReading,
		CurrDate:    row.CurrDate,
		CurrReading: row.CurrReading,
		Days:        row.Days,
		Consumption: row.Consumption,
	}

	switch row.UtilityType {
	case tariffdomain.UtilityElectricity:
		line, warning := rateElectricity(row.MeterID, float64(row.Consumption), snap)
		result.Lines = []ratingdomain.ChargeLine{line}
		result.ElecTotalCents = line.Amount()
		result.TotalDueCents = line.Amount()
		if warning != nil {
			return result, []ratingdomain.Warning{*warning}, nil
		}
		return result, nil, nil

	case tariffdomain.UtilityWater:
		return s.rateWaterMeter(ctx, snap, p, row, result)

	default:
		return nil, nil, fmt.Errorf("%w: %q", ratingdomain.ErrUnknownUtility, row.UtilityType)
	}
}

// rateWaterMeter prices both sides of a water meter: water supply at full
// volume and sanitation at the reduced volume, each followed by its
// mapped extras.
func (s *Service) rateWaterMeter(
	ctx context.Context,
	snap *tariffdomain.Snapshot,
	p period.Period,
	row consumptiondomain.MeterConsumptionRow,
	result *ratingdomain.MeterBillResult,
) (*ratingdomain.MeterBillResult, []ratingdomain.Warning, error) {
	var warnings []ratingdomain.Warning
	consumption := float64(row.Consumption)

	entries, err := s.chargeMapRepo.EnabledCharges(ctx, row.MeterID, p)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve charge map: %w", err)
	}

	if len(entries) == 0 && s.opts.EmptyChargeMapPolicy == config.EmptyChargeMapNone {
		warnings = append(warnings, ratingdomain.Warning{
			MeterID: row.MeterID,
			Code:    ratingdomain.WarningConfigurationGap,
			Message: "charge map empty; meter billed nothing per empty_charge_map=none",
		})
		return result, warnings, nil
	}

	wsTiers := snap.Tiers(tariffdomain.UtilityWater)
	sdTiers := snap.Tiers(tariffdomain.UtilitySanitation)
	if len(wsTiers) == 0 {
		warnings = append(warnings, ratingdomain.Warning{
			MeterID: row.MeterID,
			Code:    ratingdomain.WarningConfigurationGap,
			Message: "no water block tariffs configured; supply side billed nothing",
		})
	}
	if len(sdTiers) == 0 {
		warnings = append(warnings, ratingdomain.Warning{
			MeterID: row.MeterID,
			Code:    ratingdomain.WarningConfigurationGap,
			Message: "no sanitation block tariffs configured; sanitation side billed nothing",
		})
	}

	wsLines, _ := allocateTiers(consumption, row.Days, wsTiers, ratingdomain.GroupWS, false, s.opts.EmitZeroTiers)
	sdLines, billableSD := allocateTiers(consumption, row.Days, sdTiers, ratingdomain.GroupSD, true, s.opts.EmitZeroTiers)

	wsExtras, sdExtras, extraWarnings := resolveExtras(row.MeterID, entries, snap, consumption, billableSD)
	warnings = append(warnings, extraWarnings...)

	result.Lines = append(result.Lines, wsLines...)
	result.Lines = append(result.Lines, wsExtras...)
	result.Lines = append(result.Lines, sdLines...)
	result.Lines = append(result.Lines, sdExtras...)

	result.WSTotalCents = sumLines(wsLines) + sumLines(wsExtras)
	result.SDTotalCents = sumLines(sdLines) + sumLines(sdExtras)
	result.WaterTotalCents = result.WSTotalCents + result.SDTotalCents
	result.TotalDueCents = result.WaterTotalCents
	return result, warnings, nil
}

func aggregateTotals(tenantID snowflake.ID, periodStr string, results []ratingdomain.MeterBillResult) ratingdomain.TenantPeriodTotals {
	totals := ratingdomain.TenantPeriodTotals{
		TenantID: tenantID,
		Period:   periodStr,
	}
	for _, r := range results {
		totals.ElecTotalCents += r.ElecTotalCents
		totals.WaterTotalCents += r.WaterTotalCents
	}
	totals.DueToMetroCents = totals.ElecTotalCents + totals.WaterTotalCents
	return totals
}

func (s *Service) observeRun(run *ratingdomain.RunResult, meters int, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	if len(run.MeterErrors) > 0 {
		outcome = "partial"
	}
	s.metrics.RatingRuns.WithLabelValues(outcome).Inc()
	s.metrics.RatingRunSeconds.Observe(elapsed.Seconds())
	s.metrics.MetersRated.Add(float64(len(run.Results)))
	s.metrics.MeterErrors.Add(float64(len(run.MeterErrors)))
	s.metrics.ConfigurationGaps.Add(float64(len(run.Warnings)))
}
