package service

import (
	"context"
	"fmt"

	ledgerdomain "github.com/meterworks/metrobill/internal/ledger/domain"
	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
	statementdomain "github.com/meterworks/metrobill/internal/statement/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	repo       statementdomain.Repository
	ledgerRepo ledgerdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Repo       statementdomain.Repository
	LedgerRepo ledgerdomain.Repository
}

func NewService(p ServiceParam) statementdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("statement.service"),

		repo:       p.Repo,
		ledgerRepo: p.LedgerRepo,
	}
}

// Commit persists one rating run in a single transaction: per-meter
// statements with replaced breakdown lines, the tenant period totals, and
// the "Due to Metro" ledger charge. Every write is keyed so replaying the
// same run replaces rather than duplicates.
func (s *Service) Commit(ctx context.Context, run *ratingdomain.RunResult) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, result := range run.Results {
			stmt := &statementdomain.MeterStatement{
				TenantID:        result.TenantID,
				MeterID:         result.MeterID,
				Period:          result.Period,
				UtilityType:     result.UtilityType,
				PrevDate:        result.PrevDate,
				PrevReading:     result.PrevReading,
				CurrDate:        result.CurrDate,
				CurrReading:     result.CurrReading,
				Days:            result.Days,
				Consumption:     result.Consumption,
				WSTotalCents:    result.WSTotalCents,
				SDTotalCents:    result.SDTotalCents,
				ElecTotalCents:  result.ElecTotalCents,
				WaterTotalCents: result.WaterTotalCents,
				TotalDueCents:   result.TotalDueCents,
				UpdatedAt:       run.ReferenceDate,
			}
			statementID, err := s.repo.UpsertMeterStatement(ctx, tx, stmt)
			if err != nil {
				return fmt.Errorf("upsert statement for meter %s: %w", result.MeterID, err)
			}

			lines := make([]statementdomain.StatementLine, 0, len(result.Lines))
			for _, l := range result.Lines {
				lines = append(lines, statementdomain.StatementLine{
					Code:        l.Code,
					Description: l.Description,
					GroupTag:    l.Group,
					Quantity:    l.Quantity,
					RateCents:   l.RateCents,
					AmountCents: l.AmountCents,
					Rank:        l.Rank,
				})
			}
			if err := s.repo.ReplaceLines(ctx, tx, statementID, lines); err != nil {
				return fmt.Errorf("replace lines for meter %s: %w", result.MeterID, err)
			}
		}

		if err := s.repo.UpsertTenantStatement(ctx, tx, &statementdomain.TenantStatement{
			TenantID:        run.Totals.TenantID,
			Period:          run.Totals.Period,
			ElecTotalCents:  run.Totals.ElecTotalCents,
			WaterTotalCents: run.Totals.WaterTotalCents,
			DueToMetroCents: run.Totals.DueToMetroCents,
			UpdatedAt:       run.ReferenceDate,
		}); err != nil {
			return err
		}

		return s.ledgerRepo.UpsertCharge(ctx, tx, &ledgerdomain.Entry{
			TenantID:    run.Totals.TenantID,
			Period:      run.Totals.Period,
			Description: ledgerdomain.DueToMetroDescription,
			Kind:        ledgerdomain.KindCharge,
			AmountCents: run.Totals.DueToMetroCents,
			Ref:         fmt.Sprintf("RUN %s", run.RunID),
			TxnDate:     run.ReferenceDate,
		})
	})
	if err != nil {
		return err
	}

	s.log.Info("rating run committed",
		zap.String("run_id", run.RunID.String()),
		zap.String("tenant_id", run.Totals.TenantID.String()),
		zap.String("period", run.Totals.Period),
		zap.Int("meters", len(run.Results)),
	)
	return nil
}
