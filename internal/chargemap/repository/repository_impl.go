package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	chargemapdomain "github.com/meterworks/metrobill/internal/chargemap/domain"
	"github.com/meterworks/metrobill/internal/period"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) chargemapdomain.Repository {
	return &repository{db: db}
}

func (r *repository) EnabledCharges(ctx context.Context, meterID snowflake.ID, p period.Period) ([]chargemapdomain.MeterChargeMap, error) {
	rows, err := r.ListByMeter(ctx, meterID)
	if err != nil {
		return nil, err
	}

	// Window qualification lives on the model; the query stays broad so
	// the rule exists in exactly one place.
	live := rows[:0]
	for _, row := range rows {
		if row.AppliesTo(p) {
			live = append(live, row)
		}
	}
	return live, nil
}

func (r *repository) Insert(ctx context.Context, entry *chargemapdomain.MeterChargeMap) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListByMeter(ctx context.Context, meterID snowflake.ID) ([]chargemapdomain.MeterChargeMap, error) {
	var rows []chargemapdomain.MeterChargeMap
	err := r.db.WithContext(ctx).
		Where("meter_id = ?", meterID).
		Order("charge_code ASC").
		Find(&rows).Error
	return rows, err
}
