package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	consumptiondomain "github.com/meterworks/metrobill/internal/consumption/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) consumptiondomain.Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, rec *consumptiondomain.ConsumptionRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "meter_id"}, {Name: "period"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"prev_date", "prev_reading", "curr_date", "curr_reading", "days", "consumption",
		}),
	}).Create(rec).Error
}

func (r *repository) ListForTenantPeriod(ctx context.Context, tenantID snowflake.ID, period string) ([]consumptiondomain.MeterConsumptionRow, error) {
	var rows []consumptiondomain.MeterConsumptionRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT
			c.meter_id,
			m.meter_number,
			LOWER(m.utility_type) AS utility_type,
			m.tenant_id,
			c.period,
			c.prev_date,
			c.prev_reading,
			c.curr_date,
			c.curr_reading,
			c.days,
			c.consumption
		 FROM consumption_records c
		 JOIN meters m ON m.id = c.meter_id
		 WHERE m.tenant_id = ? AND c.period = ?
		 ORDER BY CASE WHEN LOWER(m.utility_type) = 'electricity' THEN 0 ELSE 1 END,
		          m.meter_number`,
		tenantID,
		period,
	).Scan(&rows).Error
	return rows, err
}
