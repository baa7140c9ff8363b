package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	meterdomain "github.com/meterworks/metrobill/internal/meter/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) meterdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, m *meterdomain.Meter) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*meterdomain.Meter, error) {
	var m meterdomain.Meter
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) ListByTenant(ctx context.Context, tenantID snowflake.ID) ([]meterdomain.Meter, error) {
	var rows []meterdomain.Meter
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("meter_number ASC").
		Find(&rows).Error
	return rows, err
}
