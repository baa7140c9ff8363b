package repository

import (
	"context"
	"time"

	tariffdomain "github.com/meterworks/metrobill/internal/tariff/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) tariffdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Latest(ctx context.Context, code, utilityType string, asOf time.Time) (*tariffdomain.TariffRate, error) {
	var row tariffdomain.TariffRate
	err := r.db.WithContext(ctx).
		Where("code = ? AND utility_type = ? AND effective_date <= ?", code, utilityType, asOf).
		Order("effective_date DESC").
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListUpTo(ctx context.Context, asOf time.Time) ([]tariffdomain.TariffRate, error) {
	var rows []tariffdomain.TariffRate
	err := r.db.WithContext(ctx).
		Where("effective_date <= ?", asOf).
		Order("code ASC, effective_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Insert(ctx context.Context, rate *tariffdomain.TariffRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}
