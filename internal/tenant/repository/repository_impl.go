package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	tenantdomain "github.com/meterworks/metrobill/internal/tenant/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) tenantdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, t *tenantdomain.Tenant) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*tenantdomain.Tenant, error) {
	var t tenantdomain.Tenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) ListActive(ctx context.Context) ([]tenantdomain.Tenant, error) {
	var rows []tenantdomain.Tenant
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}
