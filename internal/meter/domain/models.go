// Package domain holds the physical meter registry model.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Meter is one physical electricity or water meter attached to a tenant.
type Meter struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	TenantID    snowflake.ID `gorm:"not null;index"`
	MeterNumber string       `gorm:"type:text;not null;uniqueIndex"`
	UtilityType string       `gorm:"type:text;not null"`
	Active      bool         `gorm:"not null;default:true"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Meter) TableName() string { return "meters" }

type Repository interface {
	Insert(ctx context.Context, meter *Meter) error
	FindByID(ctx context.Context, id snowflake.ID) (*Meter, error)
	ListByTenant(ctx context.Context, tenantID snowflake.ID) ([]Meter, error)
}
