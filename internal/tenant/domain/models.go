// Package domain holds the tenant registry model.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Tenant is a billed occupant. Metro account details travel on the tenant
// so statements can reference the municipal account.
type Tenant struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	Name           string       `gorm:"type:text;not null"`
	UnitLabel      string       `gorm:"type:text"`
	MetroAccountNo string       `gorm:"type:text;index"`
	Email          string       `gorm:"type:text"`
	Active         bool         `gorm:"not null;default:true"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Tenant) TableName() string { return "tenants" }

type Repository interface {
	Insert(ctx context.Context, tenant *Tenant) error
	FindByID(ctx context.Context, id snowflake.ID) (*Tenant, error)
	ListActive(ctx context.Context) ([]Tenant, error)
}
