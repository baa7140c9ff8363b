package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	ledgerdomain "github.com/meterworks/metrobill/internal/ledger/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	genID *snowflake.Node
}

func NewRepository(genID *snowflake.Node) ledgerdomain.Repository {
	return &repository{genID: genID}
}

func (r *repository) UpsertCharge(ctx context.Context, db *gorm.DB, entry *ledgerdomain.Entry) error {
	if entry.ID == 0 {
		entry.ID = r.genID.Generate()
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "period"}, {Name: "description"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount_cents", "ref", "txn_date"}),
	}).Create(entry).Error
}

func (r *repository) ListByTenant(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]ledgerdomain.Entry, error) {
	var rows []ledgerdomain.Entry
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("txn_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}
