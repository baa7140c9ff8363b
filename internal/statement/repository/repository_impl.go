package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	statementdomain "github.com/meterworks/metrobill/internal/statement/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	genID *snowflake.Node
}

func NewRepository(genID *snowflake.Node) statementdomain.Repository {
	return &repository{genID: genID}
}

func (r *repository) UpsertMeterStatement(ctx context.Context, db *gorm.DB, stmt *statementdomain.MeterStatement) (snowflake.ID, error) {
	if stmt.ID == 0 {
		stmt.ID = r.genID.Generate()
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "meter_id"}, {Name: "period"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"utility_type", "prev_date", "prev_reading", "curr_date", "curr_reading",
			"days", "consumption", "ws_total_cents", "sd_total_cents", "elec_total_cents",
			"water_total_cents", "total_due_cents", "updated_at",
		}),
	}).Create(stmt).Error
	if err != nil {
		return 0, err
	}

	// On conflict the generated ID was discarded; read back the stored one.
	var existing statementdomain.MeterStatement
	err = db.WithContext(ctx).
		Where("tenant_id = ? AND meter_id = ? AND period = ?", stmt.TenantID, stmt.MeterID, stmt.Period).
		First(&existing).Error
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}

func (r *repository) ReplaceLines(ctx context.Context, db *gorm.DB, statementID snowflake.ID, lines []statementdomain.StatementLine) error {
	if err := db.WithContext(ctx).
		Where("statement_id = ?", statementID).
		Delete(&statementdomain.StatementLine{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].ID = r.genID.Generate()
		lines[i].StatementID = statementID
	}
	return db.WithContext(ctx).Create(&lines).Error
}

func (r *repository) UpsertTenantStatement(ctx context.Context, db *gorm.DB, stmt *statementdomain.TenantStatement) error {
	if stmt.ID == 0 {
		stmt.ID = r.genID.Generate()
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "period"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"elec_total_cents", "water_total_cents", "due_to_metro_cents", "updated_at",
		}),
	}).Create(stmt).Error
}

func (r *repository) FindTenantStatement(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, period string) (*statementdomain.TenantStatement, error) {
	var stmt statementdomain.TenantStatement
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND period = ?", tenantID, period).
		First(&stmt).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &stmt, nil
}

func (r *repository) ListMeterStatements(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, period string) ([]statementdomain.MeterStatement, error) {
	var rows []statementdomain.MeterStatement
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND period = ?", tenantID, period).
		Order("utility_type ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListLines(ctx context.Context, db *gorm.DB, statementID snowflake.ID) ([]statementdomain.StatementLine, error) {
	var rows []statementdomain.StatementLine
	err := db.WithContext(ctx).
		Where("statement_id = ?", statementID).
		Order("rank ASC, id ASC").
		Find(&rows).Error
	return rows, err
}
