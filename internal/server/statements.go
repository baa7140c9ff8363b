package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/meterworks/metrobill/internal/period"
	statementdomain "github.com/meterworks/metrobill/internal/statement/domain"
)

// @Summary      Get Tenant Statement
// @Description  Get a tenant's stored period totals
// @Tags         statements
// @Produce      json
// @Param        tenant_id  query  string  true  "Tenant ID"
// @Param        period     query  string  true  "Billing period (YYYY-MM)"
// @Success      200  {object}  statementdomain.TenantStatement
// @Router       /statements [get]
func (s *Server) GetTenantStatement(c *gin.Context) {
	tenantID, p, ok := s.statementQuery(c)
	if !ok {
		return
	}

	stmt, err := s.statementRepo.FindTenantStatement(c.Request.Context(), s.db, tenantID, p.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if stmt == nil {
		c.JSON(404, gin.H{"error": apiError{Code: "not_found", Message: "no statement for tenant and period"}})
		return
	}
	respondData(c, stmt)
}

type meterStatementView struct {
	statementdomain.MeterStatement
	Lines []statementdomain.StatementLine `json:"lines"`
}

// @Summary      List Meter Statements
// @Description  List a tenant's stored per-meter statements with breakdown lines
// @Tags         statements
// @Produce      json
// @Param        tenant_id  query  string  true  "Tenant ID"
// @Param        period     query  string  true  "Billing period (YYYY-MM)"
// @Success      200  {array}  meterStatementView
// @Router       /statements/meters [get]
func (s *Server) ListMeterStatements(c *gin.Context) {
	tenantID, p, ok := s.statementQuery(c)
	if !ok {
		return
	}

	stmts, err := s.statementRepo.ListMeterStatements(c.Request.Context(), s.db, tenantID, p.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	views := make([]meterStatementView, 0, len(stmts))
	for _, stmt := range stmts {
		lines, err := s.statementRepo.ListLines(c.Request.Context(), s.db, stmt.ID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		views = append(views, meterStatementView{MeterStatement: stmt, Lines: lines})
	}
	respondList(c, views)
}

func (s *Server) statementQuery(c *gin.Context) (snowflake.ID, period.Period, bool) {
	tenantID, err := snowflake.ParseString(strings.TrimSpace(c.Query("tenant_id")))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return 0, period.Period{}, false
	}
	p, err := period.Parse(strings.TrimSpace(c.Query("period")))
	if err != nil {
		AbortWithError(c, err)
		return 0, period.Period{}, false
	}
	return tenantID, p, true
}
