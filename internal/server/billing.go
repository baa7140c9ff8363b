package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/meterworks/metrobill/internal/period"
	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
)

type runBillingRequest struct {
	TenantID string `json:"tenant_id" binding:"required"`
	Period   string `json:"period" binding:"required"`
	// DryRun computes the run without committing statements or the
	// ledger charge.
	DryRun bool `json:"dry_run"`
}

// @Summary      Run Billing
// @Description  Rate all of a tenant's meters for a period and persist the result
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        request body runBillingRequest true "Run Billing Request"
// @Success      200  {object}  ratingdomain.RunResult
// @Router       /billing/runs [post]
func (s *Server) RunBilling(c *gin.Context) {
	var req runBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	tenantID, err := snowflake.ParseString(strings.TrimSpace(req.TenantID))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	p, err := period.Parse(strings.TrimSpace(req.Period))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	run, err := s.ratingSvc.RunRating(c.Request.Context(), ratingdomain.RunRequest{
		TenantID: tenantID,
		Period:   p,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if !req.DryRun {
		if err := s.statementSvc.Commit(c.Request.Context(), run); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	respondData(c, run)
}
