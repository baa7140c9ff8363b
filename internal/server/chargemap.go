package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

// @Summary      List Meter Charges
// @Description  List the charge-map rows configured for a meter
// @Tags         charge_map
// @Produce      json
// @Param        id  path  string  true  "Meter ID"
// @Success      200  {array}  chargemapdomain.MeterChargeMap
// @Router       /meters/{id}/charges [get]
func (s *Server) ListMeterCharges(c *gin.Context) {
	meterID, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	rows, err := s.chargeMapRepo.ListByMeter(c.Request.Context(), meterID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, rows)
}
