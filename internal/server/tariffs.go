package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// @Summary      List Tariffs
// @Description  List tariff versions effective on or before a date
// @Tags         tariffs
// @Produce      json
// @Param        as_of  query  string  false  "Reference date (RFC3339), defaults to now"
// @Success      200  {array}  tariffdomain.TariffRate
// @Router       /tariffs [get]
func (s *Server) ListTariffs(c *gin.Context) {
	asOf := s.clk.Now(c.Request.Context())
	if raw := strings.TrimSpace(c.Query("as_of")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		asOf = parsed
	}

	rows, err := s.tariffRepo.ListUpTo(c.Request.Context(), asOf)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, rows)
}
