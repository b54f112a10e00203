package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	meteringdomain "github.com/codiolabs/marketplace-registration/internal/metering/domain"
	"github.com/codiolabs/marketplace-registration/pkg/db/pagination"
)

func (s *Server) ListMeteringRecords(c *gin.Context) {
	var query struct {
		pagination.Pagination
		CustomerIdentifier string `form:"customer_identifier"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.meteringSvc.List(c.Request.Context(), meteringdomain.ListMeteringRequest{
		CustomerIdentifier: strings.TrimSpace(query.CustomerIdentifier),
		PageToken:          query.PageToken,
		PageSize:           int32(query.PageSize),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
