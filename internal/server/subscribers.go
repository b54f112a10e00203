package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	subscriberdomain "github.com/codiolabs/marketplace-registration/internal/subscriber/domain"
	"github.com/codiolabs/marketplace-registration/pkg/db/pagination"
)

func (s *Server) ListSubscribers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Email  string `form:"email"`
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.subscriberSvc.List(c.Request.Context(), subscriberdomain.ListSubscribersRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Email:     strings.TrimSpace(query.Email),
		Status:    strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSubscriber(c *gin.Context) {
	id := strings.TrimSpace(c.Param("customer_identifier"))
	resp, err := s.subscriberSvc.Get(c.Request.Context(), subscriberdomain.GetSubscriberRequest{
		CustomerIdentifier: id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
