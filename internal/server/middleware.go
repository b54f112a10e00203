package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

const HeaderAPIKey = "X-Api-Key"

// AdminAuthRequired guards the operator read API with a shared API key.
// When no key is configured the admin surface is disabled entirely.
func (s *Server) AdminAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		configured := strings.TrimSpace(s.cfg.AdminAPIKey)
		if configured == "" {
			AbortWithError(c, ErrNotFound)
			return
		}

		provided := strings.TrimSpace(c.GetHeader(HeaderAPIKey))
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Next()
	}
}
