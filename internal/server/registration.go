package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	obslogger "github.com/codiolabs/marketplace-registration/internal/observability/logger"
	registrationdomain "github.com/codiolabs/marketplace-registration/internal/registration/domain"
)

// Registration error messages shown to end users. The registration page is
// served from a static site, so every response carries permissive CORS
// headers, error responses included.
const (
	msgMissingToken    = "Registration token is required. Please access this page through AWS Marketplace."
	msgMissingIdentity = "First name, last name, and email are required."
	msgInvalidToken    = "Invalid registration token. Please try again from AWS Marketplace."
	msgRegistrationErr = "Registration failed. Please try again or contact support."
	msgTooManyRequests = "Too many registration attempts. Please try again later."
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Header("Access-Control-Allow-Methods", "POST,OPTIONS")
		c.Next()
	}
}

// RegisterPreflight answers the CORS preflight with an empty body.
func (s *Server) RegisterPreflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

type RegistrationRequest struct {
	RegToken     string `json:"regToken"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ContactEmail string `json:"contactEmail"`
	ProductCode  string `json:"productCode"`
}

func (s *Server) Register(c *gin.Context) {
	allowed, err := s.limiter.Allow(c.Request.Context(), c.ClientIP())
	if err != nil {
		// Fail open: losing redis must not block registrations.
		obslogger.FromContext(c.Request.Context()).Warn("rate limiter unavailable, allowing request",
			zap.String("client_ip", c.ClientIP()),
			zap.Error(err),
		)
		allowed = true
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": msgTooManyRequests})
		return
	}

	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgRegistrationErr})
		return
	}

	result, err := s.registrationSvc.Register(c.Request.Context(), registrationdomain.Request{
		RegToken:     req.RegToken,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ContactEmail: req.ContactEmail,
		ProductCode:  req.ProductCode,
	})
	if err != nil {
		status, message := mapRegistrationError(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, result)
}

func mapRegistrationError(err error) (int, string) {
	switch {
	case errors.Is(err, registrationdomain.ErrMissingToken):
		return http.StatusBadRequest, msgMissingToken
	case errors.Is(err, registrationdomain.ErrMissingIdentity):
		return http.StatusBadRequest, msgMissingIdentity
	case errors.Is(err, registrationdomain.ErrTokenResolution):
		return http.StatusBadRequest, msgInvalidToken
	default:
		return http.StatusInternalServerError, msgRegistrationErr
	}
}
