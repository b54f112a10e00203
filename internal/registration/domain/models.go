// Package domain defines the registration workflow contract: turning a
// marketplace registration token into a durable subscriber record and one
// initial usage metering event.
package domain

import (
	"context"
	"errors"
)

// Request is the untrusted inbound registration submission.
type Request struct {
	RegToken     string `json:"regToken"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ContactEmail string `json:"contactEmail"`
	// ProductCode is advisory only; the authoritative value comes from
	// directory resolution.
	ProductCode string `json:"productCode,omitempty"`
}

// Result is the confirmation payload for a successful registration.
type Result struct {
	Message            string `json:"message"`
	CustomerIdentifier string `json:"customerIdentifier"`
}

type Service interface {
	Register(context.Context, Request) (Result, error)
}

var (
	// ErrMissingToken and ErrMissingIdentity reject malformed input before
	// any external call is made.
	ErrMissingToken    = errors.New("missing_token")
	ErrMissingIdentity = errors.New("missing_identity_fields")

	// ErrTokenResolution covers every directory failure: the caller must
	// restart from the marketplace flow with a fresh token.
	ErrTokenResolution = errors.New("token_resolution_failed")

	// ErrPersistence covers a failed subscriber or metering write. The whole
	// registration may be retried by the caller; a retry after a metering
	// failure appends a second metering event for the same registration.
	ErrPersistence = errors.New("persistence_failed")
)
