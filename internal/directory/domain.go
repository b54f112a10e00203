// Package directory resolves marketplace registration tokens against the
// customer directory. A registration token proves entitlement, not identity;
// resolution exchanges it for the stable customer identifier all downstream
// records key on.
package directory

import (
	"context"
	"errors"
)

// ResolvedCustomer is the trusted identity derived from a registration token.
type ResolvedCustomer struct {
	CustomerIdentifier string `json:"customerIdentifier"`
	ProductCode        string `json:"productCode,omitempty"`
}

// Resolver exchanges an opaque registration token for a customer identity.
type Resolver interface {
	Resolve(ctx context.Context, regToken string) (ResolvedCustomer, error)
}

var (
	ErrTokenRejected   = errors.New("token_rejected")
	ErrUnavailable     = errors.New("directory_unavailable")
	ErrInvalidResponse = errors.New("directory_invalid_response")
)
