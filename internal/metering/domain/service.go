package domain

import (
	"context"
	"errors"
	"time"

	"github.com/codiolabs/marketplace-registration/pkg/db/pagination"
)

type AppendRequest struct {
	CustomerIdentifier string
	ProductCode        string
	Dimension          string
	Quantity           int
	Event              string
	Timestamp          time.Time
}

type ListMeteringRequest struct {
	CustomerIdentifier string
	PageToken          string
	PageSize           int32
}

type ListMeteringResponse struct {
	pagination.PageInfo
	MeteringRecords []MeteringRecord `json:"metering_records"`
}

type Service interface {
	// Append writes one usage event under a fresh composite key. Appends are
	// never deduplicated; a retried registration produces a second event.
	Append(context.Context, AppendRequest) (MeteringRecord, error)
	List(context.Context, ListMeteringRequest) (ListMeteringResponse, error)
}

var (
	ErrInvalidIdentifier = errors.New("invalid_customer_identifier")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidDimension  = errors.New("invalid_dimension")

	// ErrDuplicateEvent signals a composite key collision: a second event for
	// the same customer within the same nanosecond. The write is rejected, not
	// merged.
	ErrDuplicateEvent = errors.New("duplicate_event")
)
