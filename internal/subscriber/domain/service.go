package domain

import (
	"context"
	"errors"

	"github.com/codiolabs/marketplace-registration/pkg/db/pagination"
)

type ListSubscribersRequest struct {
	PageToken string
	PageSize  int32
	Email     string
	Status    string
}

type ListSubscribersFilter struct {
	Email  string
	Status string
}

type ListSubscribersResponse struct {
	pagination.PageInfo
	Subscribers []SubscriberRecord `json:"subscribers"`
}

type GetSubscriberRequest struct {
	CustomerIdentifier string
}

type Service interface {
	// Put writes the record keyed by customer identifier with unconditional
	// overwrite semantics. There is no conflict detection; the last writer
	// wins.
	Put(context.Context, SubscriberRecord) error
	Get(context.Context, GetSubscriberRequest) (SubscriberRecord, error)
	List(context.Context, ListSubscribersRequest) (ListSubscribersResponse, error)
}

var (
	ErrInvalidIdentifier = errors.New("invalid_customer_identifier")
	ErrNotFound          = errors.New("not_found")
)
