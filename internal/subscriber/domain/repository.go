package domain

import (
	"context"

	"github.com/codiolabs/marketplace-registration/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Upsert(ctx context.Context, db *gorm.DB, record *SubscriberRecord) error
	FindByIdentifier(ctx context.Context, db *gorm.DB, customerIdentifier string) (*SubscriberRecord, error)
	List(ctx context.Context, db *gorm.DB, filter ListSubscribersFilter, page pagination.Pagination) ([]*SubscriberRecord, error)
}
