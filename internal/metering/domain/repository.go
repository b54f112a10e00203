package domain

import (
	"context"

	"github.com/codiolabs/marketplace-registration/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *MeteringRecord) error
	List(ctx context.Context, db *gorm.DB, customerIdentifier string, page pagination.Pagination) ([]*MeteringRecord, error)
}
