package repository

import (
	"context"

	"github.com/codiolabs/marketplace-registration/internal/metering/domain"
	pkgdb "github.com/codiolabs/marketplace-registration/pkg/db"
	"github.com/codiolabs/marketplace-registration/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.MeteringRecord) error {
	if err := db.WithContext(ctx).Create(record).Error; err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.ErrDuplicateEvent
		}
		return err
	}
	return nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, customerIdentifier string, page pagination.Pagination) ([]*domain.MeteringRecord, error) {
	var records []*domain.MeteringRecord
	stmt := db.WithContext(ctx).Model(&domain.MeteringRecord{})
	if customerIdentifier != "" {
		stmt = stmt.Where("customer_identifier = ?", customerIdentifier)
	}

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		// Cursor matches the (customer_identifier, timestamp) sort order; a
		// timestamp-only filter would skip later customers with earlier
		// timestamps.
		stmt = stmt.Where(
			"customer_identifier > ? OR (customer_identifier = ? AND timestamp > ?)",
			cursor.Key, cursor.Key, cursor.CreatedAt,
		)
	}
	limit := page.PageSize
	if limit <= 0 {
		limit = 50
	}

	err := stmt.
		Order("customer_identifier asc, timestamp asc").
		Limit(limit + 1).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
