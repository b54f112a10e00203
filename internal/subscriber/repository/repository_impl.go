package repository

import (
	"context"

	"github.com/codiolabs/marketplace-registration/internal/subscriber/domain"
	"github.com/codiolabs/marketplace-registration/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, record *domain.SubscriberRecord) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_identifier"}},
			UpdateAll: true,
		}).
		Create(record).Error
}

func (r *repo) FindByIdentifier(ctx context.Context, db *gorm.DB, customerIdentifier string) (*domain.SubscriberRecord, error) {
	var record domain.SubscriberRecord
	err := db.WithContext(ctx).
		Where("customer_identifier = ?", customerIdentifier).
		Limit(1).
		Find(&record).Error
	if err != nil {
		return nil, err
	}
	if record.CustomerIdentifier == "" {
		return nil, nil
	}
	return &record, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListSubscribersFilter, page pagination.Pagination) ([]*domain.SubscriberRecord, error) {
	var records []*domain.SubscriberRecord
	stmt := db.WithContext(ctx).Model(&domain.SubscriberRecord{})
	if filter.Email != "" {
		stmt = stmt.Where("contact_email = ?", filter.Email)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Where("customer_identifier > ?", cursor.Key)
	}
	limit := page.PageSize
	if limit <= 0 {
		limit = 50
	}

	err := stmt.
		Order("customer_identifier asc").
		Limit(limit + 1).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
