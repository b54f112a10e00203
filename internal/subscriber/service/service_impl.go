package service

import (
	"context"
	"strings"

	"github.com/codiolabs/marketplace-registration/internal/subscriber/domain"
	"github.com/codiolabs/marketplace-registration/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("subscriber.service"),
		repo: p.Repo,
	}
}

func (s *Service) Put(ctx context.Context, record domain.SubscriberRecord) error {
	if strings.TrimSpace(record.CustomerIdentifier) == "" {
		return domain.ErrInvalidIdentifier
	}
	return s.repo.Upsert(ctx, s.db, &record)
}

func (s *Service) Get(ctx context.Context, req domain.GetSubscriberRequest) (domain.SubscriberRecord, error) {
	id := strings.TrimSpace(req.CustomerIdentifier)
	if id == "" {
		return domain.SubscriberRecord{}, domain.ErrInvalidIdentifier
	}

	record, err := s.repo.FindByIdentifier(ctx, s.db, id)
	if err != nil {
		return domain.SubscriberRecord{}, err
	}
	if record == nil {
		return domain.SubscriberRecord{}, domain.ErrNotFound
	}
	return *record, nil
}

func (s *Service) List(ctx context.Context, req domain.ListSubscribersRequest) (domain.ListSubscribersResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, domain.ListSubscribersFilter{
		Email:  strings.TrimSpace(req.Email),
		Status: strings.TrimSpace(req.Status),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListSubscribersResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(record *domain.SubscriberRecord) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{Key: record.CustomerIdentifier})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	subscribers := make([]domain.SubscriberRecord, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		subscribers = append(subscribers, *item)
	}

	resp := domain.ListSubscribersResponse{Subscribers: subscribers}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}
