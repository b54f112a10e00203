package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/codiolabs/marketplace-registration/internal/metering/domain"
	"github.com/codiolabs/marketplace-registration/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("metering.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Append(ctx context.Context, req domain.AppendRequest) (domain.MeteringRecord, error) {
	customerIdentifier := strings.TrimSpace(req.CustomerIdentifier)
	if customerIdentifier == "" {
		return domain.MeteringRecord{}, domain.ErrInvalidIdentifier
	}
	if req.Quantity <= 0 {
		return domain.MeteringRecord{}, domain.ErrInvalidQuantity
	}
	if strings.TrimSpace(req.Dimension) == "" {
		return domain.MeteringRecord{}, domain.ErrInvalidDimension
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	record := domain.MeteringRecord{
		CustomerIdentifier: customerIdentifier,
		Timestamp:          ts.UTC().Format(domain.TimestampLayout),
		EventID:            s.genID.Generate(),
		ProductCode:        req.ProductCode,
		Dimension:          req.Dimension,
		Quantity:           req.Quantity,
		Event:              req.Event,
	}

	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		return domain.MeteringRecord{}, err
	}

	return record, nil
}

func (s *Service) List(ctx context.Context, req domain.ListMeteringRequest) (domain.ListMeteringResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, strings.TrimSpace(req.CustomerIdentifier), pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListMeteringResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(record *domain.MeteringRecord) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			Key:       record.CustomerIdentifier,
			CreatedAt: record.Timestamp,
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	records := make([]domain.MeteringRecord, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		records = append(records, *item)
	}

	resp := domain.ListMeteringResponse{MeteringRecords: records}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}
