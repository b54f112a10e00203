package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/codiolabs/marketplace-registration/internal/clock"
	"github.com/codiolabs/marketplace-registration/internal/config"
	"github.com/codiolabs/marketplace-registration/internal/directory"
	meteringdomain "github.com/codiolabs/marketplace-registration/internal/metering/domain"
	obsmetrics "github.com/codiolabs/marketplace-registration/internal/observability/metrics"
	"github.com/codiolabs/marketplace-registration/internal/registration/domain"
	subscriberdomain "github.com/codiolabs/marketplace-registration/internal/subscriber/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log         *zap.Logger
	Listing     config.Listing
	Resolver    directory.Resolver
	Subscribers subscriberdomain.Service
	Metering    meteringdomain.Service
	Clock       clock.Clock
	Metrics     *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log         *zap.Logger
	listing     config.Listing
	resolver    directory.Resolver
	subscribers subscriberdomain.Service
	metering    meteringdomain.Service
	clock       clock.Clock
	metrics     *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:         p.Log.Named("registration.service"),
		listing:     p.Listing,
		resolver:    p.Resolver,
		subscribers: p.Subscribers,
		metering:    p.Metering,
		clock:       p.Clock,
		metrics:     p.Metrics,
	}
}

// Register runs the linear registration pipeline: validate, resolve the
// token, persist the subscriber, append one metering event. Each step
// short-circuits on failure; there are no retries and no rollback of the
// subscriber write when the metering append fails.
func (s *Service) Register(ctx context.Context, req domain.Request) (domain.Result, error) {
	regToken := strings.TrimSpace(req.RegToken)
	if regToken == "" {
		s.metrics.RecordRegistration(obsmetrics.RegistrationOutcomeValidation)
		return domain.Result{}, domain.ErrMissingToken
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	contactEmail := strings.TrimSpace(req.ContactEmail)
	if firstName == "" || lastName == "" || contactEmail == "" {
		s.metrics.RecordRegistration(obsmetrics.RegistrationOutcomeValidation)
		return domain.Result{}, domain.ErrMissingIdentity
	}

	resolved, err := s.resolver.Resolve(ctx, regToken)
	if err != nil {
		s.log.Warn("token resolution failed", zap.Error(err))
		s.metrics.RecordResolveError()
		s.metrics.RecordRegistration(obsmetrics.RegistrationOutcomeResolution)
		return domain.Result{}, domain.ErrTokenResolution
	}

	productCode := resolved.ProductCode
	if productCode == "" {
		productCode = s.listing.ProductCode
	}

	record := subscriberdomain.SubscriberRecord{
		CustomerIdentifier: resolved.CustomerIdentifier,
		ProductCode:        productCode,
		FirstName:          firstName,
		LastName:           lastName,
		ContactEmail:       contactEmail,
		ContactPerson:      firstName + " " + lastName,
		RegistrationDate:   s.clock.Now(),
		ListingName:        s.listing.Name,
		Status:             subscriberdomain.StatusRegistered,
	}
	if err := s.subscribers.Put(ctx, record); err != nil {
		s.log.Error("subscriber write failed",
			zap.String("customer_identifier", resolved.CustomerIdentifier),
			zap.Error(err),
		)
		s.metrics.RecordRegistration(obsmetrics.RegistrationOutcomePersist)
		return domain.Result{}, domain.ErrPersistence
	}

	if _, err := s.metering.Append(ctx, meteringdomain.AppendRequest{
		CustomerIdentifier: resolved.CustomerIdentifier,
		ProductCode:        productCode,
		Dimension:          meteringdomain.DimensionUsers,
		Quantity:           1,
		Event:              meteringdomain.EventRegistration,
		Timestamp:          s.clock.Now(),
	}); err != nil {
		// The subscriber row above is already durable; the customer is
		// registered but unmetered until the caller retries.
		s.log.Error("metering append failed",
			zap.String("customer_identifier", resolved.CustomerIdentifier),
			zap.Error(err),
		)
		s.metrics.RecordRegistration(obsmetrics.RegistrationOutcomePersist)
		return domain.Result{}, domain.ErrPersistence
	}
	s.metrics.RecordMeteringEvent()

	s.log.Info("registration completed",
		zap.String("customer_identifier", resolved.CustomerIdentifier),
		zap.String("product_code", productCode),
	)
	s.metrics.RecordRegistration(obsmetrics.RegistrationOutcomeSuccess)

	return domain.Result{
		Message: fmt.Sprintf(
			"Registration successful for %s! Welcome %s. You will receive setup instructions via email shortly.",
			s.listing.Name, firstName,
		),
		CustomerIdentifier: resolved.CustomerIdentifier,
	}, nil
}
