package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codiolabs/marketplace-registration/internal/clock"
	"github.com/codiolabs/marketplace-registration/internal/config"
	"github.com/codiolabs/marketplace-registration/internal/directory"
	meteringdomain "github.com/codiolabs/marketplace-registration/internal/metering/domain"
	"github.com/codiolabs/marketplace-registration/internal/registration/domain"
	subscriberdomain "github.com/codiolabs/marketplace-registration/internal/subscriber/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// -- Fakes --

type fakeResolver struct {
	calls  int
	result directory.ResolvedCustomer
	err    error
}

func (f *fakeResolver) Resolve(ctx context.Context, regToken string) (directory.ResolvedCustomer, error) {
	f.calls++
	_ = ctx
	_ = regToken
	if f.err != nil {
		return directory.ResolvedCustomer{}, f.err
	}
	return f.result, nil
}

type fakeSubscribers struct {
	putCalls int
	last     subscriberdomain.SubscriberRecord
	err      error

	// order tracks the global call sequence shared with the metering fake.
	order *[]string
}

func (f *fakeSubscribers) Put(ctx context.Context, record subscriberdomain.SubscriberRecord) error {
	f.putCalls++
	f.last = record
	if f.order != nil {
		*f.order = append(*f.order, "subscriber.put")
	}
	_ = ctx
	return f.err
}

func (f *fakeSubscribers) Get(context.Context, subscriberdomain.GetSubscriberRequest) (subscriberdomain.SubscriberRecord, error) {
	return subscriberdomain.SubscriberRecord{}, nil
}

func (f *fakeSubscribers) List(context.Context, subscriberdomain.ListSubscribersRequest) (subscriberdomain.ListSubscribersResponse, error) {
	return subscriberdomain.ListSubscribersResponse{}, nil
}

type fakeMetering struct {
	appendCalls int
	last        meteringdomain.AppendRequest
	err         error

	order *[]string
}

func (f *fakeMetering) Append(ctx context.Context, req meteringdomain.AppendRequest) (meteringdomain.MeteringRecord, error) {
	f.appendCalls++
	f.last = req
	if f.order != nil {
		*f.order = append(*f.order, "metering.append")
	}
	_ = ctx
	if f.err != nil {
		return meteringdomain.MeteringRecord{}, f.err
	}
	return meteringdomain.MeteringRecord{
		CustomerIdentifier: req.CustomerIdentifier,
		Timestamp:          req.Timestamp.UTC().Format(meteringdomain.TimestampLayout),
		ProductCode:        req.ProductCode,
		Dimension:          req.Dimension,
		Quantity:           req.Quantity,
		Event:              req.Event,
	}, nil
}

func (f *fakeMetering) List(context.Context, meteringdomain.ListMeteringRequest) (meteringdomain.ListMeteringResponse, error) {
	return meteringdomain.ListMeteringResponse{}, nil
}

type fixture struct {
	svc         domain.Service
	resolver    *fakeResolver
	subscribers *fakeSubscribers
	metering    *fakeMetering
	clock       *clock.FakeClock
	order       []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		resolver: &fakeResolver{
			result: directory.ResolvedCustomer{
				CustomerIdentifier: "cust-42",
				ProductCode:        "prod-x",
			},
		},
		clock: clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	}
	f.subscribers = &fakeSubscribers{order: &f.order}
	f.metering = &fakeMetering{order: &f.order}

	f.svc = New(Params{
		Log: zap.NewNop(),
		Listing: config.Listing{
			Name:        "Acme Cloud IDE",
			ProductCode: "prod-default",
		},
		Resolver:    f.resolver,
		Subscribers: f.subscribers,
		Metering:    f.metering,
		Clock:       f.clock,
	})
	return f
}

func validRequest() domain.Request {
	return domain.Request{
		RegToken:     "tok-1",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		ContactEmail: "ada@example.com",
	}
}

// -- Tests --

func TestRegister_MissingToken(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.RegToken = "  "

	_, err := f.svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrMissingToken)
	assert.Zero(t, f.resolver.calls)
	assert.Zero(t, f.subscribers.putCalls)
	assert.Zero(t, f.metering.appendCalls)
}

func TestRegister_MissingIdentityFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Request)
	}{
		{"missing first name", func(r *domain.Request) { r.FirstName = "" }},
		{"missing last name", func(r *domain.Request) { r.LastName = "" }},
		{"missing email", func(r *domain.Request) { r.ContactEmail = "" }},
		{"whitespace only", func(r *domain.Request) { r.FirstName = "   " }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			req := validRequest()
			tc.mutate(&req)

			_, err := f.svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrMissingIdentity)
			assert.Zero(t, f.resolver.calls)
			assert.Zero(t, f.subscribers.putCalls)
			assert.Zero(t, f.metering.appendCalls)
		})
	}
}

func TestRegister_Success(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Register(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, f.resolver.calls)
	assert.Equal(t, 1, f.subscribers.putCalls)
	assert.Equal(t, 1, f.metering.appendCalls)
	assert.Equal(t, []string{"subscriber.put", "metering.append"}, f.order)

	assert.Equal(t, "cust-42", result.CustomerIdentifier)
	assert.Contains(t, result.Message, "Acme Cloud IDE")
	assert.Contains(t, result.Message, "Welcome Ada")

	record := f.subscribers.last
	assert.Equal(t, "cust-42", record.CustomerIdentifier)
	assert.Equal(t, "prod-x", record.ProductCode)
	assert.Equal(t, "Ada", record.FirstName)
	assert.Equal(t, "Lovelace", record.LastName)
	assert.Equal(t, "ada@example.com", record.ContactEmail)
	assert.Equal(t, "Ada Lovelace", record.ContactPerson)
	assert.Equal(t, subscriberdomain.StatusRegistered, record.Status)
	assert.Equal(t, "Acme Cloud IDE", record.ListingName)
	assert.Equal(t, f.clock.Now(), record.RegistrationDate)

	event := f.metering.last
	assert.Equal(t, "cust-42", event.CustomerIdentifier)
	assert.Equal(t, "prod-x", event.ProductCode)
	assert.Equal(t, meteringdomain.DimensionUsers, event.Dimension)
	assert.Equal(t, 1, event.Quantity)
	assert.Equal(t, meteringdomain.EventRegistration, event.Event)
}

func TestRegister_ProductCodeFallsBackToListing(t *testing.T) {
	f := newFixture(t)
	f.resolver.result.ProductCode = ""

	_, err := f.svc.Register(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "prod-default", f.subscribers.last.ProductCode)
	assert.Equal(t, "prod-default", f.metering.last.ProductCode)
}

func TestRegister_AdvisoryProductCodeIgnored(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.ProductCode = "prod-client-claims"

	_, err := f.svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "prod-x", f.subscribers.last.ProductCode)
}

func TestRegister_ResolutionFailure(t *testing.T) {
	f := newFixture(t)
	f.resolver.err = directory.ErrTokenRejected

	_, err := f.svc.Register(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrTokenResolution)
	assert.Equal(t, 1, f.resolver.calls)
	assert.Zero(t, f.subscribers.putCalls)
	assert.Zero(t, f.metering.appendCalls)
}

func TestRegister_DirectoryOutageFailure(t *testing.T) {
	f := newFixture(t)
	f.resolver.err = directory.ErrUnavailable

	_, err := f.svc.Register(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrTokenResolution)
}

func TestRegister_SubscriberWriteFailure(t *testing.T) {
	f := newFixture(t)
	f.subscribers.err = errors.New("connection reset")

	_, err := f.svc.Register(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 1, f.subscribers.putCalls)
	assert.Zero(t, f.metering.appendCalls, "metering must not run after a failed subscriber write")
}

func TestRegister_MeteringWriteFailure(t *testing.T) {
	f := newFixture(t)
	f.metering.err = errors.New("connection reset")

	_, err := f.svc.Register(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 1, f.subscribers.putCalls, "subscriber write already happened")
	assert.Equal(t, 1, f.metering.appendCalls)
}
