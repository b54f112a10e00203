package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/codiolabs/marketplace-registration/internal/subscriber/domain"
	"github.com/codiolabs/marketplace-registration/internal/subscriber/repository"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.SubscriberRecord{}))

	svc := New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
	return svc, db
}

func testRecord(id, email string) domain.SubscriberRecord {
	return domain.SubscriberRecord{
		CustomerIdentifier: id,
		ProductCode:        "prod-x",
		FirstName:          "Ada",
		LastName:           "Lovelace",
		ContactEmail:       email,
		ContactPerson:      "Ada Lovelace",
		RegistrationDate:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ListingName:        "Acme Cloud IDE",
		Status:             domain.StatusRegistered,
	}
}

func TestPutRejectsEmptyIdentifier(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Put(context.Background(), testRecord("  ", "ada@example.com"))
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
}

func TestPutOverwritesExistingRecord(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Put(ctx, testRecord("cust-42", "ada@example.com")))
	require.NoError(t, svc.Put(ctx, testRecord("cust-42", "ada@newcorp.com")))

	var count int64
	require.NoError(t, db.Model(&domain.SubscriberRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "repeated put keeps one row per customer")

	got, err := svc.Get(ctx, domain.GetSubscriberRequest{CustomerIdentifier: "cust-42"})
	require.NoError(t, err)
	assert.Equal(t, "ada@newcorp.com", got.ContactEmail)
}

func TestGetUnknownIdentifier(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), domain.GetSubscriberRequest{CustomerIdentifier: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(context.Background(), domain.GetSubscriberRequest{CustomerIdentifier: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
}

func TestListFiltersAndPaginates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rec := testRecord(fmt.Sprintf("cust-%02d", i), fmt.Sprintf("user%d@example.com", i))
		require.NoError(t, svc.Put(ctx, rec))
	}

	first, err := svc.List(ctx, domain.ListSubscribersRequest{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, first.Subscribers, 2)
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextPageToken)

	second, err := svc.List(ctx, domain.ListSubscribersRequest{
		PageSize:  2,
		PageToken: first.NextPageToken,
	})
	require.NoError(t, err)
	require.Len(t, second.Subscribers, 2)
	assert.NotEqual(t, first.Subscribers[0].CustomerIdentifier, second.Subscribers[0].CustomerIdentifier)

	byEmail, err := svc.List(ctx, domain.ListSubscribersRequest{Email: "user3@example.com"})
	require.NoError(t, err)
	require.Len(t, byEmail.Subscribers, 1)
	assert.Equal(t, "cust-03", byEmail.Subscribers[0].CustomerIdentifier)
	assert.False(t, byEmail.HasMore)
}
