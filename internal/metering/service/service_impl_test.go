package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/codiolabs/marketplace-registration/internal/metering/domain"
	"github.com/codiolabs/marketplace-registration/internal/metering/repository"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.MeteringRecord{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db
}

func appendRequest(ts time.Time) domain.AppendRequest {
	return domain.AppendRequest{
		CustomerIdentifier: "cust-42",
		ProductCode:        "prod-x",
		Dimension:          domain.DimensionUsers,
		Quantity:           1,
		Event:              domain.EventRegistration,
		Timestamp:          ts,
	}
}

func TestAppendValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := appendRequest(time.Now())
	req.CustomerIdentifier = " "
	_, err := svc.Append(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)

	req = appendRequest(time.Now())
	req.Quantity = 0
	_, err = svc.Append(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	req = appendRequest(time.Now())
	req.Dimension = ""
	_, err = svc.Append(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidDimension)
}

func TestAppendCreatesNewRowPerEvent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first, err := svc.Append(ctx, appendRequest(base))
	require.NoError(t, err)
	second, err := svc.Append(ctx, appendRequest(base.Add(time.Minute)))
	require.NoError(t, err)

	assert.NotEqual(t, first.EventID, second.EventID)
	assert.NotEqual(t, first.Timestamp, second.Timestamp)

	var count int64
	require.NoError(t, db.Model(&domain.MeteringRecord{}).Count(&count).Error)
	assert.EqualValues(t, 2, count, "every append lands as its own row")
}

func TestAppendRejectsCompositeKeyCollision(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	_, err := svc.Append(ctx, appendRequest(ts))
	require.NoError(t, err)

	_, err = svc.Append(ctx, appendRequest(ts))
	assert.ErrorIs(t, err, domain.ErrDuplicateEvent)
}

func TestAppendFormatsTimestampFixedWidthUTC(t *testing.T) {
	svc, _ := newTestService(t)

	ts := time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.FixedZone("WIB", 7*3600))
	rec, err := svc.Append(context.Background(), appendRequest(ts))
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01T05:00:00.123456789Z", rec.Timestamp)

	parsed, err := time.Parse(domain.TimestampLayout, rec.Timestamp)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))
	assert.Equal(t, time.UTC, parsed.Location(), "timestamps are stored in UTC")
}

func TestTimestampKeysSortAcrossSecondBoundaries(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// A whole-second key must sort before a sub-second key in the same
	// second; a trimmed fraction would put "...00Z" after "...00.5Z".
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first, err := svc.Append(ctx, appendRequest(base))
	require.NoError(t, err)
	second, err := svc.Append(ctx, appendRequest(base.Add(500*time.Millisecond)))
	require.NoError(t, err)

	assert.Less(t, first.Timestamp, second.Timestamp)

	resp, err := svc.List(ctx, domain.ListMeteringRequest{CustomerIdentifier: "cust-42"})
	require.NoError(t, err)
	require.Len(t, resp.MeteringRecords, 2)
	assert.Equal(t, first.Timestamp, resp.MeteringRecords[0].Timestamp)
	assert.Equal(t, second.Timestamp, resp.MeteringRecords[1].Timestamp)
}

func TestListPagesAcrossCustomers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// cust-a's event is later than cust-b's; a timestamp-only cursor would
	// skip cust-b entirely when paging the unfiltered list.
	reqA := appendRequest(time.Date(2025, 6, 1, 12, 1, 0, 0, time.UTC))
	reqA.CustomerIdentifier = "cust-a"
	_, err := svc.Append(ctx, reqA)
	require.NoError(t, err)

	reqB := appendRequest(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	reqB.CustomerIdentifier = "cust-b"
	_, err = svc.Append(ctx, reqB)
	require.NoError(t, err)

	var seen []string
	pageToken := ""
	for {
		resp, err := svc.List(ctx, domain.ListMeteringRequest{
			PageSize:  1,
			PageToken: pageToken,
		})
		require.NoError(t, err)
		for _, rec := range resp.MeteringRecords {
			seen = append(seen, rec.CustomerIdentifier)
		}
		if !resp.HasMore {
			break
		}
		pageToken = resp.NextPageToken
	}

	assert.Equal(t, []string{"cust-a", "cust-b"}, seen)
}

func TestListReturnsEventsInTimestampOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := svc.Append(ctx, appendRequest(base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	other := appendRequest(base)
	other.CustomerIdentifier = "cust-99"
	_, err := svc.Append(ctx, other)
	require.NoError(t, err)

	resp, err := svc.List(ctx, domain.ListMeteringRequest{CustomerIdentifier: "cust-42"})
	require.NoError(t, err)
	require.Len(t, resp.MeteringRecords, 3)
	for i := 1; i < len(resp.MeteringRecords); i++ {
		assert.Less(t, resp.MeteringRecords[i-1].Timestamp, resp.MeteringRecords[i].Timestamp)
	}
}
