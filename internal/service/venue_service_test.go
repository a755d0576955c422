package service

import (
	"context"
	"testing"
	"time"

	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/Gakenye8741/ticket-gateway/internal/cache"
	"github.com/Gakenye8741/ticket-gateway/internal/models"
	"github.com/Gakenye8741/ticket-gateway/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func newVenueFixture(venues *mockVenueAPI, mem *memoryCache) VenueService {
	return NewVenueService(venues, mem, time.Minute, logger.NewNop())
}

func cachedVenues(t *testing.T, mem *memoryCache) []models.Venue {
	t.Helper()
	var venues []models.Venue
	hit, err := mem.Get(context.Background(), cache.TagVenues, "all", &venues)
	assert.NoError(t, err)
	assert.True(t, hit)
	return venues
}

func TestUpdateVenueStatus_InvalidatesAfterRemoteSuccess(t *testing.T) {
	venues := &mockVenueAPI{
		listFn: func(ctx context.Context) ([]models.Venue, error) {
			return []models.Venue{
				{VenueID: 1, Name: "Main hall", Status: "available"},
				{VenueID: 2, Name: "Annex", Status: "available"},
			}, nil
		},
		updateFn: func(ctx context.Context, id int, req backend.UpdateVenueRequest) error {
			return nil
		},
	}
	mem := newMemoryCache()
	svc := newVenueFixture(venues, mem)

	_, err := svc.ListVenues(context.Background())
	assert.NoError(t, err)

	assert.NoError(t, svc.UpdateVenueStatus(context.Background(), 1, "booked"))
	// the tag is invalidated after a successful remote update
	assert.Contains(t, mem.invalidated, "venues")
}

func TestUpdateVenueStatus_RevertsOnRemoteFailure(t *testing.T) {
	venues := &mockVenueAPI{
		listFn: func(ctx context.Context) ([]models.Venue, error) {
			return []models.Venue{{VenueID: 1, Name: "Main hall", Status: "available"}}, nil
		},
		updateFn: func(ctx context.Context, id int, req backend.UpdateVenueRequest) error {
			return &backend.APIError{StatusCode: 409, Message: "venue has active bookings"}
		},
	}
	mem := newMemoryCache()
	svc := newVenueFixture(venues, mem)

	_, err := svc.ListVenues(context.Background())
	assert.NoError(t, err)

	err = svc.UpdateVenueStatus(context.Background(), 1, "booked")
	assert.Error(t, err)

	// the optimistic change was rolled back
	restored := cachedVenues(t, mem)
	assert.Equal(t, "available", restored[0].Status)
	assert.Empty(t, mem.invalidated)
}

func TestUpdateVenueStatus_ColdCacheStillUpdates(t *testing.T) {
	updated := 0
	venues := &mockVenueAPI{
		updateFn: func(ctx context.Context, id int, req backend.UpdateVenueRequest) error {
			updated++
			assert.Equal(t, "booked", *req.Status)
			return nil
		},
	}
	svc := newVenueFixture(venues, newMemoryCache())

	assert.NoError(t, svc.UpdateVenueStatus(context.Background(), 1, "booked"))
	assert.Equal(t, 1, updated)
}
