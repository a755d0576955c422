package service

import (
	"context"
	"time"

	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/Gakenye8741/ticket-gateway/internal/cache"
	"github.com/Gakenye8741/ticket-gateway/internal/models"
	"github.com/Gakenye8741/ticket-gateway/pkg/logger"
)

type VenueService interface {
	ListVenues(ctx context.Context) ([]models.Venue, error)
	CreateVenue(ctx context.Context, req backend.CreateVenueRequest) (*models.Venue, error)
	UpdateVenue(ctx context.Context, id int, req backend.UpdateVenueRequest) error
	// UpdateVenueStatus applies the status change to the cached list first
	// and reverts it if the backend rejects the update.
	UpdateVenueStatus(ctx context.Context, id int, status string) error
	DeleteVenue(ctx context.Context, id int) error
}

type venueService struct {
	venues   backend.VenueAPI
	cache    cache.TagCache
	cacheTTL time.Duration
	l        logger.Logger
}

func NewVenueService(venues backend.VenueAPI, tagCache cache.TagCache, cacheTTL time.Duration, l logger.Logger) VenueService {
	return &venueService{venues: venues, cache: tagCache, cacheTTL: cacheTTL, l: l}
}

const venueListKey = "all"

func (s *venueService) ListVenues(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	hit, err := s.cache.Get(ctx, cache.TagVenues, venueListKey, &venues)
	if err != nil {
		s.l.Warn("venue cache read failed", "error", err)
	}
	if !hit {
		venues, err = s.venues.ListVenues(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, cache.TagVenues, venueListKey, venues, s.cacheTTL); err != nil {
			s.l.Warn("venue cache write failed", "error", err)
		}
	}
	return venues, nil
}

func (s *venueService) CreateVenue(ctx context.Context, req backend.CreateVenueRequest) (*models.Venue, error) {
	venue, err := s.venues.CreateVenue(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return venue, nil
}

func (s *venueService) UpdateVenue(ctx context.Context, id int, req backend.UpdateVenueRequest) error {
	if err := s.venues.UpdateVenue(ctx, id, req); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *venueService) UpdateVenueStatus(ctx context.Context, id int, status string) error {
	var previous []models.Venue
	hadCached, err := s.cache.Get(ctx, cache.TagVenues, venueListKey, &previous)
	if err != nil {
		s.l.Warn("venue cache read failed", "error", err)
		hadCached = false
	}

	apply := func(ctx context.Context) error {
		if !hadCached {
			return nil
		}
		patched := make([]models.Venue, len(previous))
		copy(patched, previous)
		for i := range patched {
			if patched[i].VenueID == id {
				patched[i].Status = status
			}
		}
		return s.cache.Set(ctx, cache.TagVenues, venueListKey, patched, s.cacheTTL)
	}
	remote := func(ctx context.Context) error {
		return s.venues.UpdateVenue(ctx, id, backend.UpdateVenueRequest{Status: &status})
	}
	revert := func(ctx context.Context) {
		if !hadCached {
			return
		}
		if err := s.cache.Set(ctx, cache.TagVenues, venueListKey, previous, s.cacheTTL); err != nil {
			s.l.Warn("venue cache revert failed", "error", err)
		}
	}

	if err := cache.Patch(ctx, apply, remote, revert); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *venueService) DeleteVenue(ctx context.Context, id int) error {
	if err := s.venues.DeleteVenue(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *venueService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateTag(ctx, cache.TagVenues); err != nil {
		s.l.Warn("venue cache invalidation failed", "error", err)
	}
}
