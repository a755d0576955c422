package service

import (
	"context"
	"strconv"
	"time"

	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/Gakenye8741/ticket-gateway/internal/cache"
	"github.com/Gakenye8741/ticket-gateway/internal/models"
	"github.com/Gakenye8741/ticket-gateway/pkg/logger"
)

// EventView decorates an event with its computed lifecycle state.
type EventView struct {
	models.Event
	Lifecycle models.EventLifecycle `json:"lifecycle"`
}

type EventService interface {
	ListEvents(ctx context.Context) ([]EventView, error)
	SearchByTitle(ctx context.Context, title string) ([]EventView, error)
	SearchByCategory(ctx context.Context, category string) ([]EventView, error)
	GetEvent(ctx context.Context, id int) (*EventView, error)
	CreateEvent(ctx context.Context, req backend.CreateEventRequest) (*models.Event, error)
	UpdateEvent(ctx context.Context, id int, req backend.UpdateEventRequest) error
	DeleteEvent(ctx context.Context, id int) error
}

type eventService struct {
	events   backend.EventAPI
	cache    cache.TagCache
	cacheTTL time.Duration
	now      func() time.Time
	l        logger.Logger
}

func NewEventService(events backend.EventAPI, tagCache cache.TagCache, cacheTTL time.Duration, l logger.Logger) EventService {
	return &eventService{
		events:   events,
		cache:    tagCache,
		cacheTTL: cacheTTL,
		now:      time.Now,
		l:        l,
	}
}

func (s *eventService) toViews(events []models.Event) []EventView {
	now := s.now()
	views := make([]EventView, len(events))
	for i, e := range events {
		views[i] = EventView{Event: e, Lifecycle: e.Lifecycle(now)}
	}
	return views
}

// cachedList reads a list of events through the tag cache, fetching from the
// backend on a miss.
func (s *eventService) cachedList(ctx context.Context, key string, fetch func(context.Context) ([]models.Event, error)) ([]EventView, error) {
	var events []models.Event
	hit, err := s.cache.Get(ctx, cache.TagEvents, key, &events)
	if err != nil {
		s.l.Warn("event cache read failed", "key", key, "error", err)
	}
	if !hit {
		events, err = fetch(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, cache.TagEvents, key, events, s.cacheTTL); err != nil {
			s.l.Warn("event cache write failed", "key", key, "error", err)
		}
	}
	return s.toViews(events), nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]EventView, error) {
	return s.cachedList(ctx, "all", s.events.ListEvents)
}

func (s *eventService) SearchByTitle(ctx context.Context, title string) ([]EventView, error) {
	return s.cachedList(ctx, "title:"+title, func(ctx context.Context) ([]models.Event, error) {
		return s.events.SearchEventsByTitle(ctx, title)
	})
}

func (s *eventService) SearchByCategory(ctx context.Context, category string) ([]EventView, error) {
	return s.cachedList(ctx, "category:"+category, func(ctx context.Context) ([]models.Event, error) {
		return s.events.SearchEventsByCategory(ctx, category)
	})
}

func (s *eventService) GetEvent(ctx context.Context, id int) (*EventView, error) {
	key := "id:" + strconv.Itoa(id)

	var event models.Event
	hit, err := s.cache.Get(ctx, cache.TagEvents, key, &event)
	if err != nil {
		s.l.Warn("event cache read failed", "key", key, "error", err)
	}
	if !hit {
		e, err := s.events.GetEvent(ctx, id)
		if err != nil {
			if apiErr, ok := err.(*backend.APIError); ok && apiErr.StatusCode == 404 {
				return nil, ErrEventNotFound
			}
			return nil, err
		}
		event = *e
		if err := s.cache.Set(ctx, cache.TagEvents, key, event, s.cacheTTL); err != nil {
			s.l.Warn("event cache write failed", "key", key, "error", err)
		}
	}

	return &EventView{Event: event, Lifecycle: event.Lifecycle(s.now())}, nil
}

func (s *eventService) CreateEvent(ctx context.Context, req backend.CreateEventRequest) (*models.Event, error) {
	event, err := s.events.CreateEvent(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int, req backend.UpdateEventRequest) error {
	if err := s.events.UpdateEvent(ctx, id, req); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int) error {
	if err := s.events.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *eventService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateTag(ctx, cache.TagEvents); err != nil {
		s.l.Warn("event cache invalidation failed", "error", err)
	}
}
