package service

import (
	"context"
	"sort"
	"sync"

	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/Gakenye8741/ticket-gateway/internal/cache"
	"github.com/Gakenye8741/ticket-gateway/internal/models"
	"github.com/Gakenye8741/ticket-gateway/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Publisher pushes reconciliation outcomes to the message broker.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

type BookingConfirmedMessage struct {
	BookingID  int   `json:"bookingId"`
	NationalID int64 `json:"nationalId"`
}

// ReconcileService transitions Pending bookings to Confirmed once a
// Completed payment references them. The operation is idempotent: bookings
// that already left Pending are skipped, so repeated runs confirm nothing
// twice and never error. It is at-least-once by design — concurrent sessions
// may both run it, and the backend resolves the race last-write-wins.
type ReconcileService interface {
	// Reconcile checks one customer and returns the booking ids it confirmed.
	Reconcile(ctx context.Context, nationalID int64) ([]int, error)
	// ReconcileAll sweeps every customer that currently has a Pending booking.
	ReconcileAll(ctx context.Context) ([]int, error)
}

type reconcileService struct {
	bookings  backend.BookingAPI
	payments  backend.PaymentAPI
	cache     cache.TagCache
	publisher Publisher
	l         logger.Logger
}

func NewReconcileService(
	bookings backend.BookingAPI,
	payments backend.PaymentAPI,
	tagCache cache.TagCache,
	publisher Publisher,
	l logger.Logger,
) ReconcileService {
	return &reconcileService{
		bookings:  bookings,
		payments:  payments,
		cache:     tagCache,
		publisher: publisher,
		l:         l,
	}
}

func (s *reconcileService) Reconcile(ctx context.Context, nationalID int64) ([]int, error) {
	bookings, err := s.bookings.ListBookingsByNationalID(ctx, nationalID)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListPaymentsByNationalID(ctx, nationalID)
	if err != nil {
		return nil, err
	}

	completed := make(map[int]bool, len(payments))
	for _, p := range payments {
		if p.Status == models.PaymentCompleted {
			completed[p.BookingID] = true
		}
	}

	var (
		mu        sync.Mutex
		confirmed []int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, b := range bookings {
		if b.Status != models.BookingPending || !completed[b.BookingID] {
			continue
		}
		b := b
		g.Go(func() error {
			req := backend.UpdateBookingRequest{
				Status:       models.BookingConfirmed,
				Quantity:     b.Quantity,
				TotalAmount:  b.TotalAmount,
				TicketTypeID: b.TicketTypeID,
				EventID:      b.EventID,
				NationalID:   b.NationalID,
			}
			if err := s.bookings.UpdateBooking(gctx, b.BookingID, req); err != nil {
				// Logged and skipped; the booking stays Pending and is
				// retried on the next run.
				s.l.Warn("reconcile update failed", "booking_id", b.BookingID, "error", err)
				return nil
			}

			mu.Lock()
			confirmed = append(confirmed, b.BookingID)
			mu.Unlock()

			if s.publisher != nil {
				msg := BookingConfirmedMessage{BookingID: b.BookingID, NationalID: b.NationalID}
				if err := s.publisher.Publish("booking.confirmed", msg); err != nil {
					s.l.Warn("failed to publish booking.confirmed", "booking_id", b.BookingID, "error", err)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(confirmed) > 0 {
		if err := s.cache.InvalidateTag(ctx, cache.TagBookings); err != nil {
			s.l.Warn("booking cache invalidation failed", "error", err)
		}
	}

	sort.Ints(confirmed)
	return confirmed, nil
}

func (s *reconcileService) ReconcileAll(ctx context.Context) ([]int, error) {
	all, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	var confirmed []int
	for _, b := range all {
		if b.Status != models.BookingPending || seen[b.NationalID] {
			continue
		}
		seen[b.NationalID] = true

		ids, err := s.Reconcile(ctx, b.NationalID)
		if err != nil {
			s.l.Warn("reconcile sweep failed for customer", "national_id", b.NationalID, "error", err)
			continue
		}
		confirmed = append(confirmed, ids...)
	}

	sort.Ints(confirmed)
	return confirmed, nil
}
