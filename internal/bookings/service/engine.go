package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"divano/internal/bookings/store"
	bookingvalidator "divano/internal/bookings/validator"
	"divano/pkg/availability"
	"divano/pkg/calendar"
	"divano/pkg/config"
	apperrors "divano/pkg/errors"
	"divano/pkg/model"
	"divano/pkg/sanitizer"
)

// BookingService is the single writer against the store. It keeps an
// in-memory copy of the booking set: the store is authoritative, the copy
// is a cache refreshed by Load and updated only after the store confirms
// a write.
type BookingService interface {
	Load(ctx context.Context) ([]model.Booking, error)
	Bookings() []model.Booking
	Index() *availability.Index
	Create(ctx context.Context, input model.BookingInput) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

// EventPublisher receives booking lifecycle notifications. Publishing is
// best-effort; a failed publish never fails the operation that caused it.
type EventPublisher interface {
	BookingCreated(ctx context.Context, b model.Booking) error
	BookingDeleted(ctx context.Context, id string) error
}

type bookingEngine struct {
	store     store.Store
	validator *bookingvalidator.BookingValidator
	events    EventPublisher
	cfg       *config.Config

	mu       sync.RWMutex
	bookings []model.Booking
}

func NewBookingService(
	st store.Store,
	validator *bookingvalidator.BookingValidator,
	events EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingEngine{
		store:     st,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

// Load fetches every raw record, normalizes its date fields and replaces
// the cache. On failure the previous cache is left intact: stale data keeps
// the calendar usable while the sheet is unreachable.
func (e *bookingEngine) Load(ctx context.Context) ([]model.Booking, error) {
	records, err := e.store.List(ctx)
	if err != nil {
		e.cfg.Log.Error("Failed to load bookings", "error", err)
		return nil, apperrors.Load("Failed to load bookings", err)
	}

	bookings := make([]model.Booking, 0, len(records))
	for _, rec := range records {
		b, err := e.fromRecord(rec)
		if err != nil {
			// A garbage-dated row cannot participate in occupancy. Keep
			// it in the sheet for a human to fix, but out of the cache.
			e.cfg.Log.Warn("Skipping record with unusable dates",
				"id", rec.ID,
				"guest_name", rec.GuestName,
				"error", err,
			)
			continue
		}
		bookings = append(bookings, b)
	}

	e.mu.Lock()
	e.bookings = bookings
	e.mu.Unlock()

	e.cfg.Log.Info("Bookings loaded", "count", len(bookings), "rows", len(records))
	return e.snapshot(), nil
}

func (e *bookingEngine) fromRecord(rec model.BookingRecord) (model.Booking, error) {
	checkIn, err := calendar.NormalizeDate(rec.CheckIn)
	if err != nil {
		return model.Booking{}, fmt.Errorf("check-in: %w", err)
	}
	checkOut, err := calendar.NormalizeDate(rec.CheckOut)
	if err != nil {
		return model.Booking{}, fmt.Errorf("check-out: %w", err)
	}

	status := rec.Status
	if status != model.StatusConfirmed {
		status = model.StatusPending
	}

	// CreatedAt is informational only; a malformed value stays zero.
	createdAt, _ := time.Parse(time.RFC3339, rec.CreatedAt)

	return model.Booking{
		ID:        rec.ID,
		GuestName: rec.GuestName,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Note:      rec.Note,
		Status:    status,
		CreatedAt: createdAt,
	}, nil
}

// Bookings returns a copy of the cached set.
func (e *bookingEngine) Bookings() []model.Booking {
	return e.snapshot()
}

// Index builds an availability index over the current snapshot.
func (e *bookingEngine) Index() *availability.Index {
	return availability.NewIndex(e.snapshot())
}

func (e *bookingEngine) snapshot() []model.Booking {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]model.Booking, len(e.bookings))
	copy(out, e.bookings)
	return out
}

// Create validates the input, re-checks overlap against the latest local
// snapshot and writes through to the store. The cache is updated only after
// the store confirms; there is no optimistic insert to roll back.
//
// The overlap re-check is best-effort, not linearizable: two clients can
// both pass it and double-book, which the next Load reveals. Accepted for
// a single-property, handful-of-guests calendar.
func (e *bookingEngine) Create(ctx context.Context, input model.BookingInput) (*model.Booking, error) {
	input.GuestName = sanitizer.NormalizeName(input.GuestName)
	input.Note = sanitizer.NormalizeNote(input.Note)

	if err := e.validator.Validate(input); err != nil {
		e.cfg.Log.Warn("Booking validation failed", "error", err)
		verrs, ok := err.(bookingvalidator.ValidationErrors)
		if !ok || len(verrs) == 0 {
			return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
		}
		return nil, apperrors.Validation(verrs[0].Message, map[string]any{"errors": verrs.Messages()})
	}

	if conflict := e.Index().Overlapping(input.CheckIn, input.CheckOut, ""); conflict != nil {
		e.cfg.Log.Info("Booking rejected: dates overlap",
			"guest_name", input.GuestName,
			"conflict_id", conflict.ID,
			"conflict_guest", conflict.GuestName,
		)
		return nil, apperrors.Conflict(
			fmt.Sprintf("Dates conflict with %s's booking (%s - %s)",
				conflict.GuestName, conflict.CheckIn, conflict.CheckOut),
			map[string]any{
				"bookingId": conflict.ID,
				"guestName": conflict.GuestName,
				"checkIn":   conflict.CheckIn.String(),
				"checkOut":  conflict.CheckOut.String(),
			},
		)
	}

	booking := model.Booking{
		ID:        uuid.NewString(),
		GuestName: input.GuestName,
		CheckIn:   input.CheckIn,
		CheckOut:  input.CheckOut,
		Note:      input.Note,
		Status:    model.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := e.store.Insert(ctx, booking.Record()); err != nil {
		e.cfg.Log.Error("Failed to save booking", "error", err, "guest_name", booking.GuestName)
		return nil, apperrors.Store("Failed to save booking", err)
	}

	e.mu.Lock()
	e.bookings = append(e.bookings, booking)
	e.mu.Unlock()

	e.publishCreated(ctx, booking)

	e.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"guest_name", booking.GuestName,
		"check_in", booking.CheckIn,
		"check_out", booking.CheckOut,
		"nights", booking.Nights(),
	)
	return &booking, nil
}

// Delete removes a booking from the store, then from the cache. An id the
// cache never held is a no-op success as long as the store agrees; only a
// store-reported failure surfaces.
func (e *bookingEngine) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := e.store.DeleteByID(ctx, id); err != nil {
		e.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return apperrors.Store("Failed to delete booking", err)
	}

	e.mu.Lock()
	kept := e.bookings[:0]
	for _, b := range e.bookings {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	e.bookings = kept
	e.mu.Unlock()

	e.publishDeleted(ctx, id)

	e.cfg.Log.Info("Booking deleted successfully", "id", id)
	return nil
}

func (e *bookingEngine) publishCreated(ctx context.Context, b model.Booking) {
	if e.events == nil {
		return
	}
	if err := e.events.BookingCreated(ctx, b); err != nil {
		e.cfg.Log.Warn("Failed to publish booking.created event", "id", b.ID, "error", err)
	}
}

func (e *bookingEngine) publishDeleted(ctx context.Context, id string) {
	if e.events == nil {
		return
	}
	if err := e.events.BookingDeleted(ctx, id); err != nil {
		e.cfg.Log.Warn("Failed to publish booking.deleted event", "id", id, "error", err)
	}
}
