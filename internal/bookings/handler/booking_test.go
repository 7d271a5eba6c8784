package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"divano/pkg/availability"
	"divano/pkg/calendar"
	apperrors "divano/pkg/errors"
	"divano/pkg/logger"
	"divano/pkg/model"
)

// Mock service for testing
type mockBookingService struct {
	loadFunc   func(ctx context.Context) ([]model.Booking, error)
	createFunc func(ctx context.Context, input model.BookingInput) (*model.Booking, error)
	deleteFunc func(ctx context.Context, id string) error
	bookings   []model.Booking
}

func (m *mockBookingService) Load(ctx context.Context) ([]model.Booking, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return m.bookings, nil
}

func (m *mockBookingService) Bookings() []model.Booking {
	return m.bookings
}

func (m *mockBookingService) Index() *availability.Index {
	return availability.NewIndex(m.bookings)
}

func (m *mockBookingService) Create(ctx context.Context, input model.BookingInput) (*model.Booking, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, input)
	}
	return &model.Booking{ID: "new-id", GuestName: input.GuestName}, nil
}

func (m *mockBookingService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func newTestRouter(svc *mockBookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(svc, testLogger()).RegisterRoutes(router)
	return router
}

func date(t *testing.T, s string) calendar.Date {
	t.Helper()
	d, err := calendar.Parse(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestCreateBooking(t *testing.T) {
	var gotInput model.BookingInput
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, input model.BookingInput) (*model.Booking, error) {
			gotInput = input
			return &model.Booking{
				ID:        "abc-123",
				GuestName: input.GuestName,
				CheckIn:   input.CheckIn,
				CheckOut:  input.CheckOut,
				Status:    model.StatusPending,
				CreatedAt: time.Now().UTC(),
			}, nil
		},
	}
	router := newTestRouter(svc)

	body := `{"guestName":"Ada","checkIn":"2026-03-10","checkOut":"2026-03-12"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if gotInput.GuestName != "Ada" || gotInput.CheckIn.String() != "2026-03-10" {
		t.Errorf("unexpected input passed to service: %+v", gotInput)
	}

	var resp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.ID != "abc-123" {
		t.Errorf("unexpected booking in response: %+v", resp.Data)
	}
}

func TestCreateBookingMalformedBody(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateBookingConflict(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, input model.BookingInput) (*model.Booking, error) {
			return nil, apperrors.Conflict("Dates conflict with Ada's booking (2026-03-10 - 2026-03-12)", map[string]any{
				"guestName": "Ada",
			})
		},
	}
	router := newTestRouter(svc)

	body := `{"guestName":"Bob","checkIn":"2026-03-11","checkOut":"2026-03-13"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "CONFLICT") {
		t.Errorf("expected conflict code in body: %s", rec.Body.String())
	}
}

func TestGetAllBookings(t *testing.T) {
	svc := &mockBookingService{
		bookings: []model.Booking{
			{ID: "1", GuestName: "Ada", CheckIn: date(t, "2026-03-10"), CheckOut: date(t, "2026-03-12")},
			{ID: "2", GuestName: "Bob", CheckIn: date(t, "2026-04-01"), CheckOut: date(t, "2026-04-03")},
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Data []model.Booking `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 bookings, got %d", len(resp.Data))
	}
}

func TestGetAllBookingsFilteredByMonth(t *testing.T) {
	svc := &mockBookingService{
		bookings: []model.Booking{
			{ID: "1", GuestName: "Ada", CheckIn: date(t, "2026-03-10"), CheckOut: date(t, "2026-03-12")},
			{ID: "2", GuestName: "Bob", CheckIn: date(t, "2026-04-01"), CheckOut: date(t, "2026-04-03")},
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?year=2026&month=3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Data []model.Booking `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "1" {
		t.Errorf("expected only Ada's March booking, got %+v", resp.Data)
	}
}

func TestGetAllBookingsBadMonth(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?year=2026&month=13", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteBooking(t *testing.T) {
	var gotID string
	svc := &mockBookingService{
		deleteFunc: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/id/abc-123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if gotID != "abc-123" {
		t.Errorf("service received id %q", gotID)
	}
}

func TestReload(t *testing.T) {
	called := false
	svc := &mockBookingService{
		loadFunc: func(ctx context.Context) ([]model.Booking, error) {
			called = true
			return []model.Booking{}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/reload", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if !called {
		t.Error("expected Load to be called")
	}
}

func TestReloadFailure(t *testing.T) {
	svc := &mockBookingService{
		loadFunc: func(ctx context.Context) ([]model.Booking, error) {
			return nil, apperrors.Load("Failed to load bookings", nil)
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/reload", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestMonthView(t *testing.T) {
	svc := &mockBookingService{
		bookings: []model.Booking{
			{
				ID:        "1",
				GuestName: "Ada",
				CheckIn:   date(t, "2026-01-03"),
				CheckOut:  date(t, "2026-01-05"),
				Status:    model.StatusConfirmed,
			},
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar/2026/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data MonthViewResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	view := resp.Data
	if view.Year != 2026 || view.Month != 1 {
		t.Errorf("unexpected year/month: %d/%d", view.Year, view.Month)
	}
	if len(view.Cells) != 42 {
		t.Fatalf("expected 42 cells, got %d", len(view.Cells))
	}
	if len(view.Bookings) != 1 {
		t.Errorf("expected 1 booking in month, got %d", len(view.Bookings))
	}

	byDate := map[string]MonthViewCell{}
	for _, cell := range view.Cells {
		byDate[cell.Date.String()] = cell
	}

	// January 2026 starts on a Thursday, so the grid leads with December days.
	if cell := byDate["2025-12-29"]; cell.InMonth {
		t.Error("leading December cell marked in-month")
	}
	if cell := byDate["2026-01-15"]; !cell.InMonth {
		t.Error("mid-January cell not marked in-month")
	}

	checkIn := byDate["2026-01-03"]
	if checkIn.Occupant == nil || checkIn.Occupant.GuestName != "Ada" {
		t.Errorf("expected Ada occupying her check-in night, got %+v", checkIn.Occupant)
	}
	if !checkIn.StartsOn {
		t.Error("expected startsOn at the check-in date")
	}
	if byDate["2026-01-04"].Occupant == nil {
		t.Error("expected Ada occupying her second night")
	}
	if byDate["2026-01-05"].Occupant != nil {
		t.Error("checkout day must be free for the next guest")
	}
}

func TestMonthViewBadParams(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar/2026/zero", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
