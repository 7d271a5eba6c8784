package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	bookingserrors "divano/internal/bookings/errors"
	"divano/pkg/client"
	"divano/pkg/logger"
	"divano/pkg/model"
)

// SheetStore talks to a SheetDB-style spreadsheet API: GET the base URL for
// all rows, POST {"data":[...]} to append, DELETE /id/{id} to remove a row
// by its id column.
type SheetStore struct {
	client *client.HttpClient
	log    *logger.Logger
}

func NewSheetStore(c *client.HttpClient, log *logger.Logger) *SheetStore {
	return &SheetStore{client: c, log: log}
}

// insertPayload is the sheet API's append envelope.
type insertPayload struct {
	Data []model.BookingRecord `json:"data"`
}

func (s *SheetStore) List(ctx context.Context) ([]model.BookingRecord, error) {
	resp, err := s.client.GET(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("sheet list: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("sheet list: %w: %d", bookingserrors.ErrBadStatus, resp.StatusCode)
	}

	var records []model.BookingRecord
	if err := resp.DecodeJSON(&records); err != nil {
		return nil, fmt.Errorf("sheet list: decode rows: %w", err)
	}
	return records, nil
}

func (s *SheetStore) Insert(ctx context.Context, rec model.BookingRecord) error {
	resp, err := s.client.POST(ctx, "", insertPayload{Data: []model.BookingRecord{rec}})
	if err != nil {
		return fmt.Errorf("sheet insert: %w", err)
	}
	if !resp.OK() {
		s.log.Error("Sheet API rejected insert",
			"status", resp.StatusCode,
			"body", string(resp.Body),
		)
		return fmt.Errorf("sheet insert: %w: %d", bookingserrors.ErrBadStatus, resp.StatusCode)
	}
	return nil
}

func (s *SheetStore) DeleteByID(ctx context.Context, id string) error {
	resp, err := s.client.DELETE(ctx, "/id/"+url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("sheet delete: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("sheet delete: %w: %s", bookingserrors.ErrRowNotFound, id)
	}
	if !resp.OK() {
		return fmt.Errorf("sheet delete: %w: %d", bookingserrors.ErrBadStatus, resp.StatusCode)
	}
	return nil
}

func (s *SheetStore) Ping(ctx context.Context) error {
	resp, err := s.client.GET(ctx, "/count")
	if err != nil {
		return fmt.Errorf("sheet ping: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("sheet ping: %w: %d", bookingserrors.ErrBadStatus, resp.StatusCode)
	}
	return nil
}
