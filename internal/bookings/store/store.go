// Package store is the sole I/O boundary of the booking engine. A Store
// holds raw rows keyed by id; everything date-shaped in a row is untrusted
// until the engine has normalized it.
package store

import (
	"context"

	"divano/pkg/model"
)

type Store interface {
	// List returns every raw record in the store.
	List(ctx context.Context) ([]model.BookingRecord, error)

	// Insert appends one record. The record carries canonical YYYY-MM-DD
	// dates; only reads are heterogeneous.
	Insert(ctx context.Context, rec model.BookingRecord) error

	// DeleteByID removes the record with the given id. Implementations
	// treat a missing id as success where the backend allows it.
	DeleteByID(ctx context.Context, id string) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
