// Package availability answers occupancy and overlap queries over a booking
// set. Queries are pure: an Index never mutates the bookings it was built
// from, so a host can hold one per render without synchronization.
package availability

import (
	"time"

	"divano/pkg/calendar"
	"divano/pkg/model"
)

type Index struct {
	bookings []model.Booking
}

func NewIndex(bookings []model.Booking) *Index {
	return &Index{bookings: bookings}
}

// OccupantOn returns the booking whose [checkIn, checkOut) interval
// contains date, or nil. With a non-overlapping set at most one booking
// can match.
func (ix *Index) OccupantOn(date calendar.Date) *model.Booking {
	for i := range ix.bookings {
		b := &ix.bookings[i]
		if !date.Before(b.CheckIn) && date.Before(b.CheckOut) {
			return b
		}
	}
	return nil
}

// Overlapping returns the first booking whose interval intersects
// [checkIn, checkOut) under half-open semantics, or nil. A booking whose
// checkout equals the new check-in is adjacent, not overlapping, which is
// what lets back-to-back stays share a calendar day. excludeID skips one
// booking when re-validating an edit; pass "" otherwise.
func (ix *Index) Overlapping(checkIn, checkOut calendar.Date, excludeID string) *model.Booking {
	for i := range ix.bookings {
		b := &ix.bookings[i]
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if checkIn.Before(b.CheckOut) && checkOut.After(b.CheckIn) {
			return b
		}
	}
	return nil
}

// StartsOn reports whether some booking checks in on date. The selection
// layer uses it to allow picking a checkout that coincides with the next
// guest's arrival.
func (ix *Index) StartsOn(date calendar.Date) bool {
	for i := range ix.bookings {
		if ix.bookings[i].CheckIn.Equal(date) {
			return true
		}
	}
	return false
}

// InMonth returns the bookings touching the given month, for display
// scoping. A booking checking out on the 1st is included so the calendar
// can still render its departure day.
func (ix *Index) InMonth(year int, month time.Month) []model.Booking {
	first, last := calendar.MonthBounds(year, month)

	var out []model.Booking
	for _, b := range ix.bookings {
		if !b.CheckIn.After(last) && !b.CheckOut.Before(first) {
			out = append(out, b)
		}
	}
	return out
}
