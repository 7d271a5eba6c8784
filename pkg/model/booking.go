package model

import (
	"time"

	"divano/pkg/calendar"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

// Booking is one stay on the property. It occupies every night from CheckIn
// inclusive to CheckOut exclusive: the checkout morning is free and may be
// someone else's check-in day.
type Booking struct {
	ID        string        `json:"id"`
	GuestName string        `json:"guestName"`
	CheckIn   calendar.Date `json:"checkIn"`
	CheckOut  calendar.Date `json:"checkOut"`
	Note      string        `json:"note,omitempty"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Nights is the number of occupied nights.
func (b Booking) Nights() int {
	return int(b.CheckOut.Time().Sub(b.CheckIn.Time()).Hours() / 24)
}

// BookingInput is what a guest submits from the form. Dates arrive already
// canonical from the selection layer; the engine re-validates them anyway.
type BookingInput struct {
	GuestName string        `json:"guestName" validate:"required,min=1,max=120"`
	CheckIn   calendar.Date `json:"checkIn"`
	CheckOut  calendar.Date `json:"checkOut"`
	Note      string        `json:"note,omitempty" validate:"max=500"`
}

// BookingRecord is the raw wire shape of one spreadsheet row. CheckIn and
// CheckOut are deliberately untyped: the sheet returns them as ISO strings,
// localized strings, or day serials depending on who touched the cell last.
type BookingRecord struct {
	ID        string `json:"id" bson:"_id"`
	GuestName string `json:"guestName" bson:"guest_name"`
	CheckIn   any    `json:"checkIn" bson:"check_in"`
	CheckOut  any    `json:"checkOut" bson:"check_out"`
	Note      string `json:"note,omitempty" bson:"note,omitempty"`
	Status    string `json:"status" bson:"status"`
	CreatedAt string `json:"createdAt" bson:"created_at"`
}

// Record converts a booking to its wire shape with canonical dates.
func (b Booking) Record() BookingRecord {
	return BookingRecord{
		ID:        b.ID,
		GuestName: b.GuestName,
		CheckIn:   b.CheckIn.String(),
		CheckOut:  b.CheckOut.String(),
		Note:      b.Note,
		Status:    b.Status,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
