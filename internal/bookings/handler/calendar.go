package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"divano/pkg/calendar"
	httputil "divano/pkg/http"
	"divano/pkg/model"
)

// MonthViewResponse is the read-only capability surface a visual calendar
// needs: the month's bookings plus a 42-cell Monday-first grid with per-day
// occupancy. The renderer styles it and feeds clicks back through the
// selection machine; it never computes occupancy itself.
type MonthViewResponse struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Bookings []model.Booking `json:"bookings"`
	Cells    []MonthViewCell `json:"cells"`
}

type MonthViewCell struct {
	Date     calendar.Date `json:"date"`
	InMonth  bool          `json:"inMonth"`
	Occupant *CellOccupant `json:"occupant,omitempty"`
	StartsOn bool          `json:"startsOn"`
}

// CellOccupant is the subset of a booking a calendar cell reveals.
type CellOccupant struct {
	ID        string `json:"id"`
	GuestName string `json:"guestName"`
	Status    string `json:"status"`
}

func (h *BookingHandler) MonthView(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	year, month, err := parseYearMonth(ps.ByName("year"), ps.ByName("month"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MonthView", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	index := h.service.Index()
	grid := calendar.MonthGrid(year, month)

	cells := make([]MonthViewCell, 0, len(grid))
	for _, cell := range grid {
		out := MonthViewCell{
			Date:     cell.Date,
			InMonth:  cell.InMonth,
			StartsOn: index.StartsOn(cell.Date),
		}
		if occupant := index.OccupantOn(cell.Date); occupant != nil {
			out.Occupant = &CellOccupant{
				ID:        occupant.ID,
				GuestName: occupant.GuestName,
				Status:    occupant.Status,
			}
		}
		cells = append(cells, out)
	}

	bookings := index.InMonth(year, month)
	if bookings == nil {
		bookings = []model.Booking{}
	}

	response := MonthViewResponse{
		Year:     year,
		Month:    int(month),
		Bookings: bookings,
		Cells:    cells,
	}
	if writeErr := httputil.WriteSuccess(w, response); writeErr != nil {
		h.log.Error("failed to write success response", "handler", "MonthView", "operation", "WriteSuccess", "error", writeErr)
	}
}
