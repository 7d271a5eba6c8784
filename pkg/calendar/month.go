package calendar

import "time"

// MonthCell is one square of the 6x7 month grid.
type MonthCell struct {
	Date    Date
	InMonth bool
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (Date, Date) {
	first := New(year, month, 1)
	// Day zero of the next month is the last day of this one.
	last := FromTime(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC))
	return first, last
}

// DaysIn reports the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	_, last := MonthBounds(year, month)
	return last.Day
}

// MonthGrid lays out a Monday-first calendar grid of exactly 42 cells
// (6 weeks), padded with trailing days of the previous month and leading
// days of the next one.
func MonthGrid(year int, month time.Month) []MonthCell {
	first, last := MonthBounds(year, month)

	// time.Weekday counts Sunday as 0; shift so Monday is offset 0.
	offset := int(first.Time().Weekday()) - 1
	if offset < 0 {
		offset = 6
	}

	cells := make([]MonthCell, 0, 42)
	for i := offset; i > 0; i-- {
		cells = append(cells, MonthCell{Date: first.AddDays(-i)})
	}
	for day := 1; day <= last.Day; day++ {
		cells = append(cells, MonthCell{Date: New(year, month, day), InMonth: true})
	}
	for i := 1; len(cells) < 42; i++ {
		cells = append(cells, MonthCell{Date: last.AddDays(i)})
	}
	return cells
}
