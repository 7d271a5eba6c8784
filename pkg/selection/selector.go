// Package selection tracks a guest's in-progress check-in/check-out pick.
//
// The machine is click-driven, not drag-driven: one click chooses the
// check-in night, a second click on the same or a later date chooses the
// last night. The state is implicit in which fields of the range are set.
package selection

import "divano/pkg/calendar"

// Range is the transient selection. Start is the check-in date; End is the
// checkout date, i.e. the day after the last selected night. End is never
// set without Start.
type Range struct {
	Start *calendar.Date `json:"start"`
	End   *calendar.Date `json:"end"`
}

// Complete reports whether both ends of the range have been picked.
func (r Range) Complete() bool {
	return r.Start != nil && r.End != nil
}

// Selector is the selection state machine. It is transient UI state, owned
// by whoever composes the calendar, and is not safe for concurrent use.
type Selector struct {
	current  Range
	onChange func(Range)
}

func New() *Selector {
	return &Selector{}
}

// OnChange registers a callback fired after every transition. Hosts use it
// to clear transient form state (a previous error or success message) as an
// explicit effect of the selection changing, rather than detecting the
// change while rendering.
func (s *Selector) OnChange(fn func(Range)) {
	s.onChange = fn
}

// Click feeds one date-click event into the machine:
//
//   - no selection: the click becomes the check-in.
//   - check-in set, clicked date earlier: restart with the click as the new
//     check-in.
//   - check-in set, clicked date same or later: complete the range with
//     checkout the day after the clicked last night, so a single click is a
//     one-night stay.
//   - range complete: restart with the click as the new check-in.
//
// The host must reject clicks on occupied dates (per availability.Index)
// before calling Click.
func (s *Selector) Click(date calendar.Date) {
	switch {
	case s.current.Start == nil:
		s.current = Range{Start: &date}
	case s.current.End == nil && !date.Before(*s.current.Start):
		checkOut := date.AddDays(1)
		s.current.End = &checkOut
	default:
		s.current = Range{Start: &date}
	}
	s.changed()
}

// Clear resets the machine to no selection from any state.
func (s *Selector) Clear() {
	s.current = Range{}
	s.changed()
}

// Current returns a copy of the selection; mutating it does not affect the
// machine.
func (s *Selector) Current() Range {
	r := s.current
	if r.Start != nil {
		start := *r.Start
		r.Start = &start
	}
	if r.End != nil {
		end := *r.End
		r.End = &end
	}
	return r
}

func (s *Selector) changed() {
	if s.onChange != nil {
		s.onChange(s.Current())
	}
}
