package selection

import (
	"testing"
	"time"

	"divano/pkg/calendar"
)

func jan(day int) calendar.Date {
	return calendar.New(2026, time.January, day)
}

func TestClickSequence(t *testing.T) {
	s := New()

	// First click picks the check-in.
	s.Click(jan(5))
	r := s.Current()
	if r.Start == nil || !r.Start.Equal(jan(5)) || r.End != nil {
		t.Fatalf("after first click: %+v", r)
	}

	// Clicking the same date again books a one-night stay: checkout is
	// the day after the clicked last night.
	s.Click(jan(5))
	r = s.Current()
	if !r.Complete() || !r.Start.Equal(jan(5)) || !r.End.Equal(jan(6)) {
		t.Fatalf("after second click: %+v", r)
	}

	// A click with a complete range restarts the selection.
	s.Click(jan(3))
	r = s.Current()
	if r.End != nil || !r.Start.Equal(jan(3)) {
		t.Fatalf("after restart click: %+v", r)
	}
}

func TestEarlierClickRestartsSelection(t *testing.T) {
	s := New()
	s.Click(jan(10))
	s.Click(jan(7)) // earlier than the pending check-in

	r := s.Current()
	if r.End != nil || !r.Start.Equal(jan(7)) {
		t.Fatalf("expected restart with Jan 7, got %+v", r)
	}
}

func TestLaterClickCompletesRange(t *testing.T) {
	s := New()
	s.Click(jan(10))
	s.Click(jan(14))

	r := s.Current()
	if !r.Complete() || !r.Start.Equal(jan(10)) || !r.End.Equal(jan(15)) {
		t.Fatalf("expected Jan 10 .. Jan 15 checkout, got %+v", r)
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.Click(jan(10))
	s.Click(jan(12))
	s.Clear()

	r := s.Current()
	if r.Start != nil || r.End != nil {
		t.Fatalf("expected empty selection, got %+v", r)
	}

	// Clear from a half-open selection too.
	s.Click(jan(3))
	s.Clear()
	if r := s.Current(); r.Start != nil {
		t.Fatalf("expected empty selection, got %+v", r)
	}
}

func TestEndNeverSetWithoutStart(t *testing.T) {
	s := New()
	for _, day := range []int{8, 5, 5, 2, 20, 1} {
		s.Click(jan(day))
		r := s.Current()
		if r.Start == nil && r.End != nil {
			t.Fatalf("end set without start: %+v", r)
		}
	}
}

func TestOnChangeFiresPerTransition(t *testing.T) {
	s := New()

	var calls []Range
	s.OnChange(func(r Range) {
		calls = append(calls, r)
	})

	s.Click(jan(5))
	s.Click(jan(6))
	s.Clear()

	if len(calls) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(calls))
	}
	if !calls[1].Complete() {
		t.Errorf("second notification should carry the completed range")
	}
	if calls[2].Start != nil {
		t.Errorf("clear notification should carry an empty range")
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	s := New()
	s.Click(jan(5))

	r := s.Current()
	*r.Start = jan(20) // mutate the copy

	if got := s.Current(); !got.Start.Equal(jan(5)) {
		t.Errorf("selector state leaked: %+v", got)
	}
}
