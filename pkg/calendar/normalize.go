package calendar

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The backing store is a spreadsheet whose cells silently switch
// representation when someone edits them by hand or the sheet's locale
// autoformats a column. Normalization therefore has to be total: it always
// produces some string, falling back to the raw input rather than failing,
// so one dirty cell cannot take the whole booking list down.

// Spreadsheet serial numbers count days from the sheet epoch; serial 25569
// lands on 1970-01-01.
const unixEpochSerial = 25569

var (
	isoRe        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	shortMonthRe = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3})\s+(\d{4})$`)
	serialRe     = regexp.MustCompile(`^\d+$`)
)

// Italian three-letter month abbreviations as Google Sheets renders them.
var shortMonths = map[string]time.Month{
	"gen": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"mag": time.May,
	"giu": time.June,
	"lug": time.July,
	"ago": time.August,
	"set": time.September,
	"ott": time.October,
	"nov": time.November,
	"dic": time.December,
}

// Layouts tried as a last resort before giving up on a cell.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Normalize converts a raw spreadsheet cell value into a canonical
// YYYY-MM-DD string. Recognized forms, tried in order: already-canonical ISO,
// Italian short form "3 gen 2026", numeric day serials, then a handful of
// generic layouts. Unrecognizable input is returned unchanged so the
// data-quality problem surfaces upstream instead of crashing the pipeline.
func Normalize(raw any) string {
	if raw == nil {
		return ""
	}

	switch v := raw.(type) {
	case float64:
		// JSON numbers decode as float64; sheets hand out whole-day serials.
		if v == math.Trunc(v) && v >= 0 {
			return FromSerial(int(v)).String()
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		if v >= 0 {
			return FromSerial(v).String()
		}
		return strconv.Itoa(v)
	case Date:
		return v.String()
	}

	str := strings.TrimSpace(fmt.Sprint(raw))
	if str == "" {
		return ""
	}

	if isoRe.MatchString(str) {
		return str
	}

	if m := shortMonthRe.FindStringSubmatch(str); m != nil {
		if month, ok := shortMonths[strings.ToLower(m[2])]; ok {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			return New(year, month, day).String()
		}
	}

	if serialRe.MatchString(str) {
		if serial, err := strconv.Atoi(str); err == nil {
			return FromSerial(serial).String()
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return FromTime(t).String()
		}
	}

	return str
}

// NormalizeDate is Normalize followed by the strict canonical parse.
func NormalizeDate(raw any) (Date, error) {
	return Parse(Normalize(raw))
}

// FromSerial converts a spreadsheet day-count serial into a Date using
// integer day arithmetic from the epoch anchor. Millisecond-timestamp
// conversion drifts across DST boundaries; day counting does not.
func FromSerial(serial int) Date {
	return New(1970, time.January, 1).AddDays(serial - unixEpochSerial)
}

// Serial is the inverse of FromSerial, handy for tests and sheet exports.
func (d Date) Serial() int {
	days := int(d.Time().Sub(time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)).Hours() / 24)
	return days + unixEpochSerial
}
