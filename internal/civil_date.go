package internal

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the canonical serialized form of a CivilDate.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

var datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// CivilDate is a calendar date with no time of day and no timezone.
// The zero value means "no date".
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCivilDate returns the date for year, month and day, or an error if they
// don't name a real Gregorian date.
func NewCivilDate(year int, month time.Month, day int) (CivilDate, error) {
	if month < time.January || month > time.December || day < 1 || day > daysIn(year, month) {
		return CivilDate{}, &DateError{Input: fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)}
	}
	return CivilDate{Year: year, Month: month, Day: day}, nil
}

// MustDate is like ParseDate but panics on malformed input. Intended for
// constants and tests.
func MustDate(s string) CivilDate {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses a YYYY-MM-DD string into the calendar date it names.
// The host timezone is never consulted.
func ParseDate(s string) (CivilDate, error) {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return CivilDate{}, &DateError{Input: s}
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	d, err := NewCivilDate(year, time.Month(month), day)
	if err != nil {
		return CivilDate{}, &DateError{Input: s}
	}
	return d, nil
}

// DateOf returns the civil date of t as observed in t's own location.
func DateOf(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

func (d CivilDate) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero date.
func (d CivilDate) IsZero() bool {
	return d == CivilDate{}
}

// Time returns midnight of d in loc.
func (d CivilDate) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d CivilDate) utc() time.Time {
	return d.Time(time.UTC)
}

// AddDays returns d shifted by n days.
func (d CivilDate) AddDays(n int) CivilDate {
	return DateOf(d.utc().AddDate(0, 0, n))
}

// AddMonths returns d shifted by n calendar months. When the day doesn't exist
// in the target month it is clamped to that month's last day, so Jan 31 + 1
// month is Feb 28 (or Feb 29 in a leap year).
func (d CivilDate) AddMonths(n int) CivilDate {
	first := time.Date(d.Year, d.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := d.Day
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return CivilDate{Year: first.Year(), Month: first.Month(), Day: day}
}

// DaysSince returns the number of whole days from other to d. Negative when d
// is before other.
func (d CivilDate) DaysSince(other CivilDate) int {
	return int((d.utc().Unix() - other.utc().Unix()) / secondsPerDay)
}

func (d CivilDate) Before(other CivilDate) bool { return d.DaysSince(other) < 0 }
func (d CivilDate) After(other CivilDate) bool  { return d.DaysSince(other) > 0 }
func (d CivilDate) Equal(other CivilDate) bool  { return d == other }

// MarshalText implements encoding.TextMarshaler. Used by both the JSON and YAML
// encoders.
func (d CivilDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string decodes to
// the zero date.
func (d *CivilDate) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = CivilDate{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
