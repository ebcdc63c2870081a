package internal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultTimezone is the civil timezone used when none is configured.
const DefaultTimezone = "Asia/Kolkata"

// Calendar answers date questions in a single fixed civil timezone. The
// location and clock are set at construction and never change, so a Calendar
// is safe for concurrent use.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar returns a calendar for loc. now supplies the current instant;
// nil means time.Now.
func NewCalendar(loc *time.Location, now func() time.Time) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{loc: loc, now: now}
}

// LoadCalendar is like NewCalendar but resolves zone by name. zone is either an
// IANA name ("Asia/Kolkata") or a fixed UTC offset ("UTC+05:30", "+0530").
func LoadCalendar(zone string, now func() time.Time) (*Calendar, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return nil, err
	}
	return NewCalendar(loc, now), nil
}

var offsetPattern = regexp.MustCompile(`^(?:UTC|GMT)?([+-])(\d{1,2})(?::?(\d{2}))?$`)

// LoadZone resolves an IANA zone name or a fixed UTC offset.
func LoadZone(zone string) (*time.Location, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		zone = DefaultTimezone
	}
	if m := offsetPattern.FindStringSubmatch(strings.ToUpper(zone)); m != nil {
		hours, _ := strconv.Atoi(m[2])
		minutes := 0
		if m[3] != "" {
			minutes, _ = strconv.Atoi(m[3])
		}
		if hours > 14 || minutes > 59 {
			return nil, fmt.Errorf("invalid UTC offset %q", zone)
		}
		offset := hours*3600 + minutes*60
		if m[1] == "-" {
			offset = -offset
		}
		return time.FixedZone(zone, offset), nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", zone, err)
	}
	return loc, nil
}

// Location returns the calendar's civil timezone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the calendar's timezone.
func (c *Calendar) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current date in the calendar's timezone.
func (c *Calendar) Today() CivilDate {
	return DateOf(c.Now())
}

// NextRenewal advances start by one billing cycle. Once returns start
// unchanged; callers must treat one-time charges specially rather than read
// this as a renewal date.
func NextRenewal(start CivilDate, cycle BillingCycle) CivilDate {
	months := cycle.Months()
	if months == 0 {
		return start
	}
	return start.AddMonths(months)
}

// NextOccurrence returns the first renewal on or after today, counting whole
// cycles from start. Each candidate is computed from start itself, so a
// month-end start (Jan 31) keeps landing on month ends instead of drifting.
// Once returns start.
func NextOccurrence(start CivilDate, cycle BillingCycle, today CivilDate) CivilDate {
	months := cycle.Months()
	if months == 0 {
		return start
	}
	next := start.AddMonths(months)
	if !next.Before(today) {
		return next
	}
	elapsed := (today.Year-start.Year)*12 + int(today.Month-start.Month)
	k := elapsed / months
	if k < 1 {
		k = 1
	}
	for {
		next = start.AddMonths(k * months)
		if !next.Before(today) {
			return next
		}
		k++
	}
}

// DaysUntil returns the whole days from today until the next renewal of a
// subscription that started on start. Negative means overdue. For Once it is
// the distance to start itself.
func (c *Calendar) DaysUntil(start CivilDate, cycle BillingCycle) int {
	return NextRenewal(start, cycle).DaysSince(c.Today())
}

// MonthlyCost normalizes an amount charged once per cycle to a monthly figure.
// One-time charges count as zero. No rounding is applied.
func MonthlyCost(amount float64, cycle BillingCycle) float64 {
	months := cycle.Months()
	if months == 0 {
		return 0
	}
	return amount / float64(months)
}

// Urgency buckets a renewal by how soon it is due.
type Urgency string

const (
	UrgencyNone    Urgency = "none" // one-time payment
	UrgencyOverdue Urgency = "overdue"
	UrgencyToday   Urgency = "today"
	UrgencySoon    Urgency = "soon"
	UrgencyLater   Urgency = "later"
)

// SoonDays is the horizon within which a renewal counts as UrgencySoon.
const SoonDays = 3

// RenewalStatus describes the next renewal of a subscription.
type RenewalStatus struct {
	Next    CivilDate
	Days    int
	Label   string
	Urgency Urgency
}

// RenewalStatus reports when start/cycle renews relative to today.
func (c *Calendar) RenewalStatus(start CivilDate, cycle BillingCycle) RenewalStatus {
	next := NextRenewal(start, cycle)
	days := next.DaysSince(c.Today())
	status := RenewalStatus{Next: next, Days: days}

	switch {
	case cycle == Once:
		status.Label, status.Urgency = "One-time payment", UrgencyNone
	case days < 0:
		status.Label, status.Urgency = "Overdue", UrgencyOverdue
	case days == 0:
		status.Label, status.Urgency = "Renewing today", UrgencyToday
	case days == 1:
		status.Label, status.Urgency = "Renewing tomorrow", UrgencySoon
	case days <= SoonDays:
		status.Label, status.Urgency = fmt.Sprintf("Renewing in %d days", days), UrgencySoon
	default:
		status.Label, status.Urgency = fmt.Sprintf("Renewing in %d days", days), UrgencyLater
	}
	return status
}
