package internal

import (
	"sort"
	"strings"
)

// DefaultDueWithinDays is the default reminder horizon.
const DefaultDueWithinDays = 31

// Summary holds aggregate spend across subscriptions.
type Summary struct {
	Count            int
	Recurring        int
	MonthlySpend     float64
	YearlyProjection float64
}

// Summarize totals the normalized monthly cost of the active subscriptions.
// One-time payments are counted but contribute nothing to spend.
func Summarize(subs []Subscription) Summary {
	var s Summary
	for _, sub := range subs {
		if !sub.Active {
			continue
		}
		s.Count++
		if sub.Cycle.Recurring() {
			s.Recurring++
			s.MonthlySpend += sub.MonthlyCost()
		}
	}
	s.YearlyProjection = s.MonthlySpend * 12
	return s
}

// SortByRenewal orders subscriptions soonest renewal first, breaking ties by
// name. The slice is sorted in place.
func SortByRenewal(subs []Subscription, cal *Calendar) {
	sort.SliceStable(subs, func(i, j int) bool {
		di := cal.DaysUntil(subs[i].StartDate, subs[i].Cycle)
		dj := cal.DaysUntil(subs[j].StartDate, subs[j].Cycle)
		if di != dj {
			return di < dj
		}
		return strings.ToLower(subs[i].Name) < strings.ToLower(subs[j].Name)
	})
}

// Upcoming is a subscription paired with its next renewal.
type Upcoming struct {
	Subscription Subscription
	Renewal      CivilDate
	Days         int
}

// DueWithin returns the active recurring subscriptions that are overdue or
// renew within the given number of days, soonest first.
func DueWithin(subs []Subscription, cal *Calendar, days int) []Upcoming {
	today := cal.Today()
	var due []Upcoming
	for _, sub := range subs {
		if !sub.Active || !sub.Cycle.Recurring() {
			continue
		}
		next := sub.NextRenewal()
		d := next.DaysSince(today)
		if d > days {
			continue
		}
		due = append(due, Upcoming{Subscription: sub, Renewal: next, Days: d})
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Days < due[j].Days
	})
	return due
}

// FilterByStatus filters subscriptions by status (active/inactive/all).
func FilterByStatus(subs []Subscription, show string) []Subscription {
	if show == "all" {
		return subs
	}
	var result []Subscription
	for _, sub := range subs {
		if show == "active" && sub.Active {
			result = append(result, sub)
		} else if show == "inactive" && !sub.Active {
			result = append(result, sub)
		}
	}
	return result
}

// FilterByCategory keeps subscriptions in any of the given categories. An
// empty filter keeps everything.
func FilterByCategory(subs []Subscription, categories []string) []Subscription {
	if len(categories) == 0 {
		return subs
	}
	var result []Subscription
	for _, sub := range subs {
		for _, c := range categories {
			if strings.EqualFold(string(sub.Category), c) {
				result = append(result, sub)
				break
			}
		}
	}
	return result
}
