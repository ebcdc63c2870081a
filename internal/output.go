package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// OutputOptions controls how subscriptions are displayed
type OutputOptions struct {
	ShowFilter     string
	CategoryFilter []string
	SortField      string // "renewal" (default), "name", "cost", "monthly"
	SortDir        string
	Currency       Currency
	Calendar       *Calendar
}

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Subscriptions []JSONSubscription `json:"subscriptions"`
	Summary       JSONSummary        `json:"summary"`
}

// JSONSummary contains aggregate statistics
type JSONSummary struct {
	Count        int     `json:"count"`
	MonthlyTotal float64 `json:"monthly_total"`
	YearlyTotal  float64 `json:"yearly_total"`
	Currency     string  `json:"currency"`
}

// JSONSubscription is the JSON output format for a subscription
type JSONSubscription struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Cycle          string  `json:"billing_cycle"`
	Cost           float64 `json:"cost"`
	MonthlyCost    float64 `json:"monthly_cost"`
	StartDate      string  `json:"start_date"`
	NextRenewal    string  `json:"next_renewal"`
	NextOccurrence string  `json:"next_occurrence"`
	DaysUntil      int     `json:"days_until"`
	Status         string  `json:"status"`
	PaymentMethod  string  `json:"payment_method,omitempty"`
	Active         bool    `json:"active"`
}

// PrintSubscriptionsJSON outputs subscriptions in JSON format
func PrintSubscriptionsJSON(w io.Writer, subs []Subscription, cal *Calendar, currency Currency) error {
	subscriptions := make([]JSONSubscription, 0, len(subs))
	today := cal.Today()

	for _, sub := range subs {
		status := cal.RenewalStatus(sub.StartDate, sub.Cycle)
		subscriptions = append(subscriptions, JSONSubscription{
			ID:             sub.ID,
			Name:           sub.Name,
			Category:       string(sub.Category),
			Cycle:          sub.Cycle.String(),
			Cost:           sub.Cost,
			MonthlyCost:    sub.MonthlyCost(),
			StartDate:      sub.StartDate.String(),
			NextRenewal:    status.Next.String(),
			NextOccurrence: NextOccurrence(sub.StartDate, sub.Cycle, today).String(),
			DaysUntil:      status.Days,
			Status:         status.Label,
			PaymentMethod:  sub.PaymentMethod,
			Active:         sub.Active,
		})
	}

	summary := Summarize(subs)
	output := JSONOutput{
		Subscriptions: subscriptions,
		Summary: JSONSummary{
			Count:        summary.Count,
			MonthlyTotal: summary.MonthlySpend,
			YearlyTotal:  summary.YearlyProjection,
			Currency:     currency.Code,
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// ShortID is the ID prefix shown in tables and accepted by ResolveID.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// SortSubscriptions orders subs in place according to opts.
func SortSubscriptions(subs []Subscription, opts OutputOptions) {
	if opts.SortField == "" || opts.SortField == "renewal" {
		SortByRenewal(subs, opts.Calendar)
		if opts.SortDir == "desc" {
			for i, j := 0, len(subs)-1; i < j; i, j = i+1, j-1 {
				subs[i], subs[j] = subs[j], subs[i]
			}
		}
		return
	}
	sort.SliceStable(subs, func(i, j int) bool {
		if opts.SortDir == "desc" {
			i, j = j, i
		}
		switch opts.SortField {
		case "cost":
			return subs[i].Cost < subs[j].Cost
		case "monthly":
			return subs[i].MonthlyCost() < subs[j].MonthlyCost()
		default: // "name"
			return strings.ToLower(subs[i].Name) < strings.ToLower(subs[j].Name)
		}
	})
}

func urgencyColor(u Urgency) text.Colors {
	switch u {
	case UrgencyOverdue:
		return text.Colors{text.FgRed, text.Bold}
	case UrgencyToday:
		return text.Colors{text.FgRed}
	case UrgencySoon:
		return text.Colors{text.FgYellow}
	case UrgencyNone:
		return text.Colors{text.FgHiBlack}
	default:
		return text.Colors{text.FgGreen}
	}
}

// PrintSubscriptionsTable outputs subscriptions as a formatted table
func PrintSubscriptionsTable(w io.Writer, allSubs []Subscription, displaySubs []Subscription, opts OutputOptions) {
	activeCount := 0
	for _, sub := range allSubs {
		if sub.Active {
			activeCount++
		}
	}

	// Totals cover displayed subscriptions only
	summary := Summarize(displaySubs)

	fmt.Fprintf(w, "Found %d subscriptions (%d active, %d inactive)\n",
		len(allSubs), activeCount, len(allSubs)-activeCount)
	showingStr := opts.ShowFilter
	if len(opts.CategoryFilter) > 0 {
		showingStr += fmt.Sprintf(", categories: %s", strings.Join(opts.CategoryFilter, ", "))
	}
	fmt.Fprintf(w, "Showing: %s (today is %s)\n\n", showingStr, opts.Calendar.Today())

	SortSubscriptions(displaySubs, opts)

	t := table.NewWriter()
	t.SetOutputMirror(w)

	hasPayment := false
	for _, sub := range displaySubs {
		if sub.PaymentMethod != "" {
			hasPayment = true
			break
		}
	}

	header := table.Row{"ID", "Name", "Category", "Cycle"}
	if hasPayment {
		header = append(header, "Payment")
	}
	header = append(header, "Next Renewal", "Status", "Cost", "Monthly")
	t.AppendHeader(header)

	for _, sub := range displaySubs {
		status := opts.Calendar.RenewalStatus(sub.StartDate, sub.Cycle)

		next := status.Next.String()
		label := urgencyColor(status.Urgency).Sprint(status.Label)
		monthly := opts.Currency.FormatCents(sub.MonthlyCost())
		if sub.Cycle == Once {
			next = text.FgHiBlack.Sprint("-")
			monthly = text.FgHiBlack.Sprint("-")
		}
		if !sub.Active {
			label = text.FgHiBlack.Sprint("INACTIVE")
		}

		row := table.Row{ShortID(sub.ID), sub.Name, string(sub.Category), sub.Cycle.String()}
		if hasPayment {
			row = append(row, sub.PaymentMethod)
		}
		row = append(row, next, label, opts.Currency.FormatCents(sub.Cost), monthly)
		t.AppendRow(row)
	}

	t.AppendSeparator()

	footer := table.Row{"", "", "", ""}
	if hasPayment {
		footer = append(footer, "")
	}
	footer = append(footer, "", "",
		text.Bold.Sprint("Monthly / Yearly"),
		text.Bold.Sprint(opts.Currency.Format(summary.MonthlySpend)+" / "+opts.Currency.Format(summary.YearlyProjection)))
	t.AppendFooter(footer)

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	// Right-align Cost and Monthly columns (last two)
	colCount := len(header)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: colCount - 1, Align: text.AlignRight},
		{Number: colCount, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	t.Render()
}

// PrintUpcomingTable lists renewals returned by DueWithin.
func PrintUpcomingTable(w io.Writer, due []Upcoming, days int, currency Currency) {
	if len(due) == 0 {
		fmt.Fprintf(w, "Nothing renews in the next %d days.\n", days)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Name", "Renewal", "In", "Cost"})

	var total float64
	for _, u := range due {
		in := fmt.Sprintf("%d days", u.Days)
		switch {
		case u.Days < 0:
			in = text.Colors{text.FgRed, text.Bold}.Sprintf("%d days overdue", -u.Days)
		case u.Days == 0:
			in = text.FgRed.Sprint("today")
		case u.Days == 1:
			in = text.FgYellow.Sprint("tomorrow")
		case u.Days <= SoonDays:
			in = text.FgYellow.Sprint(in)
		}
		total += u.Subscription.Cost
		t.AppendRow(table.Row{ShortID(u.Subscription.ID), u.Subscription.Name, u.Renewal.String(), in, currency.FormatCents(u.Subscription.Cost)})
	}
	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", "", text.Bold.Sprint("Total due"), text.Bold.Sprint(currency.FormatCents(total))})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.Render()
}

// PrintPresetsTable lists catalog presets, one row per plan.
func PrintPresetsTable(w io.Writer, presets []Preset, currency Currency) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Service", "Category", "Plan", "Cycle", "Cost", "Monthly"})

	for _, p := range presets {
		for i, plan := range p.Plans {
			name, category := p.Name, string(p.Category)
			if i > 0 {
				name, category = "", ""
			}
			t.AppendRow(table.Row{name, category, plan.Name, plan.Cycle.String(),
				currency.FormatCents(plan.Cost), currency.FormatCents(MonthlyCost(plan.Cost, plan.Cycle))})
		}
		t.AppendSeparator()
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	t.Render()
}

// PrintCandidatesTable outputs recurring payments found by DetectRecurring.
func PrintCandidatesTable(w io.Writer, candidates []Candidate, currency Currency) {
	activeCount := 0
	for _, c := range candidates {
		if c.Active {
			activeCount++
		}
	}
	fmt.Fprintf(w, "Found %d recurring payments (%d active, %d stopped)\n\n",
		len(candidates), activeCount, len(candidates)-activeCount)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Name", "Status", "Cycle", "Day", "Started", "Last Seen", "Amount", "Monthly"})

	var totalMonthly float64
	for _, c := range candidates {
		status := text.FgGreen.Sprint("ACTIVE")
		if !c.Active {
			status = text.FgRed.Sprint("STOPPED")
		}

		amountStr := currency.Format(math.Abs(c.AvgAmount))
		if c.MinAmount != c.MaxAmount {
			amountStr = currency.Format(c.MinAmount) + " - " + currency.Format(c.MaxAmount)
		}

		monthly := MonthlyCost(math.Abs(c.LatestAmount), c.Cycle)
		monthlyStr := currency.Format(monthly)
		if c.Active {
			totalMonthly += monthly
		} else {
			monthlyStr = text.FgHiBlack.Sprint("-")
		}

		t.AppendRow(table.Row{c.Name, status, c.Cycle.String(), fmt.Sprintf("~%d", c.TypicalDay),
			c.FirstDate.String(), c.LastDate.String(), amountStr, monthlyStr})
	}

	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", "", "", "", "", text.Bold.Sprint("Total (active)"), text.Bold.Sprint(currency.Format(totalMonthly))})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})

	t.Render()
}
