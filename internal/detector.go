package internal

import (
	"math"
	"sort"
	"strings"
)

// Transaction is one row of a bank export. Negative amounts are expenses.
type Transaction struct {
	Date   CivilDate
	Text   string
	Amount float64
}

// DefaultTolerance is the max allowed price change between consecutive
// payments (0.35 = 35%).
const DefaultTolerance = 0.35

// GracePeriodDays is how long after an expected payment a series still
// counts as active.
const GracePeriodDays = 5

// Candidate is a recurring payment found in bank transactions.
type Candidate struct {
	Name         string
	Cycle        BillingCycle
	AvgAmount    float64
	LatestAmount float64
	MinAmount    float64
	MaxAmount    float64
	FirstDate    CivilDate
	LastDate     CivilDate
	TypicalDay   int
	Occurrences  int
	Active       bool
}

// ToSubscription converts the candidate into a subscription anchored on its
// latest payment, so the next renewal is the next expected charge.
func (c Candidate) ToSubscription(category Category) *Subscription {
	sub := NewSubscription(c.Name, math.Abs(c.LatestAmount), c.Cycle, c.LastDate, category)
	sub.Active = c.Active
	return sub
}

// DetectRecurring finds payees that are charged on a regular monthly,
// quarterly, half-yearly or yearly cadence with amounts that change by at
// most tolerance between consecutive payments.
func DetectRecurring(txs []Transaction, tolerance float64) []Candidate {
	if len(txs) == 0 {
		return nil
	}

	// Group expenses by payee name (case-insensitive)
	byName := make(map[string][]Transaction)
	displayNames := make(map[string]string) // lowercase -> display name (most recent)
	dataEnd := txs[0].Date
	for _, tx := range txs {
		if tx.Date.After(dataEnd) {
			dataEnd = tx.Date
		}
	}
	for _, tx := range FilterExpenses(txs) {
		key := strings.ToLower(strings.TrimSpace(tx.Text))
		byName[key] = append(byName[key], tx)
	}

	var candidates []Candidate
	for key, expenses := range byName {
		// Need at least 2 occurrences to see a cadence
		if len(expenses) < 2 {
			continue
		}

		sort.Slice(expenses, func(i, j int) bool {
			return expenses[i].Date.Before(expenses[j].Date)
		})
		displayNames[key] = expenses[len(expenses)-1].Text

		cycle, ok := InferCycle(expenses)
		if !ok {
			continue
		}
		if !AmountsWithinTolerance(expenses, tolerance) {
			continue
		}

		minAmount, maxAmount := CalculateAmountRange(expenses)
		last := expenses[len(expenses)-1]

		candidates = append(candidates, Candidate{
			Name:         displayNames[key],
			Cycle:        cycle,
			AvgAmount:    CalculateAverageAmount(expenses),
			LatestAmount: last.Amount,
			MinAmount:    minAmount,
			MaxAmount:    maxAmount,
			FirstDate:    expenses[0].Date,
			LastDate:     last.Date,
			TypicalDay:   CalculateTypicalDay(expenses),
			Occurrences:  len(expenses),
			Active:       IsStillActive(last.Date, cycle, dataEnd),
		})
	}

	// Sort: active first, then by monthly cost (highest first)
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Active != candidates[j].Active {
			return candidates[i].Active
		}
		mi := MonthlyCost(math.Abs(candidates[i].LatestAmount), candidates[i].Cycle)
		mj := MonthlyCost(math.Abs(candidates[j].LatestAmount), candidates[j].Cycle)
		if mi != mj {
			return mi > mj
		}
		return candidates[i].Name < candidates[j].Name
	})

	return candidates
}

// InferCycle returns the billing cycle matching the month gaps between
// date-sorted payments. Every gap must be the same and be 1, 3, 6 or 12
// months; two payments in one month never form a cycle.
func InferCycle(txs []Transaction) (BillingCycle, bool) {
	if len(txs) < 2 {
		return 0, false
	}
	gap := monthIndex(txs[1].Date) - monthIndex(txs[0].Date)
	for i := 2; i < len(txs); i++ {
		if monthIndex(txs[i].Date)-monthIndex(txs[i-1].Date) != gap {
			return 0, false
		}
	}
	for _, c := range AllCycles {
		if c.Recurring() && c.Months() == gap {
			return c, true
		}
	}
	return 0, false
}

func monthIndex(d CivilDate) int {
	return d.Year*12 + int(d.Month) - 1
}

// IsStillActive reports whether a series whose last payment was on last is
// still running at dataEnd: the next expected payment plus a grace period
// hasn't passed yet.
func IsStillActive(last CivilDate, cycle BillingCycle, dataEnd CivilDate) bool {
	expected := NextRenewal(last, cycle)
	return !dataEnd.After(expected.AddDays(GracePeriodDays))
}

// FilterExpenses returns only transactions with negative amounts (expenses).
func FilterExpenses(txs []Transaction) []Transaction {
	var expenses []Transaction
	for _, tx := range txs {
		if tx.Amount < 0 {
			expenses = append(expenses, tx)
		}
	}
	return expenses
}

// AmountsWithinTolerance checks if consecutive amounts are within the given tolerance.
// This handles currency fluctuations better than comparing to an average.
func AmountsWithinTolerance(txs []Transaction, tolerance float64) bool {
	if len(txs) < 2 {
		return len(txs) == 1 // single transaction is valid
	}

	for i := 1; i < len(txs); i++ {
		prev := math.Abs(txs[i-1].Amount)
		curr := math.Abs(txs[i].Amount)
		if prev == 0 {
			return false
		}
		diff := math.Abs(curr-prev) / prev
		if diff > tolerance {
			return false
		}
	}
	return true
}

// CalculateAverageAmount returns the average amount across all transactions.
func CalculateAverageAmount(txs []Transaction) float64 {
	if len(txs) == 0 {
		return 0
	}
	sum := 0.0
	for _, tx := range txs {
		sum += tx.Amount
	}
	return sum / float64(len(txs))
}

// CalculateAmountRange returns the min and max absolute amounts.
func CalculateAmountRange(txs []Transaction) (min, max float64) {
	if len(txs) == 0 {
		return 0, 0
	}
	min = math.Abs(txs[0].Amount)
	max = math.Abs(txs[0].Amount)
	for _, tx := range txs[1:] {
		amt := math.Abs(tx.Amount)
		if amt < min {
			min = amt
		}
		if amt > max {
			max = amt
		}
	}
	return min, max
}

// CalculateTypicalDay returns the average day of month for payments.
func CalculateTypicalDay(txs []Transaction) int {
	if len(txs) == 0 {
		return 0
	}
	sum := 0
	for _, tx := range txs {
		sum += tx.Date.Day
	}
	return sum / len(txs)
}
