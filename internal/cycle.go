package internal

import (
	"fmt"
	"strings"
)

// BillingCycle is the recurrence interval of a subscription charge. The set is
// closed; the zero value is not a valid cycle.
type BillingCycle int

const (
	Monthly BillingCycle = iota + 1
	Quarterly
	BiAnnual
	Yearly
	Once
)

// AllCycles lists every billing cycle in display order.
var AllCycles = []BillingCycle{Monthly, Quarterly, BiAnnual, Yearly, Once}

var cycleNames = map[BillingCycle]string{
	Monthly:   "Monthly",
	Quarterly: "Quarterly",
	BiAnnual:  "Bi-Annual",
	Yearly:    "Yearly",
	Once:      "Once",
}

// cycleAliases maps normalized (lowercase, no separators) spellings to cycles.
var cycleAliases = map[string]BillingCycle{
	"monthly":    Monthly,
	"month":      Monthly,
	"quarterly":  Quarterly,
	"quarter":    Quarterly,
	"biannual":   BiAnnual,
	"semiannual": BiAnnual,
	"halfyearly": BiAnnual,
	"yearly":     Yearly,
	"annual":     Yearly,
	"annually":   Yearly,
	"year":       Yearly,
	"once":       Once,
	"onetime":    Once,
}

// ParseBillingCycle parses a cycle name, case-insensitively. "Bi-Annual",
// "bi_annual" and "biannual" are all accepted.
func ParseBillingCycle(s string) (BillingCycle, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	if c, ok := cycleAliases[key]; ok {
		return c, nil
	}
	return 0, &CycleError{Input: s}
}

// CycleNames returns the canonical names of all cycles.
func CycleNames() []string {
	names := make([]string, 0, len(AllCycles))
	for _, c := range AllCycles {
		names = append(names, c.String())
	}
	return names
}

func (c BillingCycle) String() string {
	if name, ok := cycleNames[c]; ok {
		return name
	}
	return fmt.Sprintf("BillingCycle(%d)", int(c))
}

// Valid reports whether c is one of the known cycles.
func (c BillingCycle) Valid() bool {
	_, ok := cycleNames[c]
	return ok
}

// Recurring reports whether the cycle repeats. Only Once doesn't.
func (c BillingCycle) Recurring() bool {
	return c.Valid() && c != Once
}

// Months returns the length of the cycle in calendar months. Once has length 0.
func (c BillingCycle) Months() int {
	switch c {
	case Monthly:
		return 1
	case Quarterly:
		return 3
	case BiAnnual:
		return 6
	case Yearly:
		return 12
	case Once:
		return 0
	}
	// Cycles only enter the program through ParseBillingCycle, so this is a
	// programming error rather than bad input.
	panic(&CycleError{Input: c.String()})
}

func (c BillingCycle) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, &CycleError{Input: c.String()}
	}
	return []byte(c.String()), nil
}

func (c *BillingCycle) UnmarshalText(text []byte) error {
	parsed, err := ParseBillingCycle(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
