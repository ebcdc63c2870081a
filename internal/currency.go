package internal

import (
	"os"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency formats amounts for display. Formatting happens only at the
// presentation edge; stored and aggregated amounts are never rounded.
type Currency struct {
	Code    string // "INR", "USD", "EUR"
	symbol  string
	prefix  bool
	printer *message.Printer
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
}

// prefixCurrencies place the symbol before the amount.
// golang.org/x/text/currency doesn't expose CLDR symbol placement, so the list
// is kept by hand.
var prefixCurrencies = map[string]bool{
	"INR": true, "USD": true, "GBP": true, "JPY": true, "CAD": true,
	"AUD": true, "HKD": true, "SGD": true, "NZD": true, "ZAR": true,
}

// NewCurrency returns a formatter for the ISO code using locale for digit
// grouping. An unparsable locale falls back to English. Unknown codes are
// printed as the code itself.
func NewCurrency(code, locale string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	printer := message.NewPrinter(tag)

	symbol := code
	if s, ok := symbolOverrides[code]; ok {
		symbol = s
	} else if unit, err := currency.ParseISO(code); err == nil {
		symbol = printer.Sprint(currency.NarrowSymbol(unit))
	}

	return Currency{
		Code:    code,
		symbol:  symbol,
		prefix:  prefixCurrencies[code],
		printer: printer,
	}
}

// Symbol returns the display symbol.
func (c Currency) Symbol() string {
	return c.symbol
}

// Format formats an amount with no fraction digits, like the dashboard totals.
func (c Currency) Format(amount float64) string {
	return c.attach(c.printer.Sprint(number.Decimal(amount, number.MaxFractionDigits(0))))
}

// FormatCents formats an amount with exactly two fraction digits.
func (c Currency) FormatCents(amount float64) string {
	return c.attach(c.printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2))))
}

func (c Currency) attach(formatted string) string {
	if c.prefix {
		return c.symbol + formatted
	}
	return formatted + " " + c.symbol
}

// LocaleAuto in config selects the operating system's locale.
const LocaleAuto = "auto"

// ResolveLocale turns a configured locale into a BCP 47 tag. "auto" reads
// the system locale ("en_IN.UTF-8" becomes "en-IN") and falls back to
// DefaultLocale when none is set.
func ResolveLocale(locale string) string {
	if !strings.EqualFold(locale, LocaleAuto) {
		return locale
	}
	sys := systemLocale()
	if i := strings.IndexAny(sys, ".@"); i >= 0 {
		sys = sys[:i]
	}
	sys = strings.ReplaceAll(sys, "_", "-")
	if _, err := language.Parse(sys); sys == "" || err != nil {
		return DefaultLocale
	}
	return sys
}

// localeFromEnv checks LC_MONETARY, LC_ALL and LANG in that order, ignoring
// the C and POSIX locales.
func localeFromEnv() string {
	for _, envVar := range []string{"LC_MONETARY", "LC_ALL", "LANG"} {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}
	return ""
}
