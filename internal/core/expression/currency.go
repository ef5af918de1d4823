package expression

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// Currency is one row of the conversion table.
type Currency struct {
	Symbol     string
	Code       string
	RateToBase float64
	Name       string
}

// CurrencyTable converts amounts into the base currency.
type CurrencyTable struct {
	base    Currency
	entries []Currency
	codes   map[string]*regexp.Regexp
}

var (
	numberPattern     = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?|\.\d+`)
	amountExprPattern = regexp.MustCompile(`^[\d\s.,+\-*/×÷^()%]+$`)
	amountOperPattern = regexp.MustCompile(`[\d)]\s*[-+*/×÷^%]\s*[\d(.]`)
)

// DefaultCurrencies returns the built-in table with CNY as the base currency.
// Rates are fixed.
func DefaultCurrencies() *CurrencyTable {
	base := Currency{Symbol: "¥", Code: "CNY", RateToBase: 1, Name: "人民币"}
	return NewCurrencyTable(base, []Currency{
		{Symbol: "$", Code: "USD", RateToBase: 7.22, Name: "美元"},
		{Symbol: "€", Code: "EUR", RateToBase: 7.85, Name: "欧元"},
		{Symbol: "£", Code: "GBP", RateToBase: 9.12, Name: "英镑"},
		{Symbol: "JP¥", Code: "JPY", RateToBase: 0.048, Name: "日元"},
		{Symbol: "HK$", Code: "HKD", RateToBase: 0.92, Name: "港币"},
		{Symbol: "₩", Code: "KRW", RateToBase: 0.0053, Name: "韩元"},
		base,
	})
}

// NewCurrencyTable creates a table over entries. Symbols are matched longest first
// so "HK$" wins over "$", and the base currency is tried last so
// "100 USD to CNY" reads as dollars.
func NewCurrencyTable(base Currency, entries []Currency) *CurrencyTable {
	sorted := append([]Currency(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		bi, bj := sorted[i].Code == base.Code, sorted[j].Code == base.Code
		if bi != bj {
			return bj
		}
		return len(sorted[i].Symbol) > len(sorted[j].Symbol)
	})

	codes := make(map[string]*regexp.Regexp, len(sorted))
	for _, c := range sorted {
		codes[c.Code] = regexp.MustCompile(`(?i)(^|[^a-z])` + regexp.QuoteMeta(c.Code) + `([^a-z]|$)`)
	}
	return &CurrencyTable{base: base, entries: sorted, codes: codes}
}

// Base returns the base currency.
func (t *CurrencyTable) Base() Currency {
	return t.base
}

// Lookup finds the currency referenced in input and returns input with the
// reference removed.
func (t *CurrencyTable) Lookup(input string) (Currency, string, bool) {
	for _, c := range t.entries {
		if c.Symbol != "" && strings.Contains(input, c.Symbol) {
			return c, strings.Replace(input, c.Symbol, " ", 1), true
		}
	}
	for _, c := range t.entries {
		re := t.codes[c.Code]
		if loc := re.FindStringSubmatchIndex(input); loc != nil {
			// loc[3] ends the leading separator, loc[4] starts the trailing one.
			return c, input[:loc[3]] + " " + input[loc[4]:], true
		}
	}
	for _, c := range t.entries {
		if c.Name != "" && strings.Contains(input, c.Name) {
			return c, strings.Replace(input, c.Name, " ", 1), true
		}
	}
	return Currency{}, "", false
}

// Convert recognizes a currency query and converts it to the base currency.
func (t *CurrencyTable) Convert(input string, arith *Arithmetic) (domain.Calculation, bool) {
	c, rest, ok := t.Lookup(input)
	if !ok {
		return domain.Calculation{}, false
	}
	amount, ok := extractAmount(strings.TrimSpace(rest), arith)
	if !ok {
		return domain.Calculation{}, false
	}

	return domain.Calculation{
		Kind:    domain.CalculationCurrency,
		Formula: fmt.Sprintf("%s%.2f", c.Symbol, amount),
		Result:  fmt.Sprintf("%s%.2f", t.base.Symbol, amount*c.RateToBase),
	}, true
}

// extractAmount reads the amount from what is left of a currency query.
// A remainder that is purely an arithmetic expression is evaluated;
// otherwise the first numeric literal is taken.
func extractAmount(rest string, arith *Arithmetic) (float64, bool) {
	if rest == "" {
		return 0, false
	}
	if arith != nil && amountExprPattern.MatchString(rest) && amountOperPattern.MatchString(rest) {
		if v, ok := arith.Value(rest); ok {
			return v, true
		}
	}
	lit := numberPattern.FindString(rest)
	if lit == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(lit, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
