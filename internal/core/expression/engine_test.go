package expression

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

func TestEngine_Evaluate(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		input   string
		kind    domain.CalculationKind
		formula string
		result  string
	}{
		{"$50", domain.CalculationCurrency, "$50.00", "¥361.00"},
		{"50 usd", domain.CalculationCurrency, "$50.00", "¥361.00"},
		{"USD 1,000", domain.CalculationCurrency, "$1000.00", "¥7220.00"},
		{"$10 + 40", domain.CalculationCurrency, "$50.00", "¥361.00"},
		{"100美元", domain.CalculationCurrency, "$100.00", "¥722.00"},
		{"HK$100", domain.CalculationCurrency, "HK$100.00", "¥92.00"},
		{"€2", domain.CalculationCurrency, "€2.00", "¥15.70"},
		{"100 USD to CNY", domain.CalculationCurrency, "$100.00", "¥722.00"},
		{"$50 in rmb", domain.CalculationCurrency, "$50.00", "¥361.00"},
		{"convert $20", domain.CalculationCurrency, "$20.00", "¥144.40"},
		{"¥88", domain.CalculationCurrency, "¥88.00", "¥88.00"},
		{"爸爸的爸爸", domain.CalculationKinship, "爸爸的爸爸", "爷爷"},
		{"妈妈的爸爸", domain.CalculationKinship, "妈妈的爸爸", "外公"},
		{"爸的妈", domain.CalculationKinship, "爸的妈", "奶奶"},
		{"老公的妈妈是谁?", domain.CalculationKinship, "老公的妈妈", "婆婆"},
		{"我的妈妈", domain.CalculationKinship, "我的妈妈", "妈妈"},
		{"2 + 2", domain.CalculationArithmetic, "2 + 2", "4"},
		{"3*4", domain.CalculationArithmetic, "3×4", "12"},
		{"1/3", domain.CalculationArithmetic, "1÷3", "0.33333333"},
		{"1 / 4", domain.CalculationArithmetic, "1 ÷ 4", "0.25"},
		{"2^10", domain.CalculationArithmetic, "2^10", "1024"},
		{"10 % 3", domain.CalculationArithmetic, "10 % 3", "1"},
		{"200 * 15%", domain.CalculationArithmetic, "200 × 15%", "30"},
		{"sqrt(16)", domain.CalculationArithmetic, "sqrt(16)", "4"},
		{"pow(2, 3) + 1", domain.CalculationArithmetic, "pow(2, 3) + 1", "9"},
		{"sin(0)", domain.CalculationArithmetic, "sin(0)", "0"},
		{"2 × 3", domain.CalculationArithmetic, "2 × 3", "6"},
		{"pi * 2", domain.CalculationArithmetic, "pi × 2", "6.28318531"},
		{"2^64", domain.CalculationArithmetic, "2^64", "18446744073709551616"},
		{"7.5 % 2", domain.CalculationArithmetic, "7.5 % 2", "1.5"},
		{".5 + .25", domain.CalculationArithmetic, ".5 + .25", "0.75"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			calc, ok := e.Evaluate(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.kind, calc.Kind)
			assert.Equal(t, tt.formula, calc.Formula)
			assert.Equal(t, tt.result, calc.Result)
		})
	}
}

func TestEngine_LargeIntegers(t *testing.T) {
	e := NewEngine()

	calc, ok := e.Evaluate("9999999999 * 9999999999")
	require.True(t, ok)
	got, err := strconv.ParseFloat(calc.Result, 64)
	require.NoError(t, err)
	assert.InEpsilon(t, 9.999999998e19, got, 1e-12)

	calc, ok = e.Evaluate("-9223372036854775807 - 10")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(calc.Result, "-9223372036854775"), calc.Result)
}

func TestEngine_Evaluate_NoResult(t *testing.T) {
	e := NewEngine()

	inputs := []string{
		"",
		"   ",
		"qqqqq",
		"safari",
		"42",
		"pi",
		"$",
		"usd news",
		"的",
		"爸爸的",
		"猫的爸爸",
		"哥哥的外公",
		"1 / 0",
		"sqrt(-1)",
		"unknown(3)",
		"2 +",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, ok := e.Evaluate(in)
			assert.False(t, ok)
		})
	}
}

func TestEngine_PriorityOrder(t *testing.T) {
	e := NewEngine()

	// Currency wins over arithmetic when a symbol is present
	calc, ok := e.Evaluate("$2 * 3")
	require.True(t, ok)
	assert.Equal(t, domain.CalculationCurrency, calc.Kind)
	assert.Equal(t, "$6.00", calc.Formula)
}

func TestEngine_Deterministic(t *testing.T) {
	e := NewEngine()
	first, ok := e.Evaluate("1/7")
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		again, ok := e.Evaluate("1/7")
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4, "4"},
		{0.1 + 0.2, "0.3"},
		{-0.000000001, "0"},
		{1.5, "1.5"},
		{123456789.123456789, "123456789.12345679"},
		{-2.25, "-2.25"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestCurrencyTable_Lookup(t *testing.T) {
	table := DefaultCurrencies()

	c, rest, ok := table.Lookup("JP¥500")
	require.True(t, ok)
	assert.Equal(t, "JPY", c.Code)
	assert.Equal(t, "500", trimSpaces(rest))

	c, _, ok = table.Lookup("20 gbp")
	require.True(t, ok)
	assert.Equal(t, "GBP", c.Code)

	_, _, ok = table.Lookup("thousand")
	assert.False(t, ok)

	assert.Equal(t, "CNY", table.Base().Code)
}

func TestKinshipGraph_CustomTable(t *testing.T) {
	g := NewKinshipGraph(map[string]map[string]string{
		"parent": {self: "parent", "parent": "grandparent"},
	}, map[string]string{"mum": "parent"})

	calc, ok := g.Resolve("mum的parent")
	require.True(t, ok)
	assert.Equal(t, "grandparent", calc.Result)

	_, ok = g.Resolve("parent的parent的parent")
	assert.False(t, ok)
}

func trimSpaces(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r != ' ' {
			out = append(out, r)
		}
	}
	return string(out)
}
