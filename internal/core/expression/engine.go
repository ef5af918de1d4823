package expression

import (
	"strings"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// recognizer evaluates input or declines it.
type recognizer func(input string) (domain.Calculation, bool)

// Engine evaluates compute queries. It is read-only after construction
// and safe for concurrent use.
type Engine struct {
	currencies *CurrencyTable
	kinship    *KinshipGraph
	arithmetic *Arithmetic
	chain      []recognizer
}

// NewEngine creates an engine with the built-in currency and kinship tables.
func NewEngine() *Engine {
	return NewEngineWith(DefaultCurrencies(), DefaultKinshipGraph())
}

// NewEngineWith creates an engine over the given tables.
func NewEngineWith(currencies *CurrencyTable, kinship *KinshipGraph) *Engine {
	e := &Engine{
		currencies: currencies,
		kinship:    kinship,
		arithmetic: NewArithmetic(),
	}
	e.chain = []recognizer{e.currency, e.kin, e.arith}
	return e
}

// Evaluate returns the calculation for input, or false when nothing recognizes it.
func (e *Engine) Evaluate(input string) (domain.Calculation, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.Calculation{}, false
	}
	for _, r := range e.chain {
		if calc, ok := r(input); ok {
			return calc, true
		}
	}
	return domain.Calculation{}, false
}

func (e *Engine) currency(input string) (domain.Calculation, bool) {
	return e.currencies.Convert(input, e.arithmetic)
}

func (e *Engine) kin(input string) (domain.Calculation, bool) {
	return e.kinship.Resolve(input)
}

func (e *Engine) arith(input string) (domain.Calculation, bool) {
	return e.arithmetic.Evaluate(input)
}
