package expression

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// functions are the named functions an arithmetic query may call.
var functions = map[string]func(args ...float64) (float64, error){
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"asin": unary(math.Asin),
	"acos": unary(math.Acos),
	"atan": unary(math.Atan),
	"sqrt": unary(math.Sqrt),
	"ln":   unary(math.Log),
	"log":  unary(math.Log10),
	"exp":  unary(math.Exp),
	"pow": func(args ...float64) (float64, error) {
		if len(args) != 2 {
			return 0, fmt.Errorf("pow takes 2 arguments, got %d", len(args))
		}
		return math.Pow(args[0], args[1]), nil
	},
}

// constants are the named values an arithmetic query may use.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

var (
	identPattern     = regexp.MustCompile(`[A-Za-z_]+`)
	callPattern      = regexp.MustCompile(`[A-Za-z_]+\s*\(`)
	percentPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%(\s*(?:$|[-+*/^)]))`)
	operandPattern   = regexp.MustCompile(`[\d)a-z]\s*(?:\*\*|[-+*/^%])\s*[-+(\d.a-z]`)
	thousandsPattern = regexp.MustCompile(`(\d),(\d{3})\b`)
	allowedPattern   = regexp.MustCompile(`^[\d\s.,+\-*/^%()A-Za-z_]+$`)
	literalPattern   = regexp.MustCompile(`\d*\.\d+|\d+`)
)

// modOperator is the env name the % operator is bound to.
const modOperator = "fmod"

// Arithmetic evaluates plain arithmetic with the functions and constants above.
type Arithmetic struct {
	env     map[string]any
	options []expr.Option
}

// NewArithmetic creates an evaluator.
func NewArithmetic() *Arithmetic {
	env := make(map[string]any, len(constants)+1)
	for name, v := range constants {
		env[name] = v
	}
	env[modOperator] = math.Mod

	opts := []expr.Option{expr.Env(env), expr.Operator("%", modOperator)}
	for name, fn := range functions {
		opts = append(opts, expr.Function(name, wrap(fn)))
	}
	return &Arithmetic{env: env, options: opts}
}

// Evaluate recognizes input as arithmetic and computes it.
func (a *Arithmetic) Evaluate(input string) (domain.Calculation, bool) {
	v, ok := a.Value(input)
	if !ok {
		return domain.Calculation{}, false
	}
	return domain.Calculation{
		Kind:    domain.CalculationArithmetic,
		Formula: displayFormula(input),
		Result:  FormatNumber(v),
	}, true
}

// Value computes input and returns the raw number.
func (a *Arithmetic) Value(input string) (float64, bool) {
	program, ok := a.normalize(input)
	if !ok {
		return 0, false
	}
	v, err := a.eval(program)
	return v, err == nil
}

// normalize returns the evaluation string for input, or false when input
// is not arithmetic.
func (a *Arithmetic) normalize(input string) (string, bool) {
	s := strings.TrimSpace(input)
	s = strings.NewReplacer("×", "*", "÷", "/", "π", "pi", "−", "-", "（", "(", "）", ")").Replace(s)
	s = stripThousands(s)
	if s == "" || !allowedPattern.MatchString(s) {
		return "", false
	}

	s = strings.ToLower(s)
	for _, ident := range identPattern.FindAllString(s, -1) {
		if _, ok := functions[ident]; ok {
			continue
		}
		if _, ok := constants[ident]; ok {
			continue
		}
		return "", false
	}

	hasCall := callPattern.MatchString(s)
	withPercent := percentPattern.ReplaceAllString(s, "($1/100)$2")
	hasPercent := withPercent != s
	if !hasCall && !hasPercent && !operandPattern.MatchString(s) {
		return "", false
	}
	return floatLiterals(withPercent), true
}

// floatLiterals rewrites every numeric literal as a float so integer
// operations cannot wrap around.
func floatLiterals(s string) string {
	return literalPattern.ReplaceAllStringFunc(s, func(lit string) string {
		switch {
		case strings.HasPrefix(lit, "."):
			return "0" + lit
		case strings.Contains(lit, "."):
			return lit
		default:
			return lit + ".0"
		}
	})
}

func (a *Arithmetic) eval(program string) (float64, error) {
	compiled, err := expr.Compile(program, a.options...)
	if err != nil {
		return 0, fmt.Errorf("compiling %q: %w", program, err)
	}
	out, err := expr.Run(compiled, a.env)
	if err != nil {
		return 0, fmt.Errorf("evaluating %q: %w", program, err)
	}
	v, ok := toFloat(out)
	if !ok {
		return 0, fmt.Errorf("%w: non-numeric result %T", domain.ErrNoExpression, out)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: result is not finite", domain.ErrNoExpression)
	}
	return v, nil
}

// stripThousands removes digit-group commas, leaving argument separators alone.
func stripThousands(s string) string {
	for {
		next := thousandsPattern.ReplaceAllString(s, "$1$2")
		if next == s {
			return s
		}
		s = next
	}
}

// displayFormula renders input with mathematical operator glyphs.
func displayFormula(input string) string {
	return strings.NewReplacer("*", "×", "/", "÷").Replace(strings.TrimSpace(input))
}

// FormatNumber renders v with at most 8 fractional digits and no trailing zeros.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func unary(fn func(float64) float64) func(args ...float64) (float64, error) {
	return func(args ...float64) (float64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		return fn(args[0]), nil
	}
}

// wrap adapts a float function to the expr calling convention.
func wrap(fn func(args ...float64) (float64, error)) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		args := make([]float64, len(params))
		for i, p := range params {
			v, ok := toFloat(p)
			if !ok {
				return nil, fmt.Errorf("argument %d is %T, not a number", i, p)
			}
			args[i] = v
		}
		return fn(args...)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
