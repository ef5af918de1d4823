package domain

// CalculationKind names the recognizer that produced a Calculation.
type CalculationKind string

// Recognizers, in evaluation priority order.
const (
	CalculationCurrency   CalculationKind = "currency"
	CalculationKinship    CalculationKind = "kinship"
	CalculationArithmetic CalculationKind = "arithmetic"
)

// Calculation is the result of evaluating a compute query.
type Calculation struct {
	// Kind is the recognizer that accepted the input.
	Kind CalculationKind

	// Formula echoes the recognized input in display notation.
	Formula string

	// Result is the formatted answer.
	Result string
}
