package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driving"
)

// Ensure CalculatorSource satisfies the source contract.
var _ Source = (*CalculatorSource)(nil)

// calculatorIcon is the icon of every calculator result.
const calculatorIcon = "accessories-calculator"

// CalculatorSource turns a recognized compute query into a single result.
type CalculatorSource struct {
	engine driving.Calculator
}

// NewCalculatorSource creates a calculator source over engine.
func NewCalculatorSource(engine driving.Calculator) *CalculatorSource {
	return &CalculatorSource{engine: engine}
}

// Kind identifies the source.
func (s *CalculatorSource) Kind() domain.SourceKind {
	return domain.SourceCalculator
}

// Search returns one result holding the answer, or nothing.
func (s *CalculatorSource) Search(_ context.Context, query string) []domain.SearchResult {
	calc, ok := s.engine.Evaluate(query)
	if !ok {
		return nil
	}
	return []domain.SearchResult{{
		ID:             uuid.NewString(),
		Name:           calc.Result,
		Type:           domain.ResultCalculator,
		Category:       domain.CategoryCalculator,
		Icon:           calculatorIcon,
		Subtitle:       calc.Formula,
		RelevanceScore: 100,
	}}
}
