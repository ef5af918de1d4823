package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

// defaultLimit caps search results when the caller gives no limit.
const defaultLimit = 10

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the text to search applications, shortcuts and calculations for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Files bool   `json:"files,omitempty" jsonschema:"also search the file index"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single launcher result.
type SearchResultOutput struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Path     string `json:"path,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Score    int    `json:"score"`
}

// CalculateInput is the input schema for the calculate tool.
type CalculateInput struct {
	Expression string `json:"expression" jsonschema:"a currency conversion, kinship chain or arithmetic expression"`
}

// CalculateOutput is the output schema for the calculate tool.
type CalculateOutput struct {
	Kind    string `json:"kind"`
	Formula string `json:"formula"`
	Result  string `json:"result"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search installed applications, shortcuts and inline calculations, optionally files",
	}, s.handleSearch)

	if s.ports.Calculator != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "calculate",
			Description: "Evaluate a currency conversion, kinship chain or arithmetic expression",
		}, s.handleCalculate)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var kinds []domain.SourceKind
	if input.Files {
		kinds = append(kinds, domain.SourceFile)
	}
	snapshot, err := s.ports.Launcher.Query(ctx, input.Query, kinds...)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	// Display order, not source order.
	results := domain.Flatten(snapshot.Categories)
	if len(results) > limit {
		results = results[:limit]
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			Name:     results[i].Name,
			Type:     results[i].Type.String(),
			Category: results[i].Category,
			Path:     results[i].Path,
			Subtitle: results[i].Subtitle,
			Score:    results[i].RelevanceScore,
		}
	}

	return nil, output, nil
}

// handleCalculate handles the calculate tool invocation.
func (s *Server) handleCalculate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CalculateInput,
) (*mcp.CallToolResult, CalculateOutput, error) {
	calc, ok := s.ports.Calculator.Evaluate(input.Expression)
	if !ok {
		return nil, CalculateOutput{}, fmt.Errorf("%w: %q", domain.ErrNoExpression, input.Expression)
	}
	return nil, CalculateOutput{
		Kind:    string(calc.Kind),
		Formula: calc.Formula,
		Result:  calc.Result,
	}, nil
}
