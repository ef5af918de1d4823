package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

var calcJSON bool

var calcCmd = &cobra.Command{
	Use:   "calc [expression]",
	Short: "Evaluate a calculation",
	Long: `Evaluates a currency conversion, kinship chain or arithmetic expression.

Examples:
  launchpad calc 100 usd to eur
  launchpad calc 爸爸的妈妈
  launchpad calc "sqrt(2) * 3"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "output the calculation as JSON")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	if calculator == nil {
		return errors.New("calculator not configured")
	}

	input := strings.Join(args, " ")
	calc, ok := calculator.Evaluate(input)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrNoExpression, input)
	}

	if calcJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]string{
			"kind":    string(calc.Kind),
			"formula": calc.Formula,
			"result":  calc.Result,
		})
	}
	cmd.Printf("%s = %s\n", calc.Formula, calc.Result)
	return nil
}
