package main

import (
	"encoding/json"
	"fmt"

	"github.com/GreyStekl0/DotCalc/internal"
	"github.com/spf13/cobra"
)

func NewEvalCmd(locale localeProvider, memory memoryProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <keys...>",
		Short: "Press a sequence of calculator keys",
		Long: `Run key presses through a fresh calculator and print the display.

Keys are digits, the decimal separator, operators (+ - * / x :), = and the
named keys C, CE, BS, NEG, %, SQR, SQRT and INV. Runs of digits are split
into single presses, so "12 + 3 =" works.`,
		Example: `  calc eval 12 + 3 =
  calc eval 9 SQRT
  calc --locale ru-RU eval 1 , 5 x 2 =`,
		Args: cobra.MinimumNArgs(1),
		RunE: makeEvalRunner(locale, memory),
	}

	cmd.Flags().Bool("history", false, "Also print the history of completed calculations")
	cmd.Flags().Bool("store", false, "Store the final display value in memory (MS)")
	return cmd
}

func makeEvalRunner(locale localeProvider, memory memoryProvider) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		showHistory, _ := cmd.Flags().GetBool("history")
		store, _ := cmd.Flags().GetBool("store")
		asJSON, _ := cmd.Flags().GetBool("json")

		loc, err := locale(cmd)
		if err != nil {
			return err
		}

		out, err := internal.NewEvaluateUseCase(loc).Execute(cmd.Context(), internal.EvaluateInput{Keys: args})
		if err != nil {
			return fmt.Errorf("evaluate: %w", err)
		}

		if store {
			if err := storeDisplay(cmd, memory, loc, out.Display); err != nil {
				return err
			}
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		if out.Expression != "" {
			fmt.Fprintln(cmd.OutOrStdout(), out.Expression)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.Display)

		if showHistory {
			fmt.Fprintln(cmd.OutOrStdout())
			for _, item := range out.History {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", item.Expression, item.Result)
			}
		}
		return nil
	}
}

func storeDisplay(cmd *cobra.Command, memory memoryProvider, loc internal.Locale, display string) error {
	value, ok := loc.Parse(display)
	if !ok {
		return fmt.Errorf("store %q: %w", display, internal.ErrInvalidValue)
	}

	svc, err := memory(cmd)
	if err != nil {
		return err
	}
	if err := svc.Store(cmd.Context(), value); err != nil {
		return fmt.Errorf("store value: %w", err)
	}
	return nil
}
