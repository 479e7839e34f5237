package main

import (
	"encoding/json"
	"fmt"

	"github.com/GreyStekl0/DotCalc/internal"
	"github.com/spf13/cobra"
)

func NewMemCmd(memory memoryProvider, logUC *internal.LogUseCase, resolver *internal.ScopeResolver) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mem",
		Short: "Work with the calculator memory",
		Long: `Inspect and change the ordered calculator memory.

Slot 0 is the top slot: MS pushes a new value there, M+ and M- change it and
MR reads it. Negative values need a "--" before them.`,
		Example: `  calc mem store 42
  calc mem add -- -1.5
  calc mem list --json`,
	}

	cmd.AddCommand(
		newMemListCmd(memory),
		newMemStoreCmd(memory),
		newMemAdjustCmd(memory, "add", "Add a value to the top slot (M+)", 1),
		newMemAdjustCmd(memory, "sub", "Subtract a value from the top slot (M-)", -1),
		newMemDelCmd(memory),
		newMemClearCmd(memory),
		newMemRecallCmd(memory),
		NewLogCmd(logUC),
		NewWatchCmd(resolver, memory),
	)
	return cmd
}

func newMemListCmd(memory memoryProvider) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List memory slots, top first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := memory(cmd)
			if err != nil {
				return err
			}
			return printItems(cmd, svc.Items())
		},
	}
}

func newMemStoreCmd(memory memoryProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "store <value>",
		Short: "Store a value as the new top slot (MS)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := memory(cmd)
			if err != nil {
				return err
			}

			value, err := parseValue(svc.Locale(), args[0])
			if err != nil {
				return err
			}

			if err := svc.Store(cmd.Context(), value); err != nil {
				return fmt.Errorf("store value: %w", err)
			}
			return printItems(cmd, svc.Items())
		},
	}
}

func newMemAdjustCmd(memory memoryProvider, use, short string, sign float64) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <value>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")

			svc, err := memory(cmd)
			if err != nil {
				return err
			}

			value, err := parseValue(svc.Locale(), args[0])
			if err != nil {
				return err
			}

			switch {
			case id != "" && sign > 0:
				err = svc.AddAt(cmd.Context(), id, value)
			case id != "":
				err = svc.SubtractAt(cmd.Context(), id, value)
			case sign > 0:
				err = svc.Add(cmd.Context(), value)
			default:
				err = svc.Subtract(cmd.Context(), value)
			}
			if err != nil {
				return fmt.Errorf("%s value: %w", use, err)
			}
			return printItems(cmd, svc.Items())
		},
	}

	cmd.Flags().String("id", "", "Target a specific slot instead of the top one")
	return cmd
}

func newMemDelCmd(memory memoryProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "del <id>",
		Short: "Delete one memory slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := memory(cmd)
			if err != nil {
				return err
			}

			if err := svc.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete slot: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newMemClearCmd(memory memoryProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every memory slot (MC)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := memory(cmd)
			if err != nil {
				return err
			}

			n, err := svc.Clear(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d slot(s)\n", n)
			return nil
		},
	}
}

func newMemRecallCmd(memory memoryProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "recall",
		Short: "Print the top slot value (MR)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := memory(cmd)
			if err != nil {
				return err
			}

			value, ok := svc.Recall()
			if !ok {
				return fmt.Errorf("recall: memory is empty")
			}

			fmt.Fprintln(cmd.OutOrStdout(), svc.Locale().Format(value))
			return nil
		},
	}
}

func parseValue(loc internal.Locale, text string) (float64, error) {
	value, ok := loc.Parse(text)
	if !ok {
		return 0, fmt.Errorf("parse %q: %w", text, internal.ErrInvalidValue)
	}
	return value, nil
}

func printItems(cmd *cobra.Command, items []internal.MemoryItem) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Memory is empty")
		return nil
	}

	for _, item := range items {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", item.Order, item.DisplayValue, item.ID)
	}
	return nil
}
