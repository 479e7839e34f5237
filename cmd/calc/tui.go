package main

import (
	"errors"
	"fmt"

	"github.com/GreyStekl0/DotCalc/internal"
	"github.com/GreyStekl0/DotCalc/internal/tui"
	"github.com/spf13/cobra"
)

func NewTUICmd(locale localeProvider, memory memoryProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive calculator",
		Long: `Start the interactive calculator. Memory keys work when the scope has been
initialized with 'calc init'; otherwise the calculator runs without memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := locale(cmd)
			if err != nil {
				return err
			}

			svc, err := memory(cmd)
			switch {
			case errors.Is(err, internal.ErrNotInitialized):
				svc = nil
			case err != nil:
				return err
			}

			if err := tui.Run(cmd.Context(), internal.NewEngine(loc), svc); err != nil {
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}
}
