package main

import (
	"encoding/json"
	"fmt"

	"github.com/GreyStekl0/DotCalc/internal"
	"github.com/spf13/cobra"
)

func NewLogCmd(logUC *internal.LogUseCase) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show memory change history",
		Long:  `Show the commits the memory store recorded for every change.`,
		Args:  cobra.NoArgs,
		RunE:  makeLogRunner(logUC),
	}

	cmd.Flags().IntP("number", "n", 10, "Limit number of commits")
	cmd.Flags().Bool("oneline", false, "Show each commit on one line")
	return cmd
}

func makeLogRunner(logUC *internal.LogUseCase) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("number")
		oneline, _ := cmd.Flags().GetBool("oneline")
		scopeHint, _ := cmd.Flags().GetString("scope")
		asJSON, _ := cmd.Flags().GetBool("json")

		out, err := logUC.Execute(cmd.Context(), internal.LogInput{
			Limit: limit, Scope: scopeHint,
		})
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out.Commits)
		}

		for _, c := range out.Commits {
			if oneline {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", shortHash(c.Hash), c.Message)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "commit %s\n", c.Hash)
			fmt.Fprintf(cmd.OutOrStdout(), "Author: %s\n", c.Author)
			fmt.Fprintf(cmd.OutOrStdout(), "Date:   %s\n\n", c.Timestamp.Format("Mon Jan 2 15:04:05 2006 -0700"))
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n\n", c.Message)
		}
		return nil
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
