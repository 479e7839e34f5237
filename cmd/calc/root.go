package main

import (
	"fmt"

	"github.com/GreyStekl0/DotCalc/internal"
	"github.com/spf13/cobra"
)

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "calc",
		Short:         "Calculator with a persistent memory",
		Long:          `A keyboard calculator with expression history and an ordered, git-backed memory.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	setHelpWithExternals(rootCmd)

	if a != nil {
		rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
			a.applyLogLevel(cmd)
		}
		addSubcommands(rootCmd, a)
	}

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("scope", "", "Target scope (global|project)")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("locale", "", "Number locale, e.g. en-US or ru-RU")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func addSubcommands(root *cobra.Command, a *app) {
	logUC := internal.NewLogUseCase(a.resolver, a.storeFor)

	root.AddCommand(
		NewInitCmd(a.resolver),
		NewEvalCmd(a.locale, a.memory),
		NewMemCmd(a.memory, logUC, a.resolver),
		NewConfigCmd(a.resolver),
		NewTUICmd(a.locale, a.memory),
	)
}

func setHelpWithExternals(cmd *cobra.Command) {
	defaultHelp := cmd.HelpFunc()

	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		defaultHelp(c, args)
		if c == c.Root() {
			printExternalCommands(c)
		}
	})
}

func printExternalCommands(cmd *cobra.Command) {
	externals := listExternalCommands()
	if len(externals) == 0 {
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nExternal commands (calc-*):")
	for _, name := range externals {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
	}
}
