package main

import (
	"fmt"
	"os"

	"github.com/GreyStekl0/DotCalc/internal"
	"github.com/spf13/cobra"
)

func NewInitCmd(resolver *internal.ScopeResolver) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a calculator data directory",
		Long:  `Initialize a .dotcalc directory with a config file and a git-backed memory store.`,
		RunE:  makeInitRunner(resolver),
	}

	cmd.Flags().Bool("global", false, "Initialize global scope (~/.dotcalc)")
	return cmd
}

func makeInitRunner(resolver *internal.ScopeResolver) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		isGlobal, _ := cmd.Flags().GetBool("global")
		localeTag, _ := cmd.Flags().GetString("locale")

		var scope internal.Scope
		if isGlobal {
			scope = resolver.Global()
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			scope = resolver.ProjectAt(cwd)
		}

		if _, err := os.Stat(scope.DataPath); err == nil {
			return fmt.Errorf("already initialized at %s", scope.DataPath)
		}

		cfg := internal.DefaultConfig()
		if localeTag != "" {
			if _, err := internal.NewLocale(localeTag); err != nil {
				return err
			}
			cfg.Locale = localeTag
		}

		if err := internal.SaveConfig(scope, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		store := internal.NewGitMemoryStore(scope.StorePath(), cfg.Author, nil)
		if _, err := store.GetAll(cmd.Context()); err != nil {
			return fmt.Errorf("init memory store: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized calculator data at %s\n", scope.DataPath)

		if scope.Type == internal.ScopeProject {
			changed, err := internal.EnsureIgnored(scope)
			if err != nil {
				return fmt.Errorf("ignore data directory: %w", err)
			}
			if changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", internal.DataDirName, internal.GitignoreFilename)
			}
		}
		return nil
	}
}
