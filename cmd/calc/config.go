package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/GreyStekl0/DotCalc/internal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewConfigCmd(resolver *internal.ScopeResolver) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration after merging the project and global config files
and DOTCALC_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: makeConfigRunner(resolver),
	}

	cmd.AddCommand(newConfigSetCmd(resolver))
	return cmd
}

func makeConfigRunner(resolver *internal.ScopeResolver) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		scopeHint, _ := cmd.Flags().GetString("scope")
		asJSON, _ := cmd.Flags().GetBool("json")

		scopes := resolver.Cascade()
		if scopeHint == string(internal.ScopeGlobal) {
			scopes = []internal.Scope{resolver.Global()}
		}

		cfg, err := internal.LoadConfig(scopes...)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		return enc.Close()
	}
}

func newConfigSetCmd(resolver *internal.ScopeResolver) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting in the scope's config file",
		Long: `Change one setting in the config file of the selected scope.

Keys: locale, decimal_separator, author.name, author.email, log_level.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scopeHint, _ := cmd.Flags().GetString("scope")
			scope := resolver.Resolve(scopeHint)

			if _, err := os.Stat(scope.DataPath); os.IsNotExist(err) {
				return fmt.Errorf("%w: run 'calc init' first (%s)", internal.ErrNotInitialized, scope.DataPath)
			}

			cfg, err := internal.LoadConfig(scope)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if err := setConfigValue(cfg, args[0], args[1]); err != nil {
				return err
			}

			if err := internal.SaveConfig(scope, cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], args[1], scope.ConfigPath())
			return nil
		},
	}
}

func setConfigValue(cfg *internal.Config, key, value string) error {
	switch key {
	case "locale":
		if _, err := internal.NewLocale(value); err != nil {
			return err
		}
		cfg.Locale = value
	case "decimal_separator":
		if value != "." && value != "," {
			return fmt.Errorf("decimal separator must be \".\" or \",\", got %q", value)
		}
		cfg.DecimalSeparator = value
	case "author.name":
		cfg.Author.Name = value
	case "author.email":
		cfg.Author.Email = value
	case "log_level":
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("invalid log level %q", value)
		}
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
