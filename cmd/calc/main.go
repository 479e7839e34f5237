package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/GreyStekl0/DotCalc/internal"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx := context.Background()

	a := newApp(internal.NewScopeResolver(), os.Stderr)
	if tryExternalCommand(ctx, a) {
		return
	}

	rootCmd := NewRootCmd(version, a)
	if err := fang.Execute(ctx, rootCmd); err != nil {
		os.Exit(1)
	}
}

func tryExternalCommand(ctx context.Context, a *app) bool {
	if len(os.Args) < 2 {
		return false
	}

	name := os.Args[1]
	if name == "" || name[0] == '-' {
		return false
	}

	if _, err := findExternal(name); err != nil {
		return false
	}

	env := externalEnv(version, a.resolver.Resolve("").DataPath)
	if err := executeExternal(ctx, name, os.Args[2:], env); err != nil {
		fmt.Fprintf(os.Stderr, "calc %s: %v\n", name, err)
		os.Exit(1)
	}

	return true
}

// memoryProvider opens the memory service for the scope selected by cmd's
// flags, with its persisted slots loaded.
type memoryProvider func(cmd *cobra.Command) (*internal.MemoryService, error)

// localeProvider returns the locale selected by config and the --locale flag.
type localeProvider func(cmd *cobra.Command) (internal.Locale, error)

type app struct {
	resolver *internal.ScopeResolver
	level    *slog.LevelVar
	logger   *slog.Logger

	mu     sync.Mutex
	stores map[string]*internal.MemoryStore
}

func newApp(resolver *internal.ScopeResolver, logOut io.Writer) *app {
	level := new(slog.LevelVar)
	return &app{
		resolver: resolver,
		level:    level,
		logger:   slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})),
		stores:   make(map[string]*internal.MemoryStore),
	}
}

// loadConfig merges the project and global config, or only the global one
// when the global scope is forced.
func (a *app) loadConfig(scopeHint string) (*internal.Config, error) {
	if scopeHint == string(internal.ScopeGlobal) {
		return internal.LoadConfig(a.resolver.Global())
	}
	return internal.LoadConfig(a.resolver.Cascade()...)
}

func (a *app) locale(cmd *cobra.Command) (internal.Locale, error) {
	scopeHint, _ := cmd.Flags().GetString("scope")
	override, _ := cmd.Flags().GetString("locale")

	cfg, err := a.loadConfig(scopeHint)
	if err != nil {
		return internal.Locale{}, fmt.Errorf("load config: %w", err)
	}
	if override != "" {
		cfg.Locale = override
		cfg.DecimalSeparator = ""
	}
	return cfg.ResolveLocale()
}

// storeFor returns the cached store of an initialized scope.
func (a *app) storeFor(scope internal.Scope) (*internal.MemoryStore, error) {
	if _, err := os.Stat(scope.DataPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: run 'calc init' first (%s)", internal.ErrNotInitialized, scope.DataPath)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if store, ok := a.stores[scope.StorePath()]; ok {
		return store, nil
	}

	cfg, err := a.loadConfig(string(scope.Type))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	store := internal.NewGitMemoryStore(scope.StorePath(), cfg.Author, a.logger)
	a.stores[scope.StorePath()] = store
	return store, nil
}

func (a *app) memory(cmd *cobra.Command) (*internal.MemoryService, error) {
	scopeHint, _ := cmd.Flags().GetString("scope")
	scope := a.resolver.Resolve(scopeHint)

	store, err := a.storeFor(scope)
	if err != nil {
		return nil, err
	}

	loc, err := a.locale(cmd)
	if err != nil {
		return nil, err
	}

	svc := internal.NewMemoryService(store, loc, a.logger)
	svc.Load(cmd.Context())
	return svc, nil
}

// applyLogLevel honours --verbose, then the configured level.
func (a *app) applyLogLevel(cmd *cobra.Command) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		a.level.Set(slog.LevelDebug)
		return
	}

	scopeHint, _ := cmd.Flags().GetString("scope")
	cfg, err := a.loadConfig(scopeHint)
	if err != nil {
		a.level.Set(slog.LevelInfo)
		return
	}
	a.level.Set(cfg.Level())
}
