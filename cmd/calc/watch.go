package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GreyStekl0/DotCalc/internal"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func NewWatchCmd(resolver *internal.ScopeResolver, memory memoryProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the memory whenever it changes",
		Long:  `Watch the memory store and print the slots again after every change, including changes made by other calc processes.`,
		Args:  cobra.NoArgs,
		RunE:  makeWatchRunner(resolver, memory),
	}

	cmd.Flags().Duration("debounce", 300*time.Millisecond, "Debounce window for batching changes")
	return cmd
}

func makeWatchRunner(resolver *internal.ScopeResolver, memory memoryProvider) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		scopeHint, _ := cmd.Flags().GetString("scope")
		debounce, _ := cmd.Flags().GetDuration("debounce")

		scope := resolver.Resolve(scopeHint)
		if _, err := os.Stat(scope.DataPath); os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", internal.ErrNotInitialized, scope.DataPath)
		}

		if err := printMemory(cmd, memory); err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		storePath := scope.StorePath()
		if err := addWatchDirs(watcher, storePath); err != nil {
			return fmt.Errorf("add watch dirs: %w", err)
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes...\n", storePath)

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		pending := false

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if shouldIgnoreEvent(event, storePath) {
					continue
				}
				if event.Op&fsnotify.Create != 0 {
					_ = addWatchDirs(watcher, event.Name)
				}
				if !pending {
					timer.Reset(debounce)
					pending = true
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
			case <-timer.C:
				pending = false
				if err := printMemory(cmd, memory); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "reload memory: %v\n", err)
				}
			}
		}
	}
}

func printMemory(cmd *cobra.Command, memory memoryProvider) error {
	svc, err := memory(cmd)
	if err != nil {
		return err
	}
	return printItems(cmd, svc.Items())
}

// addWatchDirs watches root and every directory below it except .git.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

func shouldIgnoreEvent(event fsnotify.Event, storePath string) bool {
	if strings.HasPrefix(event.Name, filepath.Join(storePath, ".git")) {
		return true
	}

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return true
	}

	return false
}
