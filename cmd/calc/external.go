package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const externalPrefix = "calc-"

func findExternal(name string) (string, error) {
	binary := externalPrefix + name
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("unknown command %q: %s not found in PATH", name, binary)
	}
	return path, nil
}

// listExternalCommands returns the calc-* executables on PATH, first match
// wins.
func listExternalCommands() []string {
	var commands []string
	seen := make(map[string]bool)

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := externalName(dir, entry)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			commands = append(commands, name)
		}
	}
	return commands
}

func externalName(dir string, entry os.DirEntry) string {
	if entry.IsDir() || !strings.HasPrefix(entry.Name(), externalPrefix) {
		return ""
	}

	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	if err != nil || info.Mode()&0111 == 0 {
		return ""
	}

	return strings.TrimPrefix(entry.Name(), externalPrefix)
}

func executeExternal(ctx context.Context, name string, args []string, env []string) error {
	binaryPath, err := findExternal(name)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, binaryPath, args...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// externalEnv tells plugins where calc and its data live.
func externalEnv(version, dataDir string) []string {
	calcBin, _ := os.Executable()

	env := os.Environ()
	env = append(env,
		"CALC_VERSION="+version,
		"CALC_BIN="+calcBin,
		"CALC_DATA="+dataDir,
	)
	return env
}
