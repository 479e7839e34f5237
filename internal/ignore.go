package internal

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const GitignoreFilename = ".gitignore"

var errNoWorkTree = errors.New("not a git work tree")

// FindWorkTree walks up from dir to the nearest directory holding a .git
// entry and returns that directory.
func FindWorkTree(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errNoWorkTree
		}
		dir = parent
	}
}

// EnsureIgnored keeps a project's data directory out of the enclosing git
// work tree by appending it to the work tree's .gitignore. It reports whether
// the file was changed; scopes outside a work tree are left alone.
func EnsureIgnored(scope Scope) (bool, error) {
	root, err := FindWorkTree(scope.Path)
	if errors.Is(err, errNoWorkTree) {
		return false, nil
	}

	rel, err := filepath.Rel(root, scope.DataPath)
	if err != nil {
		return false, fmt.Errorf("relative data path: %w", err)
	}

	ignorePath := filepath.Join(root, GitignoreFilename)
	patterns, err := parseIgnoreFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read %s: %w", GitignoreFilename, err)
	}

	if matchDir(patterns, strings.Split(rel, string(filepath.Separator))) {
		return false, nil
	}

	if err := appendLine(ignorePath, "/"+filepath.ToSlash(rel)+"/"); err != nil {
		return false, fmt.Errorf("update %s: %w", GitignoreFilename, err)
	}
	return true, nil
}

func matchDir(patterns []gitignore.Pattern, parts []string) bool {
	ignored := false
	for _, p := range patterns {
		switch p.Match(parts, true) {
		case gitignore.Exclude:
			ignored = true
		case gitignore.Include:
			ignored = false
		}
	}
	return ignored
}

func appendLine(path, line string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		line = "\n" + line
	}
	_, err = f.WriteString(line + "\n")
	return err
}

func parseIgnoreFile(path string) ([]gitignore.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return patterns, nil
}
