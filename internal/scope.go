package internal

import (
	"os"
	"path/filepath"
)

// DataDirName is the per-scope directory holding config and the memory store.
const DataDirName = ".dotcalc"

type ScopeType string

const (
	ScopeGlobal  ScopeType = "global"
	ScopeProject ScopeType = "project"
)

type Scope struct {
	Type     ScopeType
	Path     string // directory containing DataPath
	DataPath string // .dotcalc directory path
}

func (s Scope) ConfigPath() string {
	return filepath.Join(s.DataPath, "config.yaml")
}

// StorePath is the git worktree of the memory store.
func (s Scope) StorePath() string {
	return filepath.Join(s.DataPath, "memory")
}

type ScopeResolver struct {
	homeDir string
}

func NewScopeResolver() *ScopeResolver {
	home, _ := os.UserHomeDir()
	return &ScopeResolver{homeDir: home}
}

// NewScopeResolverAt uses home in place of the user's home directory.
func NewScopeResolverAt(home string) *ScopeResolver {
	return &ScopeResolver{homeDir: home}
}

func (r *ScopeResolver) Global() Scope {
	return Scope{
		Type:     ScopeGlobal,
		Path:     r.homeDir,
		DataPath: filepath.Join(r.homeDir, DataDirName),
	}
}

func (r *ScopeResolver) Project() (Scope, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return Scope{}, false
	}
	return r.findProjectScope(cwd)
}

func (r *ScopeResolver) findProjectScope(dir string) (Scope, bool) {
	for {
		dataPath := filepath.Join(dir, DataDirName)
		info, err := os.Stat(dataPath)
		if err == nil && info.IsDir() && dir != r.homeDir {
			return Scope{Type: ScopeProject, Path: dir, DataPath: dataPath}, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Scope{}, false
		}
		dir = parent
	}
}

// ProjectAt returns the project scope rooted at dir, whether or not it has
// been initialized.
func (r *ScopeResolver) ProjectAt(dir string) Scope {
	return Scope{Type: ScopeProject, Path: dir, DataPath: filepath.Join(dir, DataDirName)}
}

func (r *ScopeResolver) Resolve(explicit string) Scope {
	if explicit == string(ScopeGlobal) {
		return r.Global()
	}
	if scope, ok := r.Project(); ok {
		return scope
	}
	return r.Global()
}

// Cascade lists the scopes by priority, project first.
func (r *ScopeResolver) Cascade() []Scope {
	scopes := []Scope{}
	if scope, ok := r.Project(); ok {
		scopes = append(scopes, scope)
	}
	scopes = append(scopes, r.Global())
	return scopes
}
