package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBranch = "main"
	DefaultAuthor = "dotcalc"
	DefaultEmail  = "dotcalc@local"

	slotsDir = "slots"
	slotExt  = ".yaml"
)

var ErrAlreadyExists = errors.New("memory slot already exists")

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

type Author struct {
	Name  string `yaml:"name" json:"name" mapstructure:"name"`
	Email string `yaml:"email" json:"email" mapstructure:"email"`
}

// GitSlotRepository keeps every slot as a YAML file in a git worktree and
// commits once per mutating call.
type GitSlotRepository struct {
	repo     *git.Repository
	worktree *git.Worktree
	fs       billy.Filesystem
	author   Author
}

var _ SlotRepository = (*GitSlotRepository)(nil)

// OpenGitSlotRepository opens the store at dir, initializing a repository
// there if none exists.
func OpenGitSlotRepository(dir string, author Author) (*GitSlotRepository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	st := filesystem.NewStorage(osfs.New(filepath.Join(dir, ".git")), cache.NewObjectLRUDefault())
	wt := osfs.New(dir)

	repo, err := git.Open(st, wt)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = initRepository(st, wt)
	}
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	return newGitSlotRepository(repo, author)
}

// NewInMemoryGitSlotRepository returns a store that lives only in memory.
func NewInMemoryGitSlotRepository(author Author) (*GitSlotRepository, error) {
	repo, err := initRepository(memory.NewStorage(), memfs.New())
	if err != nil {
		return nil, err
	}
	return newGitSlotRepository(repo, author)
}

func initRepository(s storage.Storer, wt billy.Filesystem) (*git.Repository, error) {
	repo, err := git.Init(s, wt)
	if err != nil {
		return nil, fmt.Errorf("init repository: %w", err)
	}

	cfg, err := repo.Config()
	if err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}
	cfg.Init.DefaultBranch = DefaultBranch
	if err := repo.SetConfig(cfg); err != nil {
		return nil, fmt.Errorf("set config: %w", err)
	}

	return repo, nil
}

func newGitSlotRepository(repo *git.Repository, author Author) (*GitSlotRepository, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("get worktree: %w", err)
	}

	if author.Name == "" {
		author.Name = DefaultAuthor
	}
	if author.Email == "" {
		author.Email = DefaultEmail
	}

	return &GitSlotRepository{
		repo:     repo,
		worktree: worktree,
		fs:       worktree.Filesystem,
		author:   author,
	}, nil
}

func (r *GitSlotRepository) Init(ctx context.Context) error {
	if err := r.fs.MkdirAll(slotsDir, 0755); err != nil {
		return fmt.Errorf("create slots directory: %w", err)
	}
	return nil
}

func (r *GitSlotRepository) List(ctx context.Context) ([]MemorySlot, error) {
	infos, err := r.fs.ReadDir(slotsDir)
	if os.IsNotExist(err) {
		// git drops empty directories, so an emptied store has no slots dir
		return []MemorySlot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slots directory: %w", err)
	}

	slots := make([]MemorySlot, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), slotExt) {
			continue
		}

		slot, err := r.readSlot(path.Join(slotsDir, info.Name()))
		if err != nil {
			return nil, err
		}
		slots = append(slots, *slot)
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Order != slots[j].Order {
			return slots[i].Order < slots[j].Order
		}
		if !slots[i].CreatedAt.Equal(slots[j].CreatedAt) {
			return slots[i].CreatedAt.After(slots[j].CreatedAt)
		}
		return slots[i].ID < slots[j].ID
	})

	return slots, nil
}

func (r *GitSlotRepository) Get(ctx context.Context, id string) (*MemorySlot, error) {
	p, err := slotPath(id)
	if err != nil {
		return nil, err
	}

	exists, err := r.exists(p)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	return r.readSlot(p)
}

func (r *GitSlotRepository) Insert(ctx context.Context, slot *MemorySlot) (int, error) {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}

	p, err := slotPath(slot.ID)
	if err != nil {
		return 0, err
	}

	exists, err := r.exists(p)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: %s", ErrAlreadyExists, slot.ID)
	}

	if err := r.writeSlot(p, *slot); err != nil {
		return 0, err
	}
	if err := r.commit("insert: " + slot.ID); err != nil {
		return 0, err
	}

	return 1, nil
}

func (r *GitSlotRepository) Update(ctx context.Context, slot MemorySlot) (int, error) {
	p, err := slotPath(slot.ID)
	if err != nil {
		return 0, err
	}

	exists, err := r.exists(p)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}

	if err := r.writeSlot(p, slot); err != nil {
		return 0, err
	}
	if err := r.commit("update: " + slot.ID); err != nil {
		return 0, err
	}

	return 1, nil
}

func (r *GitSlotRepository) Delete(ctx context.Context, id string) (int, error) {
	p, err := slotPath(id)
	if err != nil {
		return 0, err
	}

	exists, err := r.exists(p)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}

	if _, err := r.worktree.Remove(p); err != nil {
		return 0, fmt.Errorf("remove slot: %w", err)
	}
	if err := r.commit("delete: " + id); err != nil {
		return 0, err
	}

	return 1, nil
}

func (r *GitSlotRepository) DeleteAll(ctx context.Context) (int, error) {
	slots, err := r.List(ctx)
	if err != nil {
		return 0, err
	}

	for _, slot := range slots {
		p, _ := slotPath(slot.ID)
		if _, err := r.worktree.Remove(p); err != nil {
			return 0, fmt.Errorf("remove slot: %w", err)
		}
	}

	if len(slots) == 0 {
		return 0, nil
	}
	if err := r.commit("delete all"); err != nil {
		return 0, err
	}

	return len(slots), nil
}

func (r *GitSlotRepository) IncrementOrder(ctx context.Context) (int, error) {
	slots, err := r.List(ctx)
	if err != nil {
		return 0, err
	}

	for _, slot := range slots {
		slot.Order++
		p, _ := slotPath(slot.ID)
		if err := r.writeSlot(p, slot); err != nil {
			return 0, err
		}
	}

	if len(slots) == 0 {
		return 0, nil
	}
	if err := r.commit("reorder"); err != nil {
		return 0, err
	}

	return len(slots), nil
}

func (r *GitSlotRepository) Log(ctx context.Context, limit int) ([]*Commit, error) {
	iter, err := r.repo.Log(&git.LogOptions{})
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	defer iter.Close()

	var commits []*Commit
	count := 0

	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && count >= limit {
			return io.EOF
		}
		commits = append(commits, toCommit(c))
		count++
		return nil
	})
	if err != nil && err != io.EOF {
		return nil, err
	}

	return commits, nil
}

// helpers

func slotPath(id string) (string, error) {
	if !idPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, id)
	}
	return path.Join(slotsDir, id+slotExt), nil
}

func (r *GitSlotRepository) exists(p string) (bool, error) {
	_, err := r.fs.Stat(p)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat slot: %w", err)
	}
	return true, nil
}

func (r *GitSlotRepository) readSlot(p string) (*MemorySlot, error) {
	f, err := r.fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open slot: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read slot: %w", err)
	}

	var slot MemorySlot
	if err := yaml.Unmarshal(data, &slot); err != nil {
		return nil, fmt.Errorf("parse slot %s: %w", p, err)
	}
	return &slot, nil
}

func (r *GitSlotRepository) writeSlot(p string, slot MemorySlot) error {
	data, err := yaml.Marshal(slot)
	if err != nil {
		return fmt.Errorf("marshal slot: %w", err)
	}

	if err := util.WriteFile(r.fs, p, data, 0644); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}

	if _, err := r.worktree.Add(p); err != nil {
		return fmt.Errorf("stage slot: %w", err)
	}
	return nil
}

func (r *GitSlotRepository) commit(message string) error {
	status, err := r.worktree.Status()
	if err != nil {
		return fmt.Errorf("get status: %w", err)
	}
	if status.IsClean() {
		return nil
	}

	_, err = r.worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  r.author.Name,
			Email: r.author.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func toCommit(c *object.Commit) *Commit {
	var parents []string
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}

	return &Commit{
		Hash:      c.Hash.String(),
		Message:   strings.TrimSpace(c.Message),
		Author:    c.Author.Name,
		Timestamp: c.Author.When,
		Parents:   parents,
	}
}
