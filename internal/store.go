package internal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// RepositoryOpener creates the backing repository on first use.
type RepositoryOpener func(ctx context.Context) (SlotRepository, error)

// MemoryStore serializes all access to a SlotRepository. Every public method
// holds the same lock for its whole duration, including lazy initialization.
//
// Inserting a new top slot is two calls, IncrementOrderForAll then Insert with
// Order 0. No transaction spans them.
type MemoryStore struct {
	mu     sync.Mutex
	open   RepositoryOpener
	repo   SlotRepository
	logger *slog.Logger
}

func NewMemoryStore(open RepositoryOpener, logger *slog.Logger) *MemoryStore {
	return &MemoryStore{
		open:   open,
		logger: orDiscard(logger),
	}
}

// NewGitMemoryStore opens a git-backed store rooted at dir.
func NewGitMemoryStore(dir string, author Author, logger *slog.Logger) *MemoryStore {
	return NewMemoryStore(func(ctx context.Context) (SlotRepository, error) {
		return OpenGitSlotRepository(dir, author)
	}, logger)
}

// repositoryLocked must be called with mu held.
func (s *MemoryStore) repositoryLocked(ctx context.Context) (SlotRepository, error) {
	if s.repo != nil {
		return s.repo, nil
	}

	repo, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := repo.Init(ctx); err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	s.logger.Debug("memory store initialized")
	s.repo = repo
	return repo, nil
}

func (s *MemoryStore) GetAll(ctx context.Context) ([]MemorySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, err := s.repositoryLocked(ctx)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

func (s *MemoryStore) GetByID(ctx context.Context, id string) (*MemorySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, err := s.repositoryLocked(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

// IncrementOrderForAll shifts every slot down by one position and returns
// the number of slots moved.
func (s *MemoryStore) IncrementOrderForAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, err := s.repositoryLocked(ctx)
	if err != nil {
		return 0, err
	}
	return repo.IncrementOrder(ctx)
}

func (s *MemoryStore) Insert(ctx context.Context, slot *MemorySlot) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, err := s.repositoryLocked(ctx)
	if err != nil {
		return 0, err
	}
	return repo.Insert(ctx, slot)
}

func (s *MemoryStore) Update(ctx context.Context, slot MemorySlot) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, err := s.repositoryLocked(ctx)
	if err != nil {
		return 0, err
	}
	return repo.Update(ctx, slot)
}

func (s *MemoryStore) Delete(ctx context.Context, slot MemorySlot) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, err := s.repositoryLocked(ctx)
	if err != nil {
		return 0, err
	}
	return repo.Delete(ctx, slot.ID)
}

func (s *MemoryStore) DeleteAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, err := s.repositoryLocked(ctx)
	if err != nil {
		return 0, err
	}
	return repo.DeleteAll(ctx)
}

// Log returns the most recent store commits, newest first.
func (s *MemoryStore) Log(ctx context.Context, limit int) ([]*Commit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, err := s.repositoryLocked(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Log(ctx, limit)
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
