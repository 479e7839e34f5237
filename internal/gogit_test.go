package internal

import (
	"context"
	"errors"
	"testing"
)

func setupGitRepo(t *testing.T) *GitSlotRepository {
	t.Helper()

	repo, err := NewInMemoryGitSlotRepository(Author{})
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return repo
}

func insertSlot(t *testing.T, repo SlotRepository, value float64, order int32) *MemorySlot {
	t.Helper()

	slot := NewMemorySlot(value)
	slot.Order = order
	n, err := repo.Insert(context.Background(), slot)
	if err != nil {
		t.Fatalf("insert %v: %v", value, err)
	}
	if n != 1 {
		t.Fatalf("insert %v affected %d rows, want 1", value, n)
	}
	return slot
}

func TestGitSlotRepositoryInsertAndGet(t *testing.T) {
	repo := setupGitRepo(t)
	ctx := context.Background()

	slot := insertSlot(t, repo, 4.5, 0)
	if slot.ID == "" {
		t.Fatal("expected insert to assign an id")
	}

	got, err := repo.Get(ctx, slot.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Value != 4.5 {
		t.Errorf("value = %v, want 4.5", got.Value)
	}
	if got.Order != 0 {
		t.Errorf("order = %d, want 0", got.Order)
	}
	if !got.CreatedAt.Equal(slot.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, slot.CreatedAt)
	}
}

func TestGitSlotRepositoryGetMissing(t *testing.T) {
	repo := setupGitRepo(t)
	ctx := context.Background()

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Get(ctx, "../escape"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestGitSlotRepositoryInsertDuplicate(t *testing.T) {
	repo := setupGitRepo(t)
	slot := insertSlot(t, repo, 1, 0)

	dup := NewMemorySlot(2)
	dup.ID = slot.ID
	if _, err := repo.Insert(context.Background(), dup); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGitSlotRepositoryListSortedByOrder(t *testing.T) {
	repo := setupGitRepo(t)

	insertSlot(t, repo, 30, 2)
	insertSlot(t, repo, 10, 0)
	insertSlot(t, repo, 20, 1)

	slots, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []float64{10, 20, 30}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, v := range want {
		if slots[i].Value != v || slots[i].Order != int32(i) {
			t.Errorf("slot %d = {value %v, order %d}, want {value %v, order %d}",
				i, slots[i].Value, slots[i].Order, v, i)
		}
	}
}

func TestGitSlotRepositoryUpdate(t *testing.T) {
	repo := setupGitRepo(t)
	ctx := context.Background()
	slot := insertSlot(t, repo, 1, 0)

	slot.Value = 9
	n, err := repo.Update(ctx, *slot)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 1 {
		t.Errorf("update affected %d rows, want 1", n)
	}

	got, _ := repo.Get(ctx, slot.ID)
	if got.Value != 9 {
		t.Errorf("value = %v, want 9", got.Value)
	}

	n, err = repo.Update(ctx, MemorySlot{ID: "missing", Value: 1})
	if err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if n != 0 {
		t.Errorf("update missing affected %d rows, want 0", n)
	}
}

func TestGitSlotRepositoryDelete(t *testing.T) {
	repo := setupGitRepo(t)
	ctx := context.Background()
	slot := insertSlot(t, repo, 1, 0)

	n, err := repo.Delete(ctx, slot.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 1 {
		t.Errorf("delete affected %d rows, want 1", n)
	}

	if _, err := repo.Get(ctx, slot.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	n, _ = repo.Delete(ctx, slot.ID)
	if n != 0 {
		t.Errorf("second delete affected %d rows, want 0", n)
	}
}

func TestGitSlotRepositoryDeleteAll(t *testing.T) {
	repo := setupGitRepo(t)
	ctx := context.Background()
	insertSlot(t, repo, 1, 1)
	insertSlot(t, repo, 2, 0)

	n, err := repo.DeleteAll(ctx)
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if n != 2 {
		t.Errorf("delete all affected %d rows, want 2", n)
	}

	slots, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected empty store, got %d slots", len(slots))
	}

	n, _ = repo.DeleteAll(ctx)
	if n != 0 {
		t.Errorf("delete all on empty store affected %d rows, want 0", n)
	}
}

func TestGitSlotRepositoryIncrementOrder(t *testing.T) {
	repo := setupGitRepo(t)
	ctx := context.Background()
	insertSlot(t, repo, 1, 1)
	insertSlot(t, repo, 2, 0)

	n, err := repo.IncrementOrder(ctx)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if n != 2 {
		t.Errorf("increment affected %d rows, want 2", n)
	}

	slots, _ := repo.List(ctx)
	if slots[0].Value != 2 || slots[0].Order != 1 {
		t.Errorf("first slot = {%v, %d}, want {2, 1}", slots[0].Value, slots[0].Order)
	}
	if slots[1].Value != 1 || slots[1].Order != 2 {
		t.Errorf("second slot = {%v, %d}, want {1, 2}", slots[1].Value, slots[1].Order)
	}
}

func TestGitSlotRepositoryLog(t *testing.T) {
	repo := setupGitRepo(t)
	ctx := context.Background()

	commits, err := repo.Log(ctx, 0)
	if err != nil {
		t.Fatalf("log on empty repo: %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("expected no commits, got %d", len(commits))
	}

	slot := insertSlot(t, repo, 1, 0)
	slot.Value = 2
	if _, err := repo.Update(ctx, *slot); err != nil {
		t.Fatalf("update: %v", err)
	}

	commits, err = repo.Log(ctx, 0)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if commits[0].Message != "update: "+slot.ID {
		t.Errorf("latest message = %q", commits[0].Message)
	}
	if commits[0].Author != DefaultAuthor {
		t.Errorf("author = %q, want %q", commits[0].Author, DefaultAuthor)
	}
	if len(commits[0].Parents) != 1 || commits[0].Parents[0] != commits[1].Hash {
		t.Errorf("expected latest commit to descend from %s", commits[1].Hash)
	}

	limited, _ := repo.Log(ctx, 1)
	if len(limited) != 1 {
		t.Errorf("expected 1 commit with limit, got %d", len(limited))
	}
}

func TestGitSlotRepositoryPersistsOnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := OpenGitSlotRepository(dir, Author{Name: "tester", Email: "t@example.com"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	slot := insertSlot(t, repo, 7.25, 0)

	reopened, err := OpenGitSlotRepository(dir, Author{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	got, err := reopened.Get(ctx, slot.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Value != 7.25 {
		t.Errorf("value = %v, want 7.25", got.Value)
	}

	commits, _ := reopened.Log(ctx, 0)
	if len(commits) != 1 || commits[0].Author != "tester" {
		t.Errorf("expected one commit by tester, got %+v", commits)
	}
}
