package internal

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("memory slot not found")
	ErrNotInitialized  = errors.New("memory store not initialized")
	ErrInvalidDigit    = errors.New("invalid digit")
	ErrInvalidOperator = errors.New("invalid operator")
	ErrNilHistoryItem  = errors.New("history item is nil")
	ErrEmptyDisplay    = errors.New("display text is empty")
	ErrInvalidLocale   = errors.New("invalid locale")
	ErrInvalidValue    = errors.New("invalid value")
	ErrInvalidKey      = errors.New("invalid key")
)

// MemorySlot is one persisted memory value. Order 0 is the top of the list.
type MemorySlot struct {
	ID        string    `yaml:"id"`
	Value     float64   `yaml:"value"`
	Order     int32     `yaml:"order"`
	CreatedAt time.Time `yaml:"created_at"`
}

func NewMemorySlot(value float64) *MemorySlot {
	return &MemorySlot{
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}
}

// SlotRepository is the durable record store behind MemoryStore. It is not
// safe for concurrent use; MemoryStore serializes every call.
type SlotRepository interface {
	// Init creates the schema if it does not exist yet.
	Init(ctx context.Context) error
	// List returns every slot sorted by Order ascending.
	List(ctx context.Context) ([]MemorySlot, error)
	Get(ctx context.Context, id string) (*MemorySlot, error)
	// Insert assigns slot.ID when empty.
	Insert(ctx context.Context, slot *MemorySlot) (int, error)
	Update(ctx context.Context, slot MemorySlot) (int, error)
	Delete(ctx context.Context, id string) (int, error)
	DeleteAll(ctx context.Context) (int, error)
	// IncrementOrder adds one to the Order of every slot.
	IncrementOrder(ctx context.Context) (int, error)
	Log(ctx context.Context, limit int) ([]*Commit, error)
}
