package internal

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"
)

// MemoryItem is a memory slot prepared for display.
type MemoryItem struct {
	ID           string    `json:"id"`
	Value        float64   `json:"value"`
	Order        int32     `json:"order"`
	CreatedAt    time.Time `json:"created_at"`
	DisplayValue string    `json:"display_value"`
}

// MemoryService keeps the ordered projection of a MemoryStore that the
// memory keys (MS, M+, M−, MR, MC) operate on. After every mutation the
// projection is re-read from the store, so it always matches GetAll.
type MemoryService struct {
	mu     sync.Mutex
	store  *MemoryStore
	locale Locale
	logger *slog.Logger
	slots  []MemorySlot
}

func NewMemoryService(store *MemoryStore, locale Locale, logger *slog.Logger) *MemoryService {
	return &MemoryService{
		store:  store,
		locale: locale,
		logger: orDiscard(logger),
	}
}

// Load reads the persisted slots. A failing store is logged and the service
// continues with an empty list.
func (s *MemoryService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refreshLocked(ctx); err != nil {
		s.logger.Warn("load memory failed, starting empty", "error", err)
		s.slots = nil
	}
}

// Store saves value as the new top slot.
func (s *MemoryService) Store(ctx context.Context, value float64) error {
	if err := checkValue(value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.insertTopLocked(ctx, value); err != nil {
		return err
	}
	s.logger.Debug("memory stored", "value", value)
	return s.refreshLocked(ctx)
}

// Add adds value to the top slot, or stores it when memory is empty.
func (s *MemoryService) Add(ctx context.Context, value float64) error {
	return s.adjustTop(ctx, value)
}

// Subtract subtracts value from the top slot, or stores -value when memory
// is empty.
func (s *MemoryService) Subtract(ctx context.Context, value float64) error {
	return s.adjustTop(ctx, -value)
}

func (s *MemoryService) AddAt(ctx context.Context, id string, value float64) error {
	return s.adjustAt(ctx, id, value)
}

func (s *MemoryService) SubtractAt(ctx context.Context, id string, value float64) error {
	return s.adjustAt(ctx, id, -value)
}

// Delete removes one slot and moves the slots below it up by one.
func (s *MemoryService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, err := s.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get slot: %w", err)
	}

	if _, err := s.store.Delete(ctx, *slot); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	rest, err := s.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("list slots: %w", err)
	}
	for _, other := range rest {
		if other.Order <= slot.Order {
			continue
		}
		other.Order--
		if _, err := s.store.Update(ctx, other); err != nil {
			return fmt.Errorf("reorder slot: %w", err)
		}
	}

	s.logger.Debug("memory deleted", "id", id)
	return s.refreshLocked(ctx)
}

// Clear removes every slot and returns how many were removed.
func (s *MemoryService) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear memory: %w", err)
	}

	s.logger.Debug("memory cleared", "count", n)
	return n, s.refreshLocked(ctx)
}

// Recall returns the top slot value. ok is false when memory is empty.
func (s *MemoryService) Recall() (value float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.slots) == 0 {
		return 0, false
	}
	return s.slots[0].Value, true
}

// Items returns the slots in display order.
func (s *MemoryService) Items() []MemoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]MemoryItem, len(s.slots))
	for i, slot := range s.slots {
		items[i] = MemoryItem{
			ID:           slot.ID,
			Value:        slot.Value,
			Order:        slot.Order,
			CreatedAt:    slot.CreatedAt,
			DisplayValue: s.locale.Format(slot.Value),
		}
	}
	return items
}

func (s *MemoryService) Locale() Locale {
	return s.locale
}

func (s *MemoryService) adjustTop(ctx context.Context, delta float64) error {
	if err := checkValue(delta); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// another process may have changed the slots since the last read
	if err := s.refreshLocked(ctx); err != nil {
		return err
	}

	if len(s.slots) == 0 {
		if err := s.insertTopLocked(ctx, delta); err != nil {
			return err
		}
		return s.refreshLocked(ctx)
	}

	top := s.slots[0]
	top.Value += delta
	if err := s.updateLocked(ctx, top); err != nil {
		return err
	}

	s.logger.Debug("memory adjusted", "id", top.ID, "delta", delta)
	return s.refreshLocked(ctx)
}

func (s *MemoryService) adjustAt(ctx context.Context, id string, delta float64) error {
	if err := checkValue(delta); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slot, err := s.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get slot: %w", err)
	}

	slot.Value += delta
	if err := s.updateLocked(ctx, *slot); err != nil {
		return err
	}

	s.logger.Debug("memory adjusted", "id", id, "delta", delta)
	return s.refreshLocked(ctx)
}

func (s *MemoryService) updateLocked(ctx context.Context, slot MemorySlot) error {
	n, err := s.store.Update(ctx, slot)
	if err != nil {
		return fmt.Errorf("update slot: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update slot %s: %w", slot.ID, ErrNotFound)
	}
	return nil
}

// insertTopLocked makes room at order 0 and inserts there. The two store
// calls are separate operations; a failure between them leaves order 0 empty.
func (s *MemoryService) insertTopLocked(ctx context.Context, value float64) error {
	if _, err := s.store.IncrementOrderForAll(ctx); err != nil {
		return fmt.Errorf("shift slots: %w", err)
	}

	slot := NewMemorySlot(value)
	slot.Order = 0
	if _, err := s.store.Insert(ctx, slot); err != nil {
		return fmt.Errorf("insert slot: %w", err)
	}
	return nil
}

func (s *MemoryService) refreshLocked(ctx context.Context) error {
	slots, err := s.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("list slots: %w", err)
	}
	s.slots = slots
	return nil
}

func checkValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidValue, v)
	}
	return nil
}
