package v1

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GreyStekl0/DotCalc/internal"
)

// Client provides programmatic access to a calculator and its memory.
type Client struct {
	Calculator *Calculator
	Memory     *Memory
}

// New creates a new Client with the given options. Without WithDataDir the
// scope must have been initialized with `calc init`.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	resolver := internal.NewScopeResolver()

	var scopes []internal.Scope
	if cfg.dataDir != "" {
		scopes = []internal.Scope{{
			Type:     internal.ScopeProject,
			Path:     filepath.Dir(cfg.dataDir),
			DataPath: cfg.dataDir,
		}}
	} else {
		scope := resolver.Resolve(cfg.scope)
		if _, err := os.Stat(scope.DataPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", internal.ErrNotInitialized, scope.DataPath)
		}
		scopes = []internal.Scope{scope}
		if scope.Type == internal.ScopeProject {
			scopes = append(scopes, resolver.Global())
		}
	}

	conf, err := internal.LoadConfig(scopes...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.locale != "" {
		conf.Locale = cfg.locale
		conf.DecimalSeparator = ""
	}

	loc, err := conf.ResolveLocale()
	if err != nil {
		return nil, err
	}

	store := internal.NewGitMemoryStore(scopes[0].StorePath(), conf.Author, cfg.logger)
	svc := internal.NewMemoryService(store, loc, cfg.logger)
	svc.Load(context.Background())

	return &Client{
		Calculator: &Calculator{engine: internal.NewEngine(loc)},
		Memory:     &Memory{svc: svc, store: store},
	}, nil
}

// MemoryStore saves the displayed value as the new top slot (MS).
func (c *Client) MemoryStore(ctx context.Context) error {
	v, err := c.Calculator.number()
	if err != nil {
		return err
	}
	return c.Memory.Store(ctx, v)
}

// MemoryAdd adds the displayed value to the top slot (M+).
func (c *Client) MemoryAdd(ctx context.Context) error {
	v, err := c.Calculator.number()
	if err != nil {
		return err
	}
	return c.Memory.Add(ctx, v)
}

// MemorySubtract subtracts the displayed value from the top slot (M-).
func (c *Client) MemorySubtract(ctx context.Context) error {
	v, err := c.Calculator.number()
	if err != nil {
		return err
	}
	return c.Memory.Subtract(ctx, v)
}

// MemoryRecall puts the top slot on the display (MR). It reports false when
// memory is empty.
func (c *Client) MemoryRecall() (bool, error) {
	v, ok := c.Memory.Recall()
	if !ok {
		return false, nil
	}
	if err := c.Calculator.show(v); err != nil {
		return false, fmt.Errorf("recall memory: %w", err)
	}
	return true, nil
}

// Close releases any resources held by the client.
func (c *Client) Close() error {
	return nil
}

// Calculator is a keyboard calculator. It is not safe for concurrent use.
type Calculator struct {
	engine *internal.Engine
}

// Press applies key tokens in order, e.g. Press("12", "+", "3", "="). It
// stops at the first invalid key; keys before it stay applied.
func (c *Calculator) Press(keys ...string) error {
	events, err := internal.ParseKeys(keys)
	if err != nil {
		return err
	}

	for _, ev := range events {
		if _, err := c.engine.Apply(ev); err != nil {
			return err
		}
	}
	return nil
}

func (c *Calculator) Display() string {
	return c.engine.View().Display
}

func (c *Calculator) Expression() string {
	return c.engine.View().Expression
}

// Value is the displayed number, 0 when the display is not a number.
func (c *Calculator) Value() float64 {
	return c.engine.Value()
}

func (c *Calculator) History() []HistoryItem {
	view := c.engine.View()
	items := make([]HistoryItem, len(view.History))
	for i, h := range view.History {
		items[i] = HistoryItem{Expression: h.Expression, Result: h.Result}
	}
	return items
}

// UseHistory restores a history entry to the display.
func (c *Calculator) UseHistory(item HistoryItem) error {
	_, err := c.engine.SelectHistoryItem(&internal.HistoryItem{
		Expression: item.Expression,
		Result:     item.Result,
	})
	return err
}

func (c *Calculator) Clear() {
	c.engine.Clear()
}

func (c *Calculator) ClearHistory() {
	c.engine.ClearHistory()
}

// number is the displayed value, or ErrInvalidValue for the error marker.
func (c *Calculator) number() (float64, error) {
	display := c.Display()
	v, ok := c.engine.Locale().Parse(display)
	if !ok {
		return 0, fmt.Errorf("%w: display %q", internal.ErrInvalidValue, display)
	}
	return v, nil
}

func (c *Calculator) show(v float64) error {
	_, err := c.engine.SetDisplayText(c.engine.Locale().Format(v), true)
	return err
}

// Memory is the ordered calculator memory. It is safe for concurrent use.
type Memory struct {
	svc   *internal.MemoryService
	store *internal.MemoryStore
}

func (m *Memory) Store(ctx context.Context, value float64) error {
	return m.svc.Store(ctx, value)
}

func (m *Memory) Add(ctx context.Context, value float64) error {
	return m.svc.Add(ctx, value)
}

func (m *Memory) Subtract(ctx context.Context, value float64) error {
	return m.svc.Subtract(ctx, value)
}

func (m *Memory) AddAt(ctx context.Context, id string, value float64) error {
	return m.svc.AddAt(ctx, id, value)
}

func (m *Memory) SubtractAt(ctx context.Context, id string, value float64) error {
	return m.svc.SubtractAt(ctx, id, value)
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	return m.svc.Delete(ctx, id)
}

// Clear removes every slot and returns how many were removed.
func (m *Memory) Clear(ctx context.Context) (int, error) {
	return m.svc.Clear(ctx)
}

// Recall returns the top slot value.
func (m *Memory) Recall() (float64, bool) {
	return m.svc.Recall()
}

// List returns the slots, top first.
func (m *Memory) List() []Slot {
	items := m.svc.Items()
	slots := make([]Slot, len(items))
	for i, item := range items {
		slots[i] = Slot{
			ID:        item.ID,
			Value:     item.Value,
			Display:   item.DisplayValue,
			Order:     item.Order,
			CreatedAt: item.CreatedAt,
		}
	}
	return slots
}

// Log returns the most recent store changes, newest first.
func (m *Memory) Log(ctx context.Context, limit int) ([]Commit, error) {
	commits, err := m.store.Log(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}

	out := make([]Commit, len(commits))
	for i, c := range commits {
		out[i] = Commit{
			Hash:      c.Hash,
			Message:   c.Message,
			Author:    c.Author,
			Timestamp: c.Timestamp,
		}
	}
	return out, nil
}
