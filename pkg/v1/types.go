package v1

import (
	"time"

	"github.com/GreyStekl0/DotCalc/internal"
)

var (
	ErrNotFound       = internal.ErrNotFound
	ErrNotInitialized = internal.ErrNotInitialized
	ErrInvalidKey     = internal.ErrInvalidKey
	ErrInvalidValue   = internal.ErrInvalidValue
	ErrInvalidLocale  = internal.ErrInvalidLocale
)

// Slot is one memory slot. Order 0 is the top.
type Slot struct {
	ID        string    `json:"id"`
	Value     float64   `json:"value"`
	Display   string    `json:"display"`
	Order     int32     `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryItem is a completed calculation, newest first in History.
type HistoryItem struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

// Commit represents one recorded change of the memory store.
type Commit struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}
