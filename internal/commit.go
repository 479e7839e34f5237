package internal

import "time"

// Commit is one entry of the memory store audit trail.
type Commit struct {
	Hash      string
	Message   string
	Author    string
	Timestamp time.Time
	Parents   []string
}
