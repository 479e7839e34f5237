package internal

import (
	"context"
	"fmt"
	"time"
)

// Use case input/output DTOs

type EvaluateInput struct {
	Keys   []string
	Locale string
}

type EvaluateOutput struct {
	Display    string        `json:"display"`
	Expression string        `json:"expression"`
	History    []HistoryItem `json:"history"`
}

type LogInput struct {
	Limit int
	Scope string
}

type CommitOutput struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

type LogOutput struct {
	Commits []CommitOutput `json:"commits"`
}

// Use cases

// EvaluateUseCase runs a key sequence through a fresh engine.
type EvaluateUseCase struct {
	locale Locale
}

func NewEvaluateUseCase(locale Locale) *EvaluateUseCase {
	return &EvaluateUseCase{locale: locale}
}

func (uc *EvaluateUseCase) Execute(ctx context.Context, input EvaluateInput) (*EvaluateOutput, error) {
	loc := uc.locale
	if input.Locale != "" {
		l, err := NewLocale(input.Locale)
		if err != nil {
			return nil, err
		}
		loc = l
	}

	events, err := ParseKeys(input.Keys)
	if err != nil {
		return nil, err
	}

	engine := NewEngine(loc)
	for i, ev := range events {
		if _, err := engine.Apply(ev); err != nil {
			return nil, fmt.Errorf("apply key %d: %w", i+1, err)
		}
	}

	view := engine.View()
	return &EvaluateOutput{
		Display:    view.Display,
		Expression: view.Expression,
		History:    view.History,
	}, nil
}

// LogUseCase lists the memory store's change history.
type LogUseCase struct {
	resolver *ScopeResolver
	storeFor func(Scope) (*MemoryStore, error)
}

func NewLogUseCase(
	resolver *ScopeResolver,
	storeFor func(Scope) (*MemoryStore, error),
) *LogUseCase {
	return &LogUseCase{
		resolver: resolver,
		storeFor: storeFor,
	}
}

func (uc *LogUseCase) Execute(ctx context.Context, input LogInput) (*LogOutput, error) {
	scope := uc.resolver.Resolve(input.Scope)
	store, err := uc.storeFor(scope)
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}

	commits, err := store.Log(ctx, input.Limit)
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}

	out := &LogOutput{Commits: make([]CommitOutput, 0, len(commits))}
	for _, c := range commits {
		out.Commits = append(out.Commits, CommitOutput{
			Hash:      c.Hash,
			Message:   c.Message,
			Author:    c.Author,
			Timestamp: c.Timestamp,
		})
	}

	return out, nil
}
