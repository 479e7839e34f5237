package internal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateUseCase(t *testing.T) {
	uc := NewEvaluateUseCase(MustLocale("en-US"))

	out, err := uc.Execute(context.Background(), EvaluateInput{Keys: []string{"12 + 3", "=", "="}})
	require.NoError(t, err)

	assert.Equal(t, "18", out.Display)
	assert.Equal(t, "15 + 3 =", out.Expression)
	assert.Equal(t, []HistoryItem{
		{Expression: "15 + 3 =", Result: "18"},
		{Expression: "12 + 3 =", Result: "15"},
	}, out.History)
}

func TestEvaluateUseCaseLocaleOverride(t *testing.T) {
	uc := NewEvaluateUseCase(MustLocale("en-US"))

	out, err := uc.Execute(context.Background(), EvaluateInput{
		Keys:   []string{"1 , 5 + 1 ="},
		Locale: "ru-RU",
	})
	require.NoError(t, err)
	assert.Equal(t, "2,5", out.Display)
}

func TestEvaluateUseCaseErrors(t *testing.T) {
	uc := NewEvaluateUseCase(MustLocale("en-US"))
	ctx := context.Background()

	_, err := uc.Execute(ctx, EvaluateInput{Keys: []string{"1 + banana"}})
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = uc.Execute(ctx, EvaluateInput{Keys: []string{"1"}, Locale: "??"})
	assert.ErrorIs(t, err, ErrInvalidLocale)

	out, err := uc.Execute(ctx, EvaluateInput{Keys: []string{"1 / 0 ="}})
	require.NoError(t, err, "division by zero is shown, not returned")
	assert.Equal(t, ErrorText, out.Display)
	assert.Empty(t, out.History)
}

func TestLogUseCase(t *testing.T) {
	resolver := NewScopeResolverAt(t.TempDir())
	store := gitStore(t)
	storeTop(t, store, 1)
	storeTop(t, store, 2)

	var requested Scope
	uc := NewLogUseCase(resolver, func(s Scope) (*MemoryStore, error) {
		requested = s
		return store, nil
	})

	out, err := uc.Execute(context.Background(), LogInput{Limit: 2, Scope: "global"})
	require.NoError(t, err)

	assert.Equal(t, ScopeGlobal, requested.Type)
	require.Len(t, out.Commits, 2)
	assert.Equal(t, "reorder", out.Commits[1].Message)
	assert.Equal(t, DefaultAuthor, out.Commits[0].Author)
	assert.NotEmpty(t, out.Commits[0].Hash)
}
