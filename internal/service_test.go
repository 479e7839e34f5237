package internal

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTest(t *testing.T, tag string) (*MemoryService, *MemoryStore) {
	t.Helper()

	store := gitStore(t)
	svc := NewMemoryService(store, MustLocale(tag), nil)
	svc.Load(context.Background())
	return svc, store
}

func itemValues(items []MemoryItem) []float64 {
	values := make([]float64, len(items))
	for i, item := range items {
		values[i] = item.Value
	}
	return values
}

func TestMemoryServiceStore(t *testing.T) {
	svc, _ := setupServiceTest(t, "en-US")
	ctx := context.Background()

	require.NoError(t, svc.Store(ctx, 1))
	require.NoError(t, svc.Store(ctx, 2.5))

	items := svc.Items()
	require.Len(t, items, 2)
	assert.Equal(t, []float64{2.5, 1}, itemValues(items))
	assert.Equal(t, int32(0), items[0].Order)
	assert.Equal(t, int32(1), items[1].Order)
	assert.Equal(t, "2.5", items[0].DisplayValue)

	v, ok := svc.Recall()
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
}

func TestMemoryServiceDisplayValueUsesLocale(t *testing.T) {
	svc, _ := setupServiceTest(t, "ru-RU")
	require.NoError(t, svc.Store(context.Background(), 1.5))

	assert.Equal(t, "1,5", svc.Items()[0].DisplayValue)
}

func TestMemoryServiceAddAndSubtractOnEmpty(t *testing.T) {
	svc, _ := setupServiceTest(t, "en-US")
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 4))
	assert.Equal(t, []float64{4}, itemValues(svc.Items()))

	_, err := svc.Clear(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Subtract(ctx, 4))
	assert.Equal(t, []float64{-4}, itemValues(svc.Items()))
}

func TestMemoryServiceAddAdjustsTopSlot(t *testing.T) {
	svc, _ := setupServiceTest(t, "en-US")
	ctx := context.Background()

	require.NoError(t, svc.Store(ctx, 1))
	require.NoError(t, svc.Store(ctx, 5))
	require.NoError(t, svc.Add(ctx, 3))
	require.NoError(t, svc.Subtract(ctx, 0.5))

	assert.Equal(t, []float64{7.5, 1}, itemValues(svc.Items()))
}

func TestMemoryServiceAddRereadsTopSlot(t *testing.T) {
	svc, store := setupServiceTest(t, "en-US")
	ctx := context.Background()

	require.NoError(t, svc.Store(ctx, 1))
	require.NoError(t, svc.Store(ctx, 5))

	slots, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	_, err = store.Delete(ctx, slots[0])
	require.NoError(t, err)

	require.NoError(t, svc.Add(ctx, 3))
	assert.Equal(t, []float64{4}, itemValues(svc.Items()))

	persisted, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, 4.0, persisted[0].Value)
}

func TestMemoryServiceAddAfterExternalClear(t *testing.T) {
	svc, store := setupServiceTest(t, "en-US")
	ctx := context.Background()

	require.NoError(t, svc.Store(ctx, 9))
	_, err := store.DeleteAll(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Subtract(ctx, 2))
	assert.Equal(t, []float64{-2}, itemValues(svc.Items()))
}

func TestMemoryServiceAdjustAt(t *testing.T) {
	svc, _ := setupServiceTest(t, "en-US")
	ctx := context.Background()

	require.NoError(t, svc.Store(ctx, 10))
	require.NoError(t, svc.Store(ctx, 20))
	second := svc.Items()[1]

	require.NoError(t, svc.AddAt(ctx, second.ID, 5))
	assert.Equal(t, []float64{20, 15}, itemValues(svc.Items()))

	require.NoError(t, svc.SubtractAt(ctx, second.ID, 30))
	assert.Equal(t, []float64{20, -15}, itemValues(svc.Items()))

	err := svc.AddAt(ctx, "missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryServiceDeleteKeepsOrdersDense(t *testing.T) {
	svc, store := setupServiceTest(t, "en-US")
	ctx := context.Background()

	for _, v := range []float64{1, 2, 3} {
		require.NoError(t, svc.Store(ctx, v))
	}
	middle := svc.Items()[1]
	require.Equal(t, 2.0, middle.Value)

	require.NoError(t, svc.Delete(ctx, middle.ID))

	items := svc.Items()
	assert.Equal(t, []float64{3, 1}, itemValues(items))
	assert.Equal(t, int32(0), items[0].Order)
	assert.Equal(t, int32(1), items[1].Order)

	slots, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, items[1].ID, slots[1].ID)

	assert.ErrorIs(t, svc.Delete(ctx, middle.ID), ErrNotFound)
}

func TestMemoryServiceClear(t *testing.T) {
	svc, _ := setupServiceTest(t, "en-US")
	ctx := context.Background()

	require.NoError(t, svc.Store(ctx, 1))
	require.NoError(t, svc.Store(ctx, 2))

	n, err := svc.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, svc.Items())

	_, ok := svc.Recall()
	assert.False(t, ok)
}

func TestMemoryServiceRejectsNonFiniteValues(t *testing.T) {
	svc, _ := setupServiceTest(t, "en-US")
	ctx := context.Background()

	assert.ErrorIs(t, svc.Store(ctx, math.NaN()), ErrInvalidValue)
	assert.ErrorIs(t, svc.Add(ctx, math.Inf(1)), ErrInvalidValue)
	assert.Empty(t, svc.Items())
}

func TestMemoryServiceLoadReadsPersistedSlots(t *testing.T) {
	svc, store := setupServiceTest(t, "en-US")
	ctx := context.Background()
	require.NoError(t, svc.Store(ctx, 42))

	reloaded := NewMemoryService(store, MustLocale("en-US"), nil)
	assert.Empty(t, reloaded.Items())

	reloaded.Load(ctx)
	assert.Equal(t, []float64{42}, itemValues(reloaded.Items()))
}

func TestMemoryServiceLoadFailureContinuesEmpty(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	store := NewMemoryStore(func(ctx context.Context) (SlotRepository, error) {
		return nil, errors.New("database locked")
	}, logger)
	svc := NewMemoryService(store, MustLocale("en-US"), logger)

	svc.Load(context.Background())

	assert.Empty(t, svc.Items())
	assert.Contains(t, logs.String(), "load memory failed")
	assert.Contains(t, logs.String(), "database locked")

	err := svc.Store(context.Background(), 1)
	assert.Error(t, err)
}
