package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/GreyStekl0/DotCalc/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listItems(t *testing.T, a *app) []internal.MemoryItem {
	t.Helper()

	var items []internal.MemoryItem
	out := mustRun(t, a, "--json", "mem", "list")
	require.NoError(t, json.Unmarshal([]byte(out), &items), out)
	return items
}

func TestMemCmdRequiresInit(t *testing.T) {
	a, _, _ := setupCLI(t)

	_, err := runCmd(t, a, "mem", "list")
	assert.True(t, errors.Is(err, internal.ErrNotInitialized), "got %v", err)
}

func TestMemStoreAndList(t *testing.T) {
	a, _, _ := setupCLI(t)
	mustRun(t, a, "init")

	out := mustRun(t, a, "mem", "list")
	assert.Equal(t, "Memory is empty\n", out)

	mustRun(t, a, "mem", "store", "42")
	out = mustRun(t, a, "mem", "store", "7.5")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "0\t7.5\t"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1\t42\t"), lines[1])

	items := listItems(t, a)
	require.Len(t, items, 2)
	assert.Equal(t, 7.5, items[0].Value)
	assert.Equal(t, int32(1), items[1].Order)
}

func TestMemAddSubtract(t *testing.T) {
	a, _, _ := setupCLI(t)
	mustRun(t, a, "init")

	mustRun(t, a, "mem", "sub", "5")
	assert.Equal(t, "-5\n", mustRun(t, a, "mem", "recall"))

	mustRun(t, a, "mem", "add", "8")
	assert.Equal(t, "3\n", mustRun(t, a, "mem", "recall"))

	mustRun(t, a, "mem", "add", "--", "-1.5")
	assert.Equal(t, "1.5\n", mustRun(t, a, "mem", "recall"))
	assert.Len(t, listItems(t, a), 1)
}

func TestMemAdjustByID(t *testing.T) {
	a, _, _ := setupCLI(t)
	mustRun(t, a, "init")

	mustRun(t, a, "mem", "store", "10")
	mustRun(t, a, "mem", "store", "20")

	items := listItems(t, a)
	require.Len(t, items, 2)
	bottom := items[1].ID

	mustRun(t, a, "mem", "add", "--id", bottom, "5")
	mustRun(t, a, "mem", "sub", "--id", bottom, "1")

	items = listItems(t, a)
	assert.Equal(t, 20.0, items[0].Value)
	assert.Equal(t, 14.0, items[1].Value)

	_, err := runCmd(t, a, "mem", "add", "--id", "missing", "1")
	assert.True(t, errors.Is(err, internal.ErrNotFound), "got %v", err)
}

func TestMemDelCompactsOrder(t *testing.T) {
	a, _, _ := setupCLI(t)
	mustRun(t, a, "init")

	for _, v := range []string{"1", "2", "3"} {
		mustRun(t, a, "mem", "store", v)
	}

	items := listItems(t, a)
	require.Len(t, items, 3)

	out := mustRun(t, a, "mem", "del", items[1].ID)
	assert.Equal(t, "Deleted "+items[1].ID+"\n", out)

	items = listItems(t, a)
	require.Len(t, items, 2)
	assert.Equal(t, []float64{3, 1}, []float64{items[0].Value, items[1].Value})
	assert.Equal(t, []int32{0, 1}, []int32{items[0].Order, items[1].Order})
}

func TestMemClearAndRecallEmpty(t *testing.T) {
	a, _, _ := setupCLI(t)
	mustRun(t, a, "init")

	mustRun(t, a, "mem", "store", "1")
	mustRun(t, a, "mem", "store", "2")

	assert.Equal(t, "Cleared 2 slot(s)\n", mustRun(t, a, "mem", "clear"))
	assert.Empty(t, listItems(t, a))

	_, err := runCmd(t, a, "mem", "recall")
	assert.Error(t, err)
}

func TestMemRejectsBadValues(t *testing.T) {
	a, _, _ := setupCLI(t)
	mustRun(t, a, "init")

	for _, v := range []string{"abc", "NaN", "Inf", "1,5"} {
		_, err := runCmd(t, a, "mem", "store", v)
		assert.True(t, errors.Is(err, internal.ErrInvalidValue), "%s: got %v", v, err)
	}
}

func TestMemUsesLocale(t *testing.T) {
	a, _, _ := setupCLI(t)
	mustRun(t, a, "init")

	out := mustRun(t, a, "--locale", "de-DE", "mem", "store", "2,25")
	assert.True(t, strings.HasPrefix(out, "0\t2,25\t"), out)
	assert.Equal(t, "2.25\n", mustRun(t, a, "mem", "recall"))
}
