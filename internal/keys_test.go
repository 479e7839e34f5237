package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		token string
		want  Event
	}{
		{"7", Event{Kind: EventDigit, Digit: "7"}},
		{".", Event{Kind: EventDecimal}},
		{",", Event{Kind: EventDecimal}},
		{"+", Event{Kind: EventOperator, Operator: OpAdd}},
		{"-", Event{Kind: EventOperator, Operator: OpSub}},
		{"*", Event{Kind: EventOperator, Operator: OpMul}},
		{"x", Event{Kind: EventOperator, Operator: OpMul}},
		{"÷", Event{Kind: EventOperator, Operator: OpDiv}},
		{"=", Event{Kind: EventEquals}},
		{"c", Event{Kind: EventClear}},
		{"CE", Event{Kind: EventClearEntry}},
		{"bs", Event{Kind: EventBackspace}},
		{"NEG", Event{Kind: EventNegate}},
		{"%", Event{Kind: EventPercent}},
		{"sqr", Event{Kind: EventSquare}},
		{"SQRT", Event{Kind: EventSquareRoot}},
		{"√", Event{Kind: EventSquareRoot}},
		{"INV", Event{Kind: EventInverse}},
	}

	for _, tt := range tests {
		got, err := ParseKey(tt.token)
		require.NoError(t, err, tt.token)
		assert.Equal(t, tt.want, got, tt.token)
	}
}

func TestParseKeyInvalid(t *testing.T) {
	for _, token := range []string{"", "  ", "12", "foo", "^"} {
		_, err := ParseKey(token)
		assert.ErrorIs(t, err, ErrInvalidKey, token)
	}
}

func TestParseKeysExpandsDigitRuns(t *testing.T) {
	events, err := ParseKeys([]string{"12 +", "3", "="})
	require.NoError(t, err)

	require.Len(t, events, 5)
	assert.Equal(t, "1", events[0].Digit)
	assert.Equal(t, "2", events[1].Digit)
	assert.Equal(t, OpAdd, events[2].Operator)
	assert.Equal(t, "3", events[3].Digit)
	assert.Equal(t, EventEquals, events[4].Kind)
}

func TestParseKeysStopsAtInvalidToken(t *testing.T) {
	_, err := ParseKeys([]string{"1 + what"})
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestOperatorApply(t *testing.T) {
	assert.Equal(t, 5.0, OpAdd.Apply(2, 3))
	assert.Equal(t, -1.0, OpSub.Apply(2, 3))
	assert.Equal(t, 6.0, OpMul.Apply(2, 3))
	assert.Equal(t, 0.5, OpDiv.Apply(1, 2))
	assert.True(t, math.IsNaN(OpDiv.Apply(1, 0)))
	assert.Equal(t, 3.0, OpNone.Apply(2, 3))
}

func TestParseOperator(t *testing.T) {
	op, err := ParseOperator("−")
	require.NoError(t, err)
	assert.Equal(t, OpSub, op)
	assert.Equal(t, "−", op.String())

	_, err = ParseOperator("^")
	assert.ErrorIs(t, err, ErrInvalidOperator)
	assert.False(t, OpNone.Valid())
	assert.Empty(t, OpNone.String())
}
