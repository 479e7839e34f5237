package internal

import (
	"fmt"
	"math"
)

// Operator is a binary calculator operation. OpNone means no operation.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var operatorSymbols = map[Operator]string{
	OpAdd: "+",
	OpSub: "−",
	OpMul: "×",
	OpDiv: "÷",
}

var operatorAliases = map[string]Operator{
	"+": OpAdd,
	"−": OpSub,
	"-": OpSub,
	"×": OpMul,
	"*": OpMul,
	"x": OpMul,
	"÷": OpDiv,
	"/": OpDiv,
	":": OpDiv,
}

// ParseOperator accepts display symbols and their ASCII aliases.
func ParseOperator(s string) (Operator, error) {
	op, ok := operatorAliases[s]
	if !ok {
		return OpNone, fmt.Errorf("%w: %q", ErrInvalidOperator, s)
	}
	return op, nil
}

func (o Operator) Valid() bool {
	return o >= OpAdd && o <= OpDiv
}

// String returns the display symbol.
func (o Operator) String() string {
	return operatorSymbols[o]
}

// Apply evaluates left o right. Division by zero yields NaN instead of
// failing.
func (o Operator) Apply(left, right float64) float64 {
	switch o {
	case OpAdd:
		return left + right
	case OpSub:
		return left - right
	case OpMul:
		return left * right
	case OpDiv:
		if right == 0 {
			return math.NaN()
		}
		return left / right
	default:
		return right
	}
}
