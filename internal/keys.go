package internal

import (
	"fmt"
	"strings"
)

var keyEvents = map[string]EventKind{
	".":    EventDecimal,
	",":    EventDecimal,
	"=":    EventEquals,
	"C":    EventClear,
	"CE":   EventClearEntry,
	"BS":   EventBackspace,
	"NEG":  EventNegate,
	"±":    EventNegate,
	"%":    EventPercent,
	"SQR":  EventSquare,
	"SQRT": EventSquareRoot,
	"√":    EventSquareRoot,
	"INV":  EventInverse,
}

// ParseKey maps a key token such as "7", "+", "=", "SQRT" or "CE" to an
// engine event. Word tokens are case-insensitive.
func ParseKey(token string) (Event, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Event{}, fmt.Errorf("%w: empty", ErrInvalidKey)
	}

	if len(token) == 1 && token[0] >= '0' && token[0] <= '9' {
		return Event{Kind: EventDigit, Digit: token}, nil
	}
	if kind, ok := keyEvents[strings.ToUpper(token)]; ok {
		return Event{Kind: kind}, nil
	}
	if op, err := ParseOperator(token); err == nil {
		return Event{Kind: EventOperator, Operator: op}, nil
	}

	return Event{}, fmt.Errorf("%w: %q", ErrInvalidKey, token)
}

// ParseKeys splits each argument on whitespace and parses every token.
// Runs of digits such as "123" expand to one event per digit.
func ParseKeys(args []string) ([]Event, error) {
	var events []Event
	for _, arg := range args {
		for _, token := range strings.Fields(arg) {
			if isDigits(token) {
				for _, d := range token {
					events = append(events, Event{Kind: EventDigit, Digit: string(d)})
				}
				continue
			}

			ev, err := ParseKey(token)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
	}
	return events, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
