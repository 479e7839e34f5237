package internal

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// ErrorText replaces the display when a calculation has no finite result.
const ErrorText = "Error"

// Phase tags the calculator state.
type Phase int

const (
	// PhaseIdle: no operator selected and nothing to replay.
	PhaseIdle Phase = iota
	// PhaseOperatorPending: an operator is waiting for its right operand.
	PhaseOperatorPending
	// PhaseJustCalculated: "=" succeeded; pressing it again replays the
	// last operator and operand.
	PhaseJustCalculated
)

func (p Phase) String() string {
	switch p {
	case PhaseOperatorPending:
		return "operator-pending"
	case PhaseJustCalculated:
		return "just-calculated"
	default:
		return "idle"
	}
}

// State is the whole calculator state. Pending is meaningful only in
// PhaseOperatorPending, LastOperator/LastOperand only in PhaseJustCalculated.
type State struct {
	Display      string
	Expression   string
	Current      float64
	Stored       float64
	Phase        Phase
	Pending      Operator
	LastOperator Operator
	LastOperand  float64
	NewEntry     bool
	History      []HistoryItem
}

func InitialState() State {
	return State{Display: "0", NewEntry: true}
}

type EventKind int

const (
	EventDigit EventKind = iota + 1
	EventDecimal
	EventOperator
	EventEquals
	EventClear
	EventClearEntry
	EventBackspace
	EventNegate
	EventPercent
	EventSquare
	EventSquareRoot
	EventInverse
	EventSelectHistory
	EventSetDisplay
	EventClearHistory
)

// Event is one input. Only the fields used by Kind are read.
type Event struct {
	Kind     EventKind
	Digit    string
	Operator Operator
	Item     *HistoryItem
	Text     string
	NewEntry bool
}

// Transition applies ev to s. It never modifies s; the returned state may
// share its History slice. Errors are only returned for malformed events.
func Transition(s State, ev Event, loc Locale) (State, error) {
	switch ev.Kind {
	case EventDigit:
		return digit(s, ev.Digit)
	case EventDecimal:
		return decimal(s, loc.separator()), nil
	case EventOperator:
		return operator(s, ev.Operator, loc)
	case EventEquals:
		return equals(s, loc), nil
	case EventClear:
		return clear(s), nil
	case EventClearEntry:
		s.Display = "0"
		s.NewEntry = true
		return s, nil
	case EventBackspace:
		return backspace(s), nil
	case EventNegate:
		return negate(s, loc), nil
	case EventPercent:
		return percent(s, loc), nil
	case EventSquare:
		return unary(s, loc, "sqr(%s)", nil, func(v float64) float64 { return v * v }), nil
	case EventSquareRoot:
		return unary(s, loc, "√(%s)", func(v float64) bool { return v >= 0 }, math.Sqrt), nil
	case EventInverse:
		return unary(s, loc, "1/(%s)", func(v float64) bool { return v != 0 }, func(v float64) float64 { return 1 / v }), nil
	case EventSelectHistory:
		return selectHistory(s, ev.Item, loc)
	case EventSetDisplay:
		if ev.Text == "" {
			return s, ErrEmptyDisplay
		}
		s.Display = ev.Text
		s.NewEntry = ev.NewEntry
		return s, nil
	case EventClearHistory:
		s.History = nil
		return s, nil
	default:
		return s, fmt.Errorf("unknown event kind %d", ev.Kind)
	}
}

func digit(s State, d string) (State, error) {
	if len(d) != 1 || d[0] < '0' || d[0] > '9' {
		return s, fmt.Errorf("%w: %q", ErrInvalidDigit, d)
	}

	switch {
	case s.NewEntry:
		s.Display = d
		s.NewEntry = false
	case s.Display == "0" && d != "0":
		s.Display = d
	case s.Display != "0":
		s.Display += d
	}
	return s, nil
}

func decimal(s State, sep string) State {
	if s.NewEntry {
		s.Display = "0" + sep
		s.NewEntry = false
	} else if !strings.Contains(s.Display, sep) {
		s.Display += sep
	}
	return s
}

func operator(s State, op Operator, loc Locale) (State, error) {
	if !op.Valid() {
		return s, fmt.Errorf("%w: %d", ErrInvalidOperator, op)
	}

	// chaining: "2 × 3 +" evaluates "2 × 3" before taking the new operator
	if !s.NewEntry && s.Phase == PhaseOperatorPending {
		s = chain(s, loc)
	}

	s.Current = parseOrZero(s.Display, loc)
	s.Stored = s.Current
	s.Phase = PhaseOperatorPending
	s.Pending = op
	s.Expression = loc.Format(s.Stored) + " " + op.String()
	s.NewEntry = true
	return s, nil
}

// chain evaluates the pending operation without touching history. A result
// that is not finite leaves the error marker on the display, which the new
// operator then reads as 0.
func chain(s State, loc Locale) State {
	s.Current = parseOrZero(s.Display, loc)
	result := s.Pending.Apply(s.Stored, s.Current)
	if !finite(result) {
		return fail(s)
	}

	s.Stored = result
	s.Display = loc.Format(result)
	s.NewEntry = true
	return s
}

func equals(s State, loc Locale) State {
	switch s.Phase {
	case PhaseJustCalculated:
		s.Stored = parseOrZero(s.Display, loc)
		s.Expression = binaryExpression(loc, s.Stored, s.LastOperator, s.LastOperand)

		result := s.LastOperator.Apply(s.Stored, s.LastOperand)
		if !finite(result) {
			return fail(s)
		}

		s.Display = loc.Format(result)
		s.History = prependHistory(s.History, HistoryItem{Expression: s.Expression, Result: s.Display})
		s.NewEntry = true
		return s

	case PhaseOperatorPending:
		s.Current = parseOrZero(s.Display, loc)
		s.LastOperator = s.Pending
		s.LastOperand = s.Current
		s.Expression = binaryExpression(loc, s.Stored, s.Pending, s.Current)

		result := s.Pending.Apply(s.Stored, s.Current)
		if !finite(result) {
			return fail(s)
		}

		s.Stored = result
		s.Display = loc.Format(result)
		s.History = prependHistory(s.History, HistoryItem{Expression: s.Expression, Result: s.Display})
		s.Pending = OpNone
		s.Phase = PhaseJustCalculated
		s.NewEntry = true
		return s
	}

	return s
}

func clear(s State) State {
	history := s.History
	s = InitialState()
	s.History = history
	return s
}

func backspace(s State) State {
	if s.NewEntry || s.Display == "" {
		return s
	}

	n := utf8.RuneCountInString(s.Display)
	if n == 1 || (n == 2 && strings.HasPrefix(s.Display, "-")) {
		s.Display = "0"
		s.NewEntry = true
		return s
	}

	_, size := utf8.DecodeLastRuneInString(s.Display)
	s.Display = s.Display[:len(s.Display)-size]
	return s
}

func negate(s State, loc Locale) State {
	v, ok := loc.Parse(s.Display)
	if !ok || v == 0 {
		return s
	}
	s.Display = loc.Format(-v)
	return s
}

func percent(s State, loc Locale) State {
	v, ok := loc.Parse(s.Display)
	if !ok {
		return s
	}

	if s.Phase == PhaseOperatorPending {
		v = s.Stored * (v / 100)
	} else {
		v = v / 100
	}

	s.Display = loc.Format(v)
	s.NewEntry = true
	return s
}

// unary applies fn to the displayed value. Input outside the domain shows the
// error marker and leaves the expression as it was.
func unary(s State, loc Locale, wrap string, domain func(float64) bool, fn func(float64) float64) State {
	v, ok := loc.Parse(s.Display)
	if !ok {
		return s
	}
	if domain != nil && !domain(v) {
		s.Display = ErrorText
		s.NewEntry = true
		return s
	}

	s.Expression = fmt.Sprintf(wrap, loc.Format(v))
	result := fn(v)
	if !finite(result) {
		s.Display = ErrorText
		s.NewEntry = true
		return s
	}

	s.Display = loc.Format(result)
	s.NewEntry = true
	return s
}

func selectHistory(s State, item *HistoryItem, loc Locale) (State, error) {
	if item == nil {
		return s, ErrNilHistoryItem
	}

	s.Expression = item.Expression
	s.Display = item.Result
	if v, ok := loc.Parse(item.Result); ok {
		s.Stored = v
	}

	s.NewEntry = true
	s.Phase = PhaseIdle
	s.Pending = OpNone
	return s, nil
}

// fail puts the engine in the error display, ready for a fresh entry.
func fail(s State) State {
	s.Display = ErrorText
	s.NewEntry = true
	s.Phase = PhaseIdle
	s.Pending = OpNone
	return s
}

func binaryExpression(loc Locale, left float64, op Operator, right float64) string {
	return loc.Format(left) + " " + op.String() + " " + loc.Format(right) + " ="
}

func parseOrZero(text string, loc Locale) float64 {
	v, _ := loc.Parse(text)
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// View is the snapshot handed to the presentation layer after each input.
type View struct {
	Display    string        `json:"display"`
	Expression string        `json:"expression"`
	Phase      string        `json:"phase"`
	History    []HistoryItem `json:"history"`
}

// Engine drives the calculator one input at a time. It is not safe for
// concurrent use.
type Engine struct {
	state  State
	locale Locale
}

func NewEngine(loc Locale) *Engine {
	return &Engine{state: InitialState(), locale: loc}
}

// Apply runs one event. On error the state is left unchanged.
func (e *Engine) Apply(ev Event) (View, error) {
	next, err := Transition(e.state, ev, e.locale)
	if err != nil {
		return e.View(), err
	}
	e.state = next
	return e.View(), nil
}

func (e *Engine) View() View {
	history := make([]HistoryItem, len(e.state.History))
	copy(history, e.state.History)

	return View{
		Display:    e.state.Display,
		Expression: e.state.Expression,
		Phase:      e.state.Phase.String(),
		History:    history,
	}
}

func (e *Engine) State() State   { return e.state }
func (e *Engine) Locale() Locale { return e.locale }

// Value is the displayed number, or 0 when the display is not a number.
func (e *Engine) Value() float64 {
	return parseOrZero(e.state.Display, e.locale)
}

func (e *Engine) Digit(d string) (View, error) {
	return e.Apply(Event{Kind: EventDigit, Digit: d})
}

func (e *Engine) Decimal() View { return e.run(EventDecimal) }

func (e *Engine) Operator(op Operator) (View, error) {
	return e.Apply(Event{Kind: EventOperator, Operator: op})
}

func (e *Engine) Equals() View       { return e.run(EventEquals) }
func (e *Engine) Clear() View        { return e.run(EventClear) }
func (e *Engine) ClearEntry() View   { return e.run(EventClearEntry) }
func (e *Engine) Backspace() View    { return e.run(EventBackspace) }
func (e *Engine) Negate() View       { return e.run(EventNegate) }
func (e *Engine) Percent() View      { return e.run(EventPercent) }
func (e *Engine) Square() View       { return e.run(EventSquare) }
func (e *Engine) SquareRoot() View   { return e.run(EventSquareRoot) }
func (e *Engine) Inverse() View      { return e.run(EventInverse) }
func (e *Engine) ClearHistory() View { return e.run(EventClearHistory) }

func (e *Engine) SelectHistoryItem(item *HistoryItem) (View, error) {
	return e.Apply(Event{Kind: EventSelectHistory, Item: item})
}

func (e *Engine) SetDisplayText(text string, newEntry bool) (View, error) {
	return e.Apply(Event{Kind: EventSetDisplay, Text: text, NewEntry: newEntry})
}

func (e *Engine) run(kind EventKind) View {
	v, _ := e.Apply(Event{Kind: kind})
	return v
}
