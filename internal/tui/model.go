package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/GreyStekl0/DotCalc/internal"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const screenWidth = 34

// calculatorKeys are typed straight into the engine.
const calculatorKeys = "0123456789.,+-*/x%"

type panel int

const (
	panelHistory panel = iota
	panelMemory
)

// memoryDoneMsg reports the end of a memory operation run as a tea.Cmd.
type memoryDoneMsg struct {
	op  string
	err error
}

// Model is the interactive calculator. The memory service is optional; when
// nil the memory keys do nothing.
type Model struct {
	ctx    context.Context
	engine *internal.Engine
	memory *internal.MemoryService

	keys   keyMap
	help   help.Model
	panel  panel
	cursor int
	status string
	width  int
}

func NewModel(ctx context.Context, engine *internal.Engine, memory *internal.MemoryService) Model {
	return Model{
		ctx:    ctx,
		engine: engine,
		memory: memory,
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  screenWidth,
	}
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, engine *internal.Engine, memory *internal.MemoryService) error {
	p := tea.NewProgram(NewModel(ctx, engine, memory), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case memoryDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s: %v", msg.op, msg.err)
		} else {
			m.status = ""
		}
		m.cursor = clamp(m.cursor, m.panelLen())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Equals):
		m.engine.Equals()
	case key.Matches(msg, m.keys.Backspace):
		m.engine.Backspace()
	case key.Matches(msg, m.keys.ClearEntry):
		m.engine.ClearEntry()
	case key.Matches(msg, m.keys.Clear):
		m.engine.Clear()
	case key.Matches(msg, m.keys.Negate):
		m.engine.Negate()
	case key.Matches(msg, m.keys.Square):
		m.engine.Square()
	case key.Matches(msg, m.keys.SquareRoot):
		m.engine.SquareRoot()
	case key.Matches(msg, m.keys.Inverse):
		m.engine.Inverse()
	case key.Matches(msg, m.keys.ClearHistory):
		m.engine.ClearHistory()
		m.cursor = clamp(m.cursor, m.panelLen())
	case key.Matches(msg, m.keys.SwitchPanel):
		if m.panel == panelHistory {
			m.panel = panelMemory
		} else {
			m.panel = panelHistory
		}
		m.cursor = 0
	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, m.panelLen())
	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, m.panelLen())
	case key.Matches(msg, m.keys.Use):
		m.useSelected()
	case key.Matches(msg, m.keys.MemoryRecall):
		m.recall()
	case key.Matches(msg, m.keys.MemoryStore):
		return m, m.valueCmd("store", func(ctx context.Context, svc *internal.MemoryService, v float64) error {
			return svc.Store(ctx, v)
		})
	case key.Matches(msg, m.keys.MemoryAdd):
		return m, m.adjustCmd("add", 1)
	case key.Matches(msg, m.keys.MemorySub):
		return m, m.adjustCmd("subtract", -1)
	case key.Matches(msg, m.keys.MemoryClear):
		return m, m.memoryCmd("clear", func(ctx context.Context, svc *internal.MemoryService) error {
			_, err := svc.Clear(ctx)
			return err
		})
	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.selectedSlot(); ok {
			return m, m.memoryCmd("delete", func(ctx context.Context, svc *internal.MemoryService) error {
				return svc.Delete(ctx, item.ID)
			})
		}
	default:
		m.typeKey(msg.String())
	}

	return m, nil
}

func (m *Model) typeKey(s string) {
	if len(s) != 1 || !strings.Contains(calculatorKeys, s) {
		return
	}

	ev, err := internal.ParseKey(s)
	if err != nil {
		return
	}
	if _, err := m.engine.Apply(ev); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) useSelected() {
	switch m.panel {
	case panelHistory:
		history := m.engine.View().History
		if m.cursor < len(history) {
			item := history[m.cursor]
			_, _ = m.engine.SelectHistoryItem(&item)
		}
	case panelMemory:
		if item, ok := m.selectedSlot(); ok {
			_, _ = m.engine.SetDisplayText(item.DisplayValue, true)
		}
	}
}

func (m *Model) recall() {
	if m.memory == nil {
		return
	}
	v, ok := m.memory.Recall()
	if !ok {
		m.status = "memory is empty"
		return
	}
	_, _ = m.engine.SetDisplayText(m.engine.Locale().Format(v), true)
}

// adjustCmd applies M+ or M− to the selected slot when the memory panel has
// focus, otherwise to the top slot.
func (m Model) adjustCmd(op string, sign float64) tea.Cmd {
	item, selected := m.selectedSlot()

	return m.valueCmd(op, func(ctx context.Context, svc *internal.MemoryService, v float64) error {
		switch {
		case selected && sign > 0:
			return svc.AddAt(ctx, item.ID, v)
		case selected:
			return svc.SubtractAt(ctx, item.ID, v)
		case sign > 0:
			return svc.Add(ctx, v)
		default:
			return svc.Subtract(ctx, v)
		}
	})
}

// valueCmd runs fn with the displayed number. Nothing happens while the
// display is not a number.
func (m Model) valueCmd(op string, fn func(context.Context, *internal.MemoryService, float64) error) tea.Cmd {
	v, ok := m.engine.Locale().Parse(m.engine.View().Display)
	if !ok {
		return nil
	}
	return m.memoryCmd(op, func(ctx context.Context, svc *internal.MemoryService) error {
		return fn(ctx, svc, v)
	})
}

func (m Model) memoryCmd(op string, fn func(context.Context, *internal.MemoryService) error) tea.Cmd {
	if m.memory == nil {
		return nil
	}

	ctx, svc := m.ctx, m.memory
	return func() tea.Msg {
		return memoryDoneMsg{op: op, err: fn(ctx, svc)}
	}
}

func (m Model) selectedSlot() (internal.MemoryItem, bool) {
	if m.panel != panelMemory || m.memory == nil {
		return internal.MemoryItem{}, false
	}
	items := m.memory.Items()
	if m.cursor >= len(items) {
		return internal.MemoryItem{}, false
	}
	return items[m.cursor], true
}

func (m Model) panelLen() int {
	if m.panel == panelMemory {
		if m.memory == nil {
			return 0
		}
		return len(m.memory.Items())
	}
	return len(m.engine.View().History)
}

func (m Model) View() string {
	view := m.engine.View()
	inner := screenWidth - 2

	screen := lipgloss.JoinVertical(lipgloss.Right,
		ExpressionStyle.Width(inner).Render(view.Expression),
		DisplayStyle.Width(inner).Render(view.Display),
	)

	var b strings.Builder
	b.WriteString(ScreenStyle.Render(screen))
	b.WriteString("\n\n")
	b.WriteString(m.panelTitles())
	b.WriteString("\n")
	b.WriteString(m.panelBody(view))

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.status))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) panelTitles() string {
	history, memory := PanelInactiveTitleStyle, PanelInactiveTitleStyle
	if m.panel == panelHistory {
		history = PanelTitleStyle
	} else {
		memory = PanelTitleStyle
	}
	return history.Render("History") + "  " + memory.Render("Memory")
}

func (m Model) panelBody(view internal.View) string {
	var lines []string

	switch m.panel {
	case panelHistory:
		if len(view.History) == 0 {
			return EmptyStyle.Render("no history yet")
		}
		for _, item := range view.History {
			lines = append(lines, item.Expression+" "+item.Result)
		}
	case panelMemory:
		if m.memory == nil {
			return EmptyStyle.Render("memory unavailable")
		}
		items := m.memory.Items()
		if len(items) == 0 {
			return EmptyStyle.Render("nothing saved in memory")
		}
		for _, item := range items {
			lines = append(lines, item.DisplayValue)
		}
	}

	for i, line := range lines {
		if i == m.cursor {
			lines[i] = SelectedItemStyle.Render(line)
		} else {
			lines[i] = ItemStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
