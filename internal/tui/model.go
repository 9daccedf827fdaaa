// Package tui implements the interactive ledger dashboard.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/lifeledger/internal/ledger"
	"github.com/Veraticus/lifeledger/internal/model"
	"github.com/Veraticus/lifeledger/internal/service"
	"github.com/Veraticus/lifeledger/internal/tui/themes"
)

// Pane is the list that receives cursor movement.
type Pane int

const (
	PaneTransactions Pane = iota
	PaneTodos
)

// Model is the dashboard state.
type Model struct {
	ctx          context.Context
	svc          service.Ledger
	lastErr      error
	keymap       KeyMap
	theme        themes.Theme
	status       string
	help         help.Model
	views        []string
	transactions []model.Transaction
	todos        []model.Todo
	viewIndex    int
	cursor       int
	pane         Pane
	width        int
	height       int
	showHelp     bool
	quitting     bool
}

// Option configures a Model.
type Option func(*Model)

// WithTheme sets the starting theme.
func WithTheme(t themes.Theme) Option {
	return func(m *Model) {
		m.theme = t
	}
}

// WithKeyMap replaces the default bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) {
		m.keymap = k
	}
}

// New builds a dashboard over svc.
func New(ctx context.Context, svc service.Ledger, opts ...Option) Model {
	m := Model{
		ctx:    ctx,
		svc:    svc,
		keymap: DefaultKeyMap(),
		theme:  themes.Default,
		help:   help.New(),
		width:  80,
		height: 24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ledgerChangedMsg:
		m.status = msg.status
		m.lastErr = nil
		m.refresh()
		return m, nil

	case noChangeMsg:
		m.status = msg.status
		m.lastErr = nil
		return m, nil

	case errorMsg:
		m.lastErr = msg.err
		m.status = ""
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, m.keymap.ToggleTheme):
		m.theme = themes.Toggle(m.theme)

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.NextView):
		m.viewIndex = (m.viewIndex + 1) % len(m.views)
		m.cursor = 0
		m.refresh()

	case key.Matches(msg, m.keymap.PrevView):
		m.viewIndex = (m.viewIndex - 1 + len(m.views)) % len(m.views)
		m.cursor = 0
		m.refresh()

	case key.Matches(msg, m.keymap.HomeView):
		m.viewIndex = 0
		m.cursor = 0
		m.refresh()

	case key.Matches(msg, m.keymap.SwitchPan):
		if m.pane == PaneTransactions {
			m.pane = PaneTodos
		} else {
			m.pane = PaneTransactions
		}
		m.cursor = 0
		m.clampCursor()

	case key.Matches(msg, m.keymap.Undo):
		return m, m.undo()

	case key.Matches(msg, m.keymap.Redo):
		return m, m.redo()

	case key.Matches(msg, m.keymap.Toggle):
		if m.pane == PaneTodos && len(m.todos) > 0 {
			return m, m.toggleTodo(m.todos[m.cursor].ID)
		}

	case key.Matches(msg, m.keymap.Delete):
		switch {
		case m.pane == PaneTodos && len(m.todos) > 0:
			return m, m.deleteTodo(m.todos[m.cursor].ID)
		case m.pane == PaneTransactions && len(m.transactions) > 0:
			return m, m.deleteTransaction(m.transactions[m.cursor].ID)
		}
	}
	return m, nil
}

// refresh reloads everything shown from the ledger, keeping the current view
// when its account still exists.
func (m *Model) refresh() {
	current := ledger.HomeView
	if m.viewIndex < len(m.views) {
		current = m.views[m.viewIndex]
	}

	m.views = []string{ledger.HomeView}
	m.viewIndex = 0
	for _, a := range m.svc.Accounts() {
		m.views = append(m.views, a.ID)
		if a.ID == current {
			m.viewIndex = len(m.views) - 1
		}
	}

	m.transactions = ledger.SortedByDateDesc(m.svc.TransactionsForView(m.CurrentView()))
	m.todos = m.svc.Todos(ledger.OrderDueDate)
	m.clampCursor()
}

func (m *Model) clampCursor() {
	m.cursor = max(0, min(m.cursor, m.listLen()-1))
}

func (m Model) listLen() int {
	if m.pane == PaneTodos {
		return len(m.todos)
	}
	return len(m.transactions)
}

// CurrentView returns the id of the current view: ledger.HomeView or an
// account id.
func (m Model) CurrentView() string {
	return m.views[m.viewIndex]
}

// Pane returns the focused list.
func (m Model) Pane() Pane {
	return m.pane
}

// Cursor returns the selected row in the focused list.
func (m Model) Cursor() int {
	return m.cursor
}

// Status returns the last status line, if any.
func (m Model) Status() string {
	return m.status
}

// Err returns the error of the last failed write.
func (m Model) Err() error {
	return m.lastErr
}
