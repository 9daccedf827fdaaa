package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/lifeledger/internal/achievement"
	"github.com/Veraticus/lifeledger/internal/cli"
	"github.com/Veraticus/lifeledger/internal/ledger"
	"github.com/Veraticus/lifeledger/internal/model"
	"github.com/Veraticus/lifeledger/internal/tui/themes"
)

// wideLayout is the width from which the lists sit side by side.
const wideLayout = 100

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderTabs(),
		m.renderSummary(),
		m.renderLists(),
		m.renderStatusBar(),
	}
	if m.showHelp {
		sections = append(sections, m.help.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	state := m.svc.Achievements()
	title := m.theme.Title.Render(cli.LedgerIcon + " lifeledger")
	streak := m.theme.Subtitle.Render(fmt.Sprintf("%s %d-day streak · %d pts · rocket %s",
		cli.RocketIcon, state.CurrentStreak, state.TotalPoints, achievement.RocketLevel(state.CurrentStreak)))
	today := m.theme.Subtitle.Render(cli.CalendarIcon + " " + m.svc.Today())
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", streak, "  ", today)
}

func (m Model) renderTabs() string {
	names := map[string]string{ledger.HomeView: "全部"}
	for _, a := range m.svc.Accounts() {
		names[a.ID] = a.Name
	}

	tabs := make([]string, 0, len(m.views))
	for i, id := range m.views {
		label := " " + names[id] + " "
		if i == m.viewIndex {
			tabs = append(tabs, m.theme.Selected.Render(label))
		} else {
			tabs = append(tabs, m.theme.Subtitle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderSummary() string {
	view := m.CurrentView()
	sum := m.svc.Summary(view)

	var lines []string
	lines = append(lines, fmt.Sprintf("收入 %s   支出 %s   結餘 %s",
		m.amount(sum.Income), m.amount(sum.Expense.Neg()), m.amount(sum.Balance)))

	if view == ledger.HomeView {
		var parts []string
		for _, b := range m.svc.Balances() {
			parts = append(parts, b.Account.Name+" "+m.amount(b.Balance))
		}
		lines = append(lines, strings.Join(parts, "   "))
	} else {
		lines = append(lines, fmt.Sprintf("轉入 %s   轉出 %s   餘額 %s",
			m.amount(sum.TransferIn), m.amount(sum.TransferOut.Neg()), m.amount(m.svc.BalanceOf(view))))
	}

	return m.theme.RoundedBox.Width(max(m.width-2, 20)).Render(strings.Join(lines, "\n"))
}

func (m Model) renderLists() string {
	if m.width >= wideLayout {
		half := m.width/2 - 2
		return lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderTransactions(half),
			m.renderTodos(half),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTransactions(m.width-2),
		m.renderTodos(m.width-2),
	)
}

// listHeight is the number of rows each list may show.
func (m Model) listHeight() int {
	rows := m.height - 12
	if m.width < wideLayout {
		rows /= 2
	}
	return max(rows, 3)
}

func (m Model) renderTransactions(width int) string {
	active := m.pane == PaneTransactions
	lines := []string{m.theme.Bold.Render("Transactions")}
	if len(m.transactions) == 0 {
		lines = append(lines, m.theme.Subtitle.Render("No transactions yet"))
	}

	start, end := m.window(len(m.transactions), active)
	for i := start; i < end; i++ {
		line := m.formatTransaction(m.transactions[i], width-4)
		if active && i == m.cursor {
			line = m.theme.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return m.box(active, width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderTodos(width int) string {
	active := m.pane == PaneTodos
	today := m.svc.Today()
	lines := []string{m.theme.Bold.Render("Todos")}
	if len(m.todos) == 0 {
		lines = append(lines, m.theme.Subtitle.Render("Nothing to do"))
	}

	start, end := m.window(len(m.todos), active)
	for i := start; i < end; i++ {
		line := cli.FormatTodo(m.todos[i], today)
		if active && i == m.cursor {
			line = m.theme.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return m.box(active, width).Render(strings.Join(lines, "\n"))
}

// window returns the visible slice of a list, following the cursor when the
// list is focused.
func (m Model) window(n int, active bool) (int, int) {
	rows := m.listHeight()
	start := 0
	if active && m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	return start, min(n, start+rows)
}

func (m Model) box(active bool, width int) lipgloss.Style {
	if active {
		return m.theme.ActiveBox.Width(width)
	}
	return m.theme.RoundedBox.Width(width)
}

func (m Model) formatTransaction(t model.Transaction, width int) string {
	amount := decimal.NewFromFloat(t.Amount)
	label := t.Name
	switch t.Type {
	case model.TypeExpense:
		amount = amount.Neg()
	case model.TypeTransfer:
		label = fmt.Sprintf("%s → %s", t.Account, t.ToAccount)
		if t.Name != "" {
			label += " " + t.Name
		}
		if t.Account == m.CurrentView() {
			amount = amount.Neg()
		}
	}

	left := fmt.Sprintf("%s  %s  %s", t.Date, label, m.theme.Subtitle.Render(t.Category))
	right := m.amount(amount)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) amount(d decimal.Decimal) string {
	if d.IsNegative() {
		return m.theme.Negative.Render(cli.FormatAmount(d))
	}
	return m.theme.Positive.Render(cli.FormatAmount(d))
}

func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.lastErr != nil:
		left = m.theme.StatusError.Render(cli.ErrorIcon + " " + m.lastErr.Error())
	case m.status != "":
		left = m.theme.StatusSuccess.Render(m.status)
	}

	var hints []string
	if m.svc.CanUndo() {
		hints = append(hints, "undo: "+m.svc.UndoDescription())
	}
	if m.svc.CanRedo() {
		hints = append(hints, "redo: "+m.svc.RedoDescription())
	}
	right := m.theme.Subtitle.Render(strings.Join(hints, " · "))

	bar := left
	if right != "" {
		bar = lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	}
	if !m.showHelp {
		bar = lipgloss.JoinVertical(lipgloss.Left, bar, m.help.View(m.keymap))
	}
	return bar
}

// streakRows is the height of the rendered star arc.
const streakRows = 6

// RenderStreak draws the stars of a streak along their arc, width columns
// wide, followed by a line with the streak figures.
func RenderStreak(state model.AchievementState, width int, theme themes.Theme) string {
	width = max(width, 10)
	grid := make([][]rune, streakRows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range achievement.Stars(state.CurrentStreak) {
		col := int(p.X * float64(width-1))
		// Y runs from 30 at the apex to 50 at the ends.
		row := int((p.Y - 30) / 20 * float64(streakRows-1))
		row = max(0, min(row, streakRows-1))
		grid[row][col] = '★'
	}

	lines := make([]string, 0, streakRows+1)
	for _, r := range grid {
		lines = append(lines, theme.Star.Render(strings.TrimRight(string(r), " ")))
	}
	lines = append(lines, theme.Bold.Render(fmt.Sprintf("%s %d days (longest %d) · %d points · %d records · rocket %s",
		cli.RocketIcon, state.CurrentStreak, state.LongestStreak, state.TotalPoints, state.TotalRecords,
		achievement.RocketLevel(state.CurrentStreak))))
	return strings.Join(lines, "\n")
}
