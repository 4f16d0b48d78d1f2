package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/petr-muller/tixboard/internal/board"
)

const (
	// minColumnWidth is the narrowest a column is rendered, borders included
	minColumnWidth = 28
	columnGap      = 1
)

var (
	statusGlyphs = map[board.Status]string{
		board.StatusBacklog:    "◌",
		board.StatusTodo:       "○",
		board.StatusInProgress: "◐",
		board.StatusDone:       "●",
		board.StatusCanceled:   "⊘",
	}

	priorityGlyphs = map[board.Priority]string{
		board.PriorityNone:   "···",
		board.PriorityLow:    "▮▯▯",
		board.PriorityMedium: "▮▮▯",
		board.PriorityHigh:   "▮▮▮",
		board.PriorityUrgent: "!",
	}

	statusColors = map[board.Status]lipgloss.Color{
		board.StatusBacklog:    lipgloss.Color("245"),
		board.StatusTodo:       lipgloss.Color("252"),
		board.StatusInProgress: lipgloss.Color("220"),
		board.StatusDone:       lipgloss.Color("99"),
		board.StatusCanceled:   lipgloss.Color("240"),
	}

	headerStyle    = lipgloss.NewStyle().Bold(true)
	countStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	idStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
	tagStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	urgentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("202")).Bold(true)
	badgeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	selectedBorder = lipgloss.Color("205")
)

// StatusGlyph returns the symbol drawn for a status, "?" for unknown statuses
func StatusGlyph(s board.Status) string {
	if glyph, ok := statusGlyphs[s]; ok {
		return glyph
	}
	return "?"
}

// PriorityGlyph returns the symbol drawn for a priority, "?" for unknown priorities
func PriorityGlyph(p board.Priority) string {
	if glyph, ok := priorityGlyphs[p]; ok {
		return glyph
	}
	return "?"
}

// CardFunc prepares a ticket for display
type CardFunc func(board.Ticket) board.Card

// Focus identifies the selected card; a negative column selects nothing
type Focus struct {
	Column int
	Row    int
}

// NoFocus renders the board without a selected card
var NoFocus = Focus{Column: -1}

// ColumnWidth returns the width of a single column when the board has
// columns columns and the terminal is width cells wide
func ColumnWidth(width, columns int) int {
	if columns == 0 || width <= 0 {
		return minColumnWidth
	}
	w := (width - columnGap*(columns-1)) / columns
	if w < minColumnWidth {
		return minColumnWidth
	}
	return w
}

// VisibleRange returns the half-open range of columns that fit into width,
// keeping the focused column in view
func VisibleRange(width, columns, focused int) (int, int) {
	if columns == 0 {
		return 0, 0
	}
	fit := columns
	if width > 0 {
		fit = (width + columnGap) / (minColumnWidth + columnGap)
		if fit < 1 {
			fit = 1
		}
		if fit > columns {
			fit = columns
		}
	}

	start := 0
	if focused >= fit {
		start = focused - fit + 1
	}
	return start, start + fit
}

// RenderHeader renders the title line of a column: glyph, label and count
func RenderHeader(mode board.GroupMode, column board.Column) string {
	var glyph string
	switch mode {
	case board.GroupByStatus:
		glyph = lipgloss.NewStyle().Foreground(statusColors[board.Status(column.Key)]).Render(StatusGlyph(board.Status(column.Key)))
	case board.GroupByPriority:
		for _, p := range board.Priorities {
			if p.Key() == column.Key {
				glyph = PriorityGlyph(p)
			}
		}
	case board.GroupByAssignee:
		glyph = badgeStyle.Render(board.Initials(column.Key))
	}

	parts := []string{}
	if glyph != "" {
		parts = append(parts, glyph)
	}
	parts = append(parts, headerStyle.Render(column.Label), countStyle.Render(fmt.Sprintf("%d", len(column.Tickets))))
	return strings.Join(parts, " ")
}

// RenderCard renders one ticket card of the given outer width
func RenderCard(card board.Card, width int, selected bool) string {
	t := card.Ticket
	inner := width - cardStyle.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	top := idStyle.Render(t.ID)
	if card.ShowAssignee {
		badge := badgeStyle.Render(card.Initials)
		gap := inner - lipgloss.Width(top) - lipgloss.Width(badge)
		if gap < 1 {
			gap = 1
		}
		top = top + strings.Repeat(" ", gap) + badge
	}

	title := t.Title
	if card.ShowStatus {
		title = lipgloss.NewStyle().Foreground(statusColors[t.Status]).Render(StatusGlyph(t.Status)) + " " + title
	}
	title = titleStyle.Width(inner).Render(title)

	var bottom []string
	if card.ShowPriority {
		glyph := PriorityGlyph(t.Priority)
		if t.Priority == board.PriorityUrgent {
			glyph = urgentStyle.Render(glyph)
		}
		bottom = append(bottom, glyph)
	}
	if t.Tag != "" {
		bottom = append(bottom, tagStyle.Render("• "+t.Tag))
	}

	lines := []string{top, title}
	if len(bottom) > 0 {
		lines = append(lines, strings.Join(bottom, " "))
	}

	style := cardStyle.Width(inner + cardStyle.GetHorizontalPadding())
	if selected {
		style = style.BorderForeground(selectedBorder)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderColumn renders the header and cards of a column
func RenderColumn(mode board.GroupMode, column board.Column, cards CardFunc, width int, selectedRow int) string {
	parts := []string{RenderHeader(mode, column)}
	if len(column.Tickets) == 0 {
		parts = append(parts, emptyStyle.Render("No tickets"))
	}
	for i, t := range column.Tickets {
		parts = append(parts, RenderCard(cards(t), width, i == selectedRow))
	}
	return lipgloss.NewStyle().Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// RenderBoard renders the columns side by side, scrolled so the focused
// column is visible
func RenderBoard(mode board.GroupMode, columns []board.Column, cards CardFunc, width int, focus Focus) string {
	if len(columns) == 0 {
		return emptyStyle.Render("No tickets available")
	}

	focused := focus.Column
	if focused < 0 {
		focused = 0
	}
	start, end := VisibleRange(width, len(columns), focused)
	colWidth := ColumnWidth(width, end-start)

	var rendered []string
	for i := start; i < end; i++ {
		row := -1
		if i == focus.Column {
			row = focus.Row
		}
		if len(rendered) > 0 {
			rendered = append(rendered, strings.Repeat(" ", columnGap))
		}
		rendered = append(rendered, RenderColumn(mode, columns[i], cards, colWidth, row))
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if start > 0 || end < len(columns) {
		out += "\n" + countStyle.Render(fmt.Sprintf("Columns %d-%d of %d", start+1, end, len(columns)))
	}
	return out
}
