package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/petr-muller/tixboard/internal/board"
)

func cardsFor(users []board.User, mode board.GroupMode) CardFunc {
	return func(t board.Ticket) board.Card {
		return board.NewCard(t, users, mode)
	}
}

func TestRenderHeader(t *testing.T) {
	tests := []struct {
		name     string
		mode     board.GroupMode
		column   board.Column
		expected []string
	}{
		{
			name:     "status",
			mode:     board.GroupByStatus,
			column:   board.Column{Key: "Done", Label: "Done", Tickets: make([]board.Ticket, 3)},
			expected: []string{"●", "Done", "3"},
		},
		{
			name:     "priority",
			mode:     board.GroupByPriority,
			column:   board.Column{Key: "4", Label: "Urgent"},
			expected: []string{"!", "Urgent", "0"},
		},
		{
			name:     "assignee",
			mode:     board.GroupByAssignee,
			column:   board.Column{Key: "Yogesh", Label: "Yogesh", Tickets: make([]board.Ticket, 1)},
			expected: []string{"YO", "Yogesh", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := RenderHeader(tt.mode, tt.column)
			for _, expected := range tt.expected {
				if !strings.Contains(header, expected) {
					t.Errorf("header %q is missing %q", header, expected)
				}
			}
		})
	}
}

func TestRenderCard(t *testing.T) {
	users := []board.User{{ID: "usr-1", Name: "Anoop Sharma"}}
	ticket := board.Ticket{ID: "CAM-7", Title: "Short", Status: board.StatusInProgress, Priority: board.PriorityHigh, UserID: "usr-1", Tag: "Bug"}

	tests := []struct {
		name      string
		mode      board.GroupMode
		present   []string
		notExpect []string
	}{
		{
			name:      "status grouping omits the status glyph",
			mode:      board.GroupByStatus,
			present:   []string{"CAM-7", "AN", "Short", "▮▮▮", "Bug"},
			notExpect: []string{"◐"},
		},
		{
			name:      "priority grouping omits the priority glyph",
			mode:      board.GroupByPriority,
			present:   []string{"CAM-7", "AN", "◐", "Short", "Bug"},
			notExpect: []string{"▮▮▮"},
		},
		{
			name:      "assignee grouping omits the initials",
			mode:      board.GroupByAssignee,
			present:   []string{"CAM-7", "◐", "Short", "▮▮▮", "Bug"},
			notExpect: []string{"AN "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderCard(board.NewCard(ticket, users, tt.mode), 40, false)
			for _, expected := range tt.present {
				if !strings.Contains(out, expected) {
					t.Errorf("card is missing %q:\n%s", expected, out)
				}
			}
			for _, unexpected := range tt.notExpect {
				if strings.Contains(out, unexpected) {
					t.Errorf("card should not contain %q:\n%s", unexpected, out)
				}
			}
			if w := lipgloss.Width(out); w != 40 {
				t.Errorf("expected card width 40, got %d", w)
			}
		})
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name          string
		width         int
		columns       int
		focused       int
		expectedStart int
		expectedEnd   int
	}{
		{name: "everything fits", width: 200, columns: 5, focused: 0, expectedStart: 0, expectedEnd: 5},
		{name: "unknown width shows all", width: 0, columns: 5, focused: 4, expectedStart: 0, expectedEnd: 5},
		{name: "narrow terminal", width: 60, columns: 5, focused: 0, expectedStart: 0, expectedEnd: 2},
		{name: "narrow terminal scrolls to focus", width: 60, columns: 5, focused: 4, expectedStart: 3, expectedEnd: 5},
		{name: "tiny terminal shows one column", width: 10, columns: 5, focused: 2, expectedStart: 2, expectedEnd: 3},
		{name: "no columns", width: 100, columns: 0, focused: 0, expectedStart: 0, expectedEnd: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := VisibleRange(tt.width, tt.columns, tt.focused)
			if start != tt.expectedStart || end != tt.expectedEnd {
				t.Errorf("expected [%d, %d), got [%d, %d)", tt.expectedStart, tt.expectedEnd, start, end)
			}
		})
	}
}

func TestRenderBoard(t *testing.T) {
	users := []board.User{{ID: "usr-1", Name: "Anoop Sharma"}}
	columns := []board.Column{
		{Key: "Backlog", Label: "Backlog", Tickets: []board.Ticket{}},
		{Key: "Todo", Label: "Todo", Tickets: []board.Ticket{{ID: "CAM-1", Title: "One", Status: board.StatusTodo, UserID: "usr-1"}}},
	}

	out := RenderBoard(board.GroupByStatus, columns, cardsFor(users, board.GroupByStatus), 120, NoFocus)
	for _, expected := range []string{"Backlog 0", "Todo 1", "No tickets", "CAM-1"} {
		if !strings.Contains(out, expected) {
			t.Errorf("board is missing %q:\n%s", expected, out)
		}
	}
	if strings.Contains(out, "Columns") {
		t.Errorf("all columns fit, no scroll indicator expected:\n%s", out)
	}

	narrow := RenderBoard(board.GroupByStatus, columns, cardsFor(users, board.GroupByStatus), 30, Focus{Column: 1})
	if !strings.Contains(narrow, "Columns 2-2 of 2") || strings.Contains(narrow, "Backlog") {
		t.Errorf("narrow board should scroll to the focused column:\n%s", narrow)
	}

	if empty := RenderBoard(board.GroupByAssignee, nil, cardsFor(nil, board.GroupByAssignee), 80, NoFocus); !strings.Contains(empty, "No tickets available") {
		t.Errorf("unexpected empty board rendering: %q", empty)
	}
}
