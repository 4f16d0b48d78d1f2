package mappings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/petr-muller/tixboard/internal/board"
)

func TestStatusFor(t *testing.T) {
	m := NewMappings()

	tests := []struct {
		name     string
		jira     string
		expected board.Status
	}{
		{name: "exact match", jira: "In Progress", expected: board.StatusInProgress},
		{name: "case-insensitive match", jira: "closed", expected: board.StatusDone},
		{name: "unmapped passes through", jira: "Blocked", expected: board.Status("Blocked")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.StatusFor(tt.jira); got != tt.expected {
				t.Errorf("expected status %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestPriorityFor(t *testing.T) {
	m := NewMappings()

	tests := []struct {
		jira     string
		expected board.Priority
	}{
		{jira: "Blocker", expected: board.PriorityUrgent},
		{jira: "Major", expected: board.PriorityHigh},
		{jira: "Normal", expected: board.PriorityMedium},
		{jira: "Minor", expected: board.PriorityLow},
		{jira: "Whatever", expected: board.PriorityNone},
	}

	for _, tt := range tests {
		t.Run(tt.jira, func(t *testing.T) {
			if got := m.PriorityFor(tt.jira); got != tt.expected {
				t.Errorf("expected priority %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestLoadMappings(t *testing.T) {
	t.Run("missing file yields built-in mappings", func(t *testing.T) {
		m, err := LoadMappings(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.StatusFor("To Do") != board.StatusTodo {
			t.Errorf("built-in status mapping missing")
		}
	})

	t.Run("file entries override built-ins", func(t *testing.T) {
		dir := t.TempDir()
		content := "statusToBoard:\n  Blocked: Todo\n  Closed: Canceled\npriorityToBoard:\n  P1: 4\n"
		if err := os.WriteFile(filepath.Join(dir, "mappings.yaml"), []byte(content), 0644); err != nil {
			t.Fatalf("cannot write mappings: %v", err)
		}

		m, err := LoadMappings(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := m.StatusFor("Blocked"); got != board.StatusTodo {
			t.Errorf("expected Todo, got %q", got)
		}
		if got := m.StatusFor("Closed"); got != board.StatusCanceled {
			t.Errorf("expected Canceled, got %q", got)
		}
		if got := m.PriorityFor("P1"); got != board.PriorityUrgent {
			t.Errorf("expected urgent, got %d", got)
		}
		if got := m.PriorityFor("Major"); got != board.PriorityHigh {
			t.Errorf("built-in priority mapping lost, got %d", got)
		}
	})

	t.Run("invalid file is an error", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "mappings.yaml"), []byte("statusToBoard: ["), 0644); err != nil {
			t.Fatalf("cannot write mappings: %v", err)
		}
		if _, err := LoadMappings(dir); err == nil {
			t.Errorf("expected an error")
		}
	})
}

func TestSaveMappingsRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config")
	m := NewMappings()
	m.SetStatusMapping("Review", board.StatusInProgress)

	if err := m.SaveMappings(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := LoadMappings(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := loaded.StatusFor("Review"); got != board.StatusInProgress {
		t.Errorf("expected In progress, got %q", got)
	}
}
