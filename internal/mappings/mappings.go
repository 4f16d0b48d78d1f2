package mappings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v2"

	"github.com/petr-muller/tixboard/internal/board"
)

const (
	mappingsFileName = "mappings.yaml"
)

// Mappings translate Jira field values into board values
type Mappings struct {
	// StatusToBoard maps Jira status names to board statuses
	StatusToBoard map[string]board.Status `yaml:"statusToBoard"`
	// PriorityToBoard maps Jira priority names to board priority codes
	PriorityToBoard map[string]board.Priority `yaml:"priorityToBoard"`
}

// NewMappings creates mappings holding the built-in translations
func NewMappings() *Mappings {
	return &Mappings{
		StatusToBoard: map[string]board.Status{
			"New":         board.StatusBacklog,
			"Backlog":     board.StatusBacklog,
			"To Do":       board.StatusTodo,
			"ASSIGNED":    board.StatusTodo,
			"In Progress": board.StatusInProgress,
			"POST":        board.StatusInProgress,
			"MODIFIED":    board.StatusInProgress,
			"ON_QA":       board.StatusInProgress,
			"Verified":    board.StatusDone,
			"Closed":      board.StatusDone,
			"Done":        board.StatusDone,
			"Won't Do":    board.StatusCanceled,
			"Obsolete":    board.StatusCanceled,
		},
		PriorityToBoard: map[string]board.Priority{
			"Undefined": board.PriorityNone,
			"Minor":     board.PriorityLow,
			"Low":       board.PriorityLow,
			"Normal":    board.PriorityMedium,
			"Medium":    board.PriorityMedium,
			"Major":     board.PriorityHigh,
			"High":      board.PriorityHigh,
			"Critical":  board.PriorityUrgent,
			"Blocker":   board.PriorityUrgent,
		},
	}
}

// LoadMappings loads mappings from configDir, returns the built-in mappings if the file doesn't exist.
// Entries in the file extend and override the built-in ones.
func LoadMappings(configDir string) (*Mappings, error) {
	mappings := NewMappings()
	mappingsPath := Path(configDir)

	data, err := os.ReadFile(mappingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return mappings, nil
		}
		return nil, fmt.Errorf("failed to read mappings file: %w", err)
	}

	var overrides Mappings
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse mappings file: %w", err)
	}

	for name, status := range overrides.StatusToBoard {
		mappings.SetStatusMapping(name, status)
	}
	for name, priority := range overrides.PriorityToBoard {
		mappings.SetPriorityMapping(name, priority)
	}

	return mappings, nil
}

// Path returns the location of the mappings file inside configDir
func Path(configDir string) string {
	return filepath.Join(configDir, mappingsFileName)
}

// SaveMappings writes the mappings into configDir
func (m *Mappings) SaveMappings(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal mappings: %w", err)
	}

	if err := atomic.WriteFile(Path(configDir), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write mappings file: %w", err)
	}

	return nil
}

// StatusFor returns the board status for a Jira status. Unmapped names pass
// through unchanged, so the board drops them under status grouping.
func (m *Mappings) StatusFor(name string) board.Status {
	if status, ok := m.StatusToBoard[name]; ok {
		return status
	}
	for jiraName, status := range m.StatusToBoard {
		if strings.EqualFold(jiraName, name) {
			return status
		}
	}
	return board.Status(name)
}

// PriorityFor returns the board priority for a Jira priority, PriorityNone if not mapped
func (m *Mappings) PriorityFor(name string) board.Priority {
	if priority, ok := m.PriorityToBoard[name]; ok {
		return priority
	}
	return board.PriorityNone
}

// SetStatusMapping sets a Jira status to board status mapping
func (m *Mappings) SetStatusMapping(name string, status board.Status) {
	m.StatusToBoard[name] = status
}

// SetPriorityMapping sets a Jira priority to board priority mapping
func (m *Mappings) SetPriorityMapping(name string, priority board.Priority) {
	m.PriorityToBoard[name] = priority
}
