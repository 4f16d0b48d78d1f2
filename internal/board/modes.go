package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when a grouping or sort mode name is not recognized
var ErrUnknownMode = errors.New("unknown mode")

// Attribute is a ticket attribute that can be used for generic grouping
type Attribute string

const (
	AttrID    Attribute = "id"
	AttrTitle Attribute = "title"
	AttrTag   Attribute = "tag"
)

// value reads the attribute from a ticket
func (a Attribute) value(t Ticket) string {
	switch a {
	case AttrID:
		return t.ID
	case AttrTitle:
		return t.Title
	case AttrTag:
		return t.Tag
	default:
		return ""
	}
}

type groupKind int

const (
	groupStatus groupKind = iota
	groupAssignee
	groupPriority
	groupAttribute
)

// GroupMode selects how tickets are partitioned into columns. The zero value
// groups by status.
type GroupMode struct {
	kind groupKind
	attr Attribute
}

var (
	GroupByStatus   = GroupMode{kind: groupStatus}
	GroupByAssignee = GroupMode{kind: groupAssignee}
	GroupByPriority = GroupMode{kind: groupPriority}
)

// GroupByAttribute partitions tickets by the literal value of attr
func GroupByAttribute(attr Attribute) GroupMode {
	return GroupMode{kind: groupAttribute, attr: attr}
}

// GroupModes lists the modes the interactive board cycles through
var GroupModes = []GroupMode{GroupByStatus, GroupByAssignee, GroupByPriority}

// String returns the persisted name of the mode
func (g GroupMode) String() string {
	switch g.kind {
	case groupStatus:
		return "status"
	case groupAssignee:
		return "userId"
	case groupPriority:
		return "priority"
	default:
		return string(g.attr)
	}
}

// Title is the name shown in the display menu
func (g GroupMode) Title() string {
	switch g.kind {
	case groupStatus:
		return "Status"
	case groupAssignee:
		return "User"
	case groupPriority:
		return "Priority"
	default:
		return "Attribute: " + string(g.attr)
	}
}

// Attribute returns the attribute a generic grouping reads, if any
func (g GroupMode) Attribute() (Attribute, bool) {
	return g.attr, g.kind == groupAttribute
}

// ParseGroupMode parses a persisted or user-supplied grouping mode name
func ParseGroupMode(s string) (GroupMode, error) {
	switch strings.TrimSpace(s) {
	case "status":
		return GroupByStatus, nil
	case "userId", "assignee", "user":
		return GroupByAssignee, nil
	case "priority":
		return GroupByPriority, nil
	case string(AttrID):
		return GroupByAttribute(AttrID), nil
	case string(AttrTitle):
		return GroupByAttribute(AttrTitle), nil
	case string(AttrTag):
		return GroupByAttribute(AttrTag), nil
	}
	return GroupMode{}, fmt.Errorf("grouping %q: %w", s, ErrUnknownMode)
}

// Next returns the mode after g in GroupModes, wrapping around
func (g GroupMode) Next() GroupMode {
	return cycle(GroupModes, g, 1)
}

// Prev returns the mode before g in GroupModes, wrapping around
func (g GroupMode) Prev() GroupMode {
	return cycle(GroupModes, g, -1)
}

// SortMode selects the order of tickets within a column
type SortMode int

const (
	SortByPriority SortMode = iota
	SortByTitle
	SortNone
)

// SortModes lists the modes the interactive board cycles through
var SortModes = []SortMode{SortByPriority, SortByTitle}

func (s SortMode) String() string {
	switch s {
	case SortByPriority:
		return "priority"
	case SortByTitle:
		return "title"
	default:
		return "none"
	}
}

// Title is the name shown in the display menu
func (s SortMode) Title() string {
	switch s {
	case SortByPriority:
		return "Priority"
	case SortByTitle:
		return "Title"
	default:
		return "None"
	}
}

// ParseSortMode parses a persisted or user-supplied sort mode name
func ParseSortMode(s string) (SortMode, error) {
	switch strings.TrimSpace(s) {
	case "priority":
		return SortByPriority, nil
	case "title":
		return SortByTitle, nil
	case "none":
		return SortNone, nil
	}
	return SortNone, fmt.Errorf("ordering %q: %w", s, ErrUnknownMode)
}

// Next returns the mode after s in SortModes, wrapping around
func (s SortMode) Next() SortMode {
	return cycle(SortModes, s, 1)
}

func cycle[T comparable](modes []T, current T, step int) T {
	for i, m := range modes {
		if m == current {
			return modes[(i+step+len(modes))%len(modes)]
		}
	}
	return modes[0]
}

// Preferences are the persisted display choices
type Preferences struct {
	Group GroupMode
	Sort  SortMode
}

// DefaultPreferences groups by status and sorts by priority
func DefaultPreferences() Preferences {
	return Preferences{Group: GroupByStatus, Sort: SortByPriority}
}
