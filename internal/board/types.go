package board

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Status is the workflow state of a ticket
type Status string

const (
	StatusBacklog    Status = "Backlog"
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "In progress"
	StatusDone       Status = "Done"
	StatusCanceled   Status = "Canceled"
)

// Statuses lists the known statuses in display order
var Statuses = []Status{StatusBacklog, StatusTodo, StatusInProgress, StatusDone, StatusCanceled}

var knownStatuses = sets.New(Statuses...)

// Known reports whether the status is one of the five board statuses
func (s Status) Known() bool {
	return knownStatuses.Has(s)
}

// Priority is a ticket priority code, 0 (no priority) to 4 (urgent)
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

// Priorities lists the known priorities in column order
var Priorities = []Priority{PriorityNone, PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

// Known reports whether the priority is within 0..4
func (p Priority) Known() bool {
	return p >= PriorityNone && p <= PriorityUrgent
}

// Key returns the grouping key of the priority
func (p Priority) Key() string {
	return strconv.Itoa(int(p))
}

// Label returns the human-readable name of the priority
func (p Priority) Label() string {
	switch p {
	case PriorityNone:
		return "No Priority"
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return "Unknown"
	}
}

// Ticket is a single card on the board
type Ticket struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`
	UserID   string   `json:"userId"`
	Tag      string   `json:"tag"`
}

// UnmarshalJSON accepts numeric or string ids and tags given either as a
// single string or as a list of strings.
func (t *Ticket) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       json.RawMessage `json:"id"`
		Title    string          `json:"title"`
		Status   Status          `json:"status"`
		Priority Priority        `json:"priority"`
		UserID   string          `json:"userId"`
		Tag      json.RawMessage `json:"tag"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := scalarString(raw.ID)
	if err != nil {
		return fmt.Errorf("invalid ticket id: %w", err)
	}
	tag, err := tagString(raw.Tag)
	if err != nil {
		return fmt.Errorf("invalid tag of ticket %s: %w", id, err)
	}

	*t = Ticket{
		ID:       id,
		Title:    raw.Title,
		Status:   raw.Status,
		Priority: raw.Priority,
		UserID:   raw.UserID,
		Tag:      tag,
	}
	return nil
}

func scalarString(data json.RawMessage) (string, error) {
	if len(data) == 0 || string(data) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

func tagString(data json.RawMessage) (string, error) {
	if len(data) == 0 || string(data) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return "", err
	}
	return strings.Join(list, ", "), nil
}

// User is a person tickets can be assigned to
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// Dataset is one snapshot of everything a loader returns
type Dataset struct {
	Tickets []Ticket `json:"tickets"`
	Users   []User   `json:"users"`
}

// UnknownUser is the bucket and display name for tickets whose assignee
// does not resolve to a known user.
const UnknownUser = "Unknown User"

// UserName resolves a user id to a display name
func UserName(users []User, id string) string {
	for _, u := range users {
		if u.ID == id {
			return u.Name
		}
	}
	return UnknownUser
}

// Initials returns the first two characters of a name, upper-cased
func Initials(name string) string {
	runes := []rune(name)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}
