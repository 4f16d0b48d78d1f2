package board

// ColumnOrder returns the group keys in the left-to-right order they are
// displayed. Status and priority groupings always yield their full fixed
// order; other groupings use the creation order of the grouping's buckets.
func ColumnOrder(mode GroupMode, g Grouping) []string {
	switch mode.kind {
	case groupStatus:
		keys := make([]string, 0, len(Statuses))
		for _, s := range Statuses {
			keys = append(keys, string(s))
		}
		return keys
	case groupPriority:
		keys := make([]string, 0, len(Priorities))
		for _, p := range Priorities {
			keys = append(keys, p.Key())
		}
		return keys
	default:
		return g.Keys()
	}
}

// Column is one rendered group of the board
type Column struct {
	Key     string
	Label   string
	Tickets []Ticket
}

// Build groups, sorts and orders the dataset into columns
func Build(data Dataset, prefs Preferences, sorter *Sorter) []Column {
	grouped := Group(data.Tickets, data.Users, prefs.Group)
	sorted := sorter.Sort(grouped, prefs.Sort)

	var columns []Column
	for _, key := range ColumnOrder(prefs.Group, sorted) {
		tickets := sorted.Tickets(key)
		if tickets == nil {
			tickets = []Ticket{}
		}
		columns = append(columns, Column{
			Key:     key,
			Label:   ColumnLabel(prefs.Group, key),
			Tickets: tickets,
		})
	}
	return columns
}

// ColumnLabel returns the header text for a group key
func ColumnLabel(mode GroupMode, key string) string {
	if mode.kind != groupPriority {
		return key
	}
	for _, p := range Priorities {
		if p.Key() == key {
			return p.Label()
		}
	}
	return Priority(-1).Label()
}

// Card describes which ticket decorations are shown under a grouping.
// A decoration that is already expressed by the column is hidden.
type Card struct {
	Ticket       Ticket
	Initials     string
	ShowAssignee bool
	ShowStatus   bool
	ShowPriority bool
}

// NewCard prepares a ticket for display in a column grouped by mode
func NewCard(t Ticket, users []User, mode GroupMode) Card {
	return Card{
		Ticket:       t,
		Initials:     Initials(UserName(users, t.UserID)),
		ShowAssignee: mode.kind != groupAssignee,
		ShowStatus:   mode.kind != groupStatus,
		ShowPriority: mode.kind != groupPriority,
	}
}
