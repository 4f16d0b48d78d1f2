package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func titles(tickets []Ticket) []string {
	out := []string{}
	for _, t := range tickets {
		out = append(out, t.Title)
	}
	return out
}

func TestSort(t *testing.T) {
	tickets := []Ticket{
		{ID: "1", Title: "zebra", Status: StatusTodo, Priority: 1},
		{ID: "2", Title: "Zulu", Status: StatusTodo, Priority: 3},
		{ID: "3", Title: "apple", Status: StatusTodo, Priority: 1},
		{ID: "4", Title: "Banana", Status: StatusTodo, Priority: 4},
		{ID: "5", Title: "ezel", Status: StatusDone, Priority: 0},
		{ID: "6", Title: "Éclair", Status: StatusDone, Priority: 2},
	}

	testCases := []struct {
		name     string
		mode     SortMode
		expected map[string][]string
	}{
		{
			name: "priority descending, ties keep input order",
			mode: SortByPriority,
			expected: map[string][]string{
				"Backlog":     {},
				"Todo":        {"4", "2", "1", "3"},
				"In progress": {},
				"Done":        {"6", "5"},
				"Canceled":    {},
			},
		},
		{
			name: "title uses collation instead of byte order",
			mode: SortByTitle,
			expected: map[string][]string{
				"Backlog":     {},
				"Todo":        {"3", "4", "1", "2"},
				"In progress": {},
				"Done":        {"6", "5"},
				"Canceled":    {},
			},
		},
		{
			name: "none keeps insertion order",
			mode: SortNone,
			expected: map[string][]string{
				"Backlog":     {},
				"Todo":        {"1", "2", "3", "4"},
				"In progress": {},
				"Done":        {"5", "6"},
				"Canceled":    {},
			},
		},
	}

	sorter := NewSorter(language.English)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			grouped := Group(tickets, nil, GroupByStatus)
			sorted := sorter.Sort(grouped, tc.mode)
			if diff := cmp.Diff(tc.expected, groupIDs(sorted)); diff != "" {
				t.Errorf("sorted buckets differ (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(grouped.Keys(), sorted.Keys()); diff != "" {
				t.Errorf("sorting changed keys (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	tickets := []Ticket{
		{ID: "1", Title: "b", Status: StatusTodo, Priority: 1},
		{ID: "2", Title: "a", Status: StatusTodo, Priority: 4},
	}
	grouped := Group(tickets, nil, GroupByStatus)

	sorter := NewSorter(language.English)
	_ = sorter.Sort(grouped, SortByPriority)
	_ = sorter.Sort(grouped, SortByTitle)

	if diff := cmp.Diff([]string{"1", "2"}, ids(grouped.Tickets("Todo"))); diff != "" {
		t.Errorf("input grouping was reordered (-want +got):\n%s", diff)
	}
}

func TestSortProperties(t *testing.T) {
	tickets := []Ticket{
		{ID: "1", Title: "Résumé parser", Status: StatusTodo, Priority: 2, UserID: "usr-1"},
		{ID: "2", Title: "resume upload", Status: StatusTodo, Priority: 0, UserID: "usr-2"},
		{ID: "3", Title: "Add login", Status: StatusBacklog, Priority: 4, UserID: "usr-1"},
		{ID: "4", Title: "add logout", Status: StatusBacklog, Priority: 4, UserID: "usr-3"},
		{ID: "5", Title: "Ångström units", Status: StatusDone, Priority: 1, UserID: "usr-2"},
		{ID: "6", Title: "zoom", Status: StatusDone, Priority: 3, UserID: "usr-1"},
		{ID: "7", Title: "Alpha", Status: StatusDone, Priority: 3, UserID: "usr-3"},
	}
	sorter := NewSorter(language.English)

	for _, mode := range []GroupMode{GroupByStatus, GroupByAssignee, GroupByPriority, GroupByAttribute(AttrTitle)} {
		grouped := Group(tickets, testUsers, mode)

		byPriority := sorter.Sort(grouped, SortByPriority)
		for _, key := range byPriority.Keys() {
			bucket := byPriority.Tickets(key)
			for i := 1; i < len(bucket); i++ {
				if bucket[i-1].Priority < bucket[i].Priority {
					t.Errorf("%s/%s: priority increases at %d: %v", mode, key, i, ids(bucket))
				}
			}
		}

		byTitle := sorter.Sort(grouped, SortByTitle)
		for _, key := range byTitle.Keys() {
			bucket := byTitle.Tickets(key)
			for i := 1; i < len(bucket); i++ {
				if sorter.CompareTitles(bucket[i-1].Title, bucket[i].Title) > 0 {
					t.Errorf("%s/%s: titles out of order at %d: %v", mode, key, i, titles(bucket))
				}
			}
		}
	}
}

func TestGroupThenSortIsIdempotent(t *testing.T) {
	data := Dataset{
		Tickets: []Ticket{
			{ID: "1", Title: "b", Status: StatusTodo, Priority: 2, UserID: "usr-1"},
			{ID: "2", Title: "a", Status: StatusTodo, Priority: 4, UserID: "usr-2"},
			{ID: "3", Title: "c", Status: StatusDone, Priority: 4, UserID: "usr-404"},
		},
		Users: testUsers,
	}
	sorter := NewSorter(language.English)

	for _, group := range GroupModes {
		for _, order := range SortModes {
			prefs := Preferences{Group: group, Sort: order}
			first := Build(data, prefs, sorter)
			second := Build(data, prefs, sorter)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("%s/%s: second build differs (-first +second):\n%s", group, order, diff)
			}
		}
	}
}
