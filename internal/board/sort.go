package board

import (
	"cmp"
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sorter orders the tickets of each group. Title comparison uses a collator
// for the configured language.
type Sorter struct {
	// collate.Collator keeps scratch buffers and is not safe for
	// concurrent use
	mu       sync.Mutex
	collator *collate.Collator
}

// NewSorter creates a sorter comparing titles under the rules of tag
func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{collator: collate.New(tag)}
}

// Sort returns a new grouping with the same keys and membership as g and
// each bucket ordered by mode. The input grouping is not modified.
func (s *Sorter) Sort(g Grouping, mode SortMode) Grouping {
	out := Grouping{
		keys:    g.Keys(),
		buckets: make(map[string][]Ticket, len(g.buckets)),
	}

	for _, key := range g.keys {
		tickets := append([]Ticket{}, g.buckets[key]...)
		switch mode {
		case SortByPriority:
			slices.SortStableFunc(tickets, func(a, b Ticket) int {
				return cmp.Compare(b.Priority, a.Priority)
			})
		case SortByTitle:
			slices.SortStableFunc(tickets, func(a, b Ticket) int {
				return s.CompareTitles(a.Title, b.Title)
			})
		}
		out.buckets[key] = tickets
	}

	return out
}

// CompareTitles compares two titles with the sorter's collation rules
func (s *Sorter) CompareTitles(a, b string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collator.CompareString(a, b)
}
