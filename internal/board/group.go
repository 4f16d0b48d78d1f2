package board

// Grouping is an ordered mapping from group key to tickets. Keys keep the
// order in which their buckets were created.
type Grouping struct {
	keys    []string
	buckets map[string][]Ticket
}

func newGrouping() Grouping {
	return Grouping{buckets: map[string][]Ticket{}}
}

// seed creates an empty bucket unless one exists
func (g *Grouping) seed(key string) {
	if _, ok := g.buckets[key]; ok {
		return
	}
	g.keys = append(g.keys, key)
	g.buckets[key] = []Ticket{}
}

func (g *Grouping) add(key string, t Ticket) {
	g.seed(key)
	g.buckets[key] = append(g.buckets[key], t)
}

// Keys returns the group keys in creation order
func (g Grouping) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Tickets returns a copy of the tickets in the bucket, nil if there is no
// such bucket
func (g Grouping) Tickets(key string) []Ticket {
	tickets, ok := g.buckets[key]
	if !ok {
		return nil
	}
	return append([]Ticket{}, tickets...)
}

// Len returns the number of buckets
func (g Grouping) Len() int {
	return len(g.keys)
}

// Count returns the number of tickets across all buckets
func (g Grouping) Count() int {
	n := 0
	for _, tickets := range g.buckets {
		n += len(tickets)
	}
	return n
}

// Group partitions tickets into buckets according to mode. Status and
// priority groupings have fixed buckets and drop tickets whose value is not
// one of them; other groupings create one bucket per distinct value in
// first-seen order. Tickets keep their relative input order within a bucket.
func Group(tickets []Ticket, users []User, mode GroupMode) Grouping {
	g := newGrouping()

	switch mode.kind {
	case groupStatus:
		for _, s := range Statuses {
			g.seed(string(s))
		}
		for _, t := range tickets {
			if t.Status.Known() {
				g.add(string(t.Status), t)
			}
		}
	case groupPriority:
		for _, p := range Priorities {
			g.seed(p.Key())
		}
		for _, t := range tickets {
			if t.Priority.Known() {
				g.add(t.Priority.Key(), t)
			}
		}
	case groupAssignee:
		names := make(map[string]string, len(users))
		for _, u := range users {
			if _, ok := names[u.ID]; !ok {
				names[u.ID] = u.Name
			}
		}
		for _, t := range tickets {
			name, ok := names[t.UserID]
			if !ok {
				name = UnknownUser
			}
			g.add(name, t)
		}
	default:
		for _, t := range tickets {
			g.add(mode.attr.value(t), t)
		}
	}

	return g
}
