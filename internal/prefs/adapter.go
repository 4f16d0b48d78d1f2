package prefs

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/petr-muller/tixboard/internal/board"
)

const (
	KeyGroupBy = "groupBy"
	KeySortBy  = "sortBy"
)

// Adapter mirrors the display preferences into a KeyValue store
type Adapter struct {
	store   KeyValue
	current board.Preferences
}

// NewAdapter creates an adapter holding the default preferences. Call Load
// to apply persisted values.
func NewAdapter(store KeyValue) *Adapter {
	return &Adapter{
		store:   store,
		current: board.DefaultPreferences(),
	}
}

// Load applies the persisted preferences. Absent keys keep their defaults and
// are not written back. A stored grouping that does not name a known mode
// falls back to grouping by tag, which keeps every ticket on the board; an
// unknown ordering leaves tickets unsorted. A store that cannot be read
// yields the defaults.
func (a *Adapter) Load() board.Preferences {
	prefs := board.DefaultPreferences()

	group, groupSet, err := a.store.Get(KeyGroupBy)
	if err != nil {
		logrus.WithError(err).Warn("Cannot read stored preferences, using defaults")
		a.current = prefs
		return prefs
	}
	order, orderSet, err := a.store.Get(KeySortBy)
	if err != nil {
		logrus.WithError(err).Warn("Cannot read stored preferences, using defaults")
		a.current = prefs
		return prefs
	}

	if groupSet {
		mode, err := board.ParseGroupMode(group)
		if err != nil {
			logrus.WithError(err).WithField("value", group).Warn("Stored grouping not recognized, grouping by tag")
			mode = board.GroupByAttribute(board.AttrTag)
		}
		prefs.Group = mode
	}

	if orderSet {
		mode, err := board.ParseSortMode(order)
		if err != nil {
			logrus.WithError(err).WithField("value", order).Warn("Stored ordering not recognized, leaving tickets unsorted")
			mode = board.SortNone
		}
		prefs.Sort = mode
	}

	a.current = prefs
	return prefs
}

// Current returns the preferences in effect
func (a *Adapter) Current() board.Preferences {
	return a.current
}

// SetGroup persists the grouping mode and then applies it
func (a *Adapter) SetGroup(mode board.GroupMode) error {
	if err := a.store.Set(KeyGroupBy, mode.String()); err != nil {
		return fmt.Errorf("failed to persist grouping: %w", err)
	}
	a.current.Group = mode
	return nil
}

// SetSort persists the sort mode and then applies it
func (a *Adapter) SetSort(mode board.SortMode) error {
	if err := a.store.Set(KeySortBy, mode.String()); err != nil {
		return fmt.Errorf("failed to persist ordering: %w", err)
	}
	a.current.Sort = mode
	return nil
}
