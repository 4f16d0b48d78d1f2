package app

import (
	"context"

	"github.com/petr-muller/tixboard/internal/board"
	"github.com/petr-muller/tixboard/internal/prefs"
	"github.com/petr-muller/tixboard/internal/source"
)

// App owns the board state: the latest dataset snapshot and the display
// preferences. Columns are always derived from the current state.
type App struct {
	loader source.Loader
	prefs  *prefs.Adapter
	sorter *board.Sorter
	data   board.Dataset
}

// New creates an App and applies the persisted preferences. Preferences
// that cannot be read leave the defaults in effect.
func New(loader source.Loader, store prefs.KeyValue, sorter *board.Sorter) *App {
	adapter := prefs.NewAdapter(store)
	adapter.Load()

	return &App{
		loader: loader,
		prefs:  adapter,
		sorter: sorter,
	}
}

// Fetch runs the loader once; a failure leaves an empty dataset
func (a *App) Fetch(ctx context.Context) board.Dataset {
	return source.LoadOnce(ctx, a.loader)
}

// Replace swaps the dataset snapshot
func (a *App) Replace(data board.Dataset) {
	a.data = data
}

// Data returns the current dataset snapshot
func (a *App) Data() board.Dataset {
	return a.data
}

// Preferences returns the display preferences in effect
func (a *App) Preferences() board.Preferences {
	return a.prefs.Current()
}

// Columns groups, sorts and orders the current snapshot
func (a *App) Columns() []board.Column {
	return board.Build(a.data, a.prefs.Current(), a.sorter)
}

// Card prepares a ticket for display under the current grouping
func (a *App) Card(t board.Ticket) board.Card {
	return board.NewCard(t, a.data.Users, a.prefs.Current().Group)
}

// SetGroup persists and applies a grouping mode
func (a *App) SetGroup(mode board.GroupMode) error {
	return a.prefs.SetGroup(mode)
}

// SetSort persists and applies a sort mode
func (a *App) SetSort(mode board.SortMode) error {
	return a.prefs.SetSort(mode)
}

// CycleGroup moves to the next (or previous) grouping mode
func (a *App) CycleGroup(forward bool) error {
	current := a.prefs.Current().Group
	if forward {
		return a.SetGroup(current.Next())
	}
	return a.SetGroup(current.Prev())
}

// CycleSort moves to the next sort mode
func (a *App) CycleSort() error {
	return a.SetSort(a.prefs.Current().Sort.Next())
}

// Override applies preferences for this session only, without persisting them
func (a *App) Override(group *board.GroupMode, sort *board.SortMode) error {
	session := prefs.NewMemoryStore(nil)
	adapter := prefs.NewAdapter(session)
	current := a.prefs.Current()
	if group != nil {
		current.Group = *group
	}
	if sort != nil {
		current.Sort = *sort
	}
	if err := adapter.SetGroup(current.Group); err != nil {
		return err
	}
	if err := adapter.SetSort(current.Sort); err != nil {
		return err
	}
	a.prefs = adapter
	return nil
}
