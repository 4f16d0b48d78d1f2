package source

import (
	"fmt"

	"github.com/petr-muller/tixboard/internal/flagutil"
	"github.com/petr-muller/tixboard/internal/mappings"
)

// New creates the loader selected by validated options. configDir holds the
// Jira mappings file.
func New(o flagutil.SourceOptions, configDir string) (Loader, error) {
	switch o.Kind {
	case flagutil.SourceHTTP:
		return NewHTTPSource(o.Endpoint, nil), nil
	case flagutil.SourceFile:
		return NewFileSource(o.File), nil
	case flagutil.SourceJira:
		m, err := mappings.LoadMappings(configDir)
		if err != nil {
			return nil, fmt.Errorf("cannot load mappings: %w", err)
		}
		return NewJiraSource(o.Jira, o.JQL, m)
	default:
		return nil, fmt.Errorf("unknown source %q", o.Kind)
	}
}
