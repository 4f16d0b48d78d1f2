package flagutil

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Kinds of ticket sources
const (
	SourceHTTP = "http"
	SourceFile = "file"
	SourceJira = "jira"
)

// DefaultEndpoint is the JSON endpoint used by the http source
const DefaultEndpoint = "https://api.quicksell.co/v1/internal/frontend-assignment"

// SourceOptions select where the board data comes from
type SourceOptions struct {
	Kind     string
	Endpoint string
	File     string
	JQL      string
	Jira     JiraOptions
}

// AddPFlags injects source options into the given pflag.FlagSet
func (o *SourceOptions) AddPFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Kind, "source", SourceHTTP, "Where to load tickets from: http, file or jira")
	fs.StringVar(&o.Endpoint, "endpoint", DefaultEndpoint, "JSON endpoint serving tickets and users (http source)")
	fs.StringVar(&o.File, "source-file", "", "Path to a JSON file with tickets and users (file source)")
	fs.StringVar(&o.JQL, "jql", "", "JQL query selecting the board's issues (jira source)")
	o.Jira.AddPFlags(fs)
}

// Validate checks that the options needed by the selected source are present
func (o *SourceOptions) Validate() error {
	switch o.Kind {
	case SourceHTTP:
		if o.Endpoint == "" {
			return fmt.Errorf("--endpoint is required for the %s source", SourceHTTP)
		}
	case SourceFile:
		if o.File == "" {
			return fmt.Errorf("--source-file is required for the %s source", SourceFile)
		}
	case SourceJira:
		if o.JQL == "" {
			return fmt.Errorf("--jql is required for the %s source", SourceJira)
		}
		o.Jira.SetFromPFlags()
		if err := o.Jira.Validate(); err != nil {
			return fmt.Errorf("invalid JIRA options: %w", err)
		}
	default:
		return fmt.Errorf("unknown source %q, expected one of %s, %s, %s", o.Kind, SourceHTTP, SourceFile, SourceJira)
	}
	return nil
}
