package flagutil

import (
	"flag"
	"path/filepath"

	"github.com/spf13/pflag"
	prowflagutil "sigs.k8s.io/prow/pkg/flagutil"

	"github.com/petr-muller/tixboard/internal/config"
)

const (
	tokenFileName   string = "jira-token"
	defaultEndpoint string = "https://issues.redhat.com"
)

type JiraOptions struct {
	prowflagutil.JiraOptions
	bearerTokenFile string
	endpoint        string
}

// AddPFlags injects Jira options into the given pflag.FlagSet
func (o *JiraOptions) AddPFlags(fs *pflag.FlagSet) {
	defaultTokenPath := filepath.Join(config.MustConfigDir(), tokenFileName)

	fs.StringVar(&o.bearerTokenFile, "jira.bearer-token-file", defaultTokenPath, "Path to the file containing the Jira bearer token")
	fs.StringVar(&o.endpoint, "jira.endpoint", defaultEndpoint, "Jira endpoint URL")
}

// SetFromPFlags copies values from pflag variables to the prow JiraOptions
func (o *JiraOptions) SetFromPFlags() {
	goFlags := flag.NewFlagSet("jira", flag.ContinueOnError)
	o.JiraOptions.AddCustomizedFlags(goFlags,
		prowflagutil.JiraDefaultEndpoint(o.endpoint),
		prowflagutil.JiraDefaultBearerTokenFile(o.bearerTokenFile),
		prowflagutil.JiraNoBasicAuth(),
	)
	_ = goFlags.Parse([]string{}) // Parse empty args to set defaults
}

func (o *JiraOptions) Validate() error {
	return o.JiraOptions.Validate(false)
}

// Endpoint returns the configured Jira URL
func (o *JiraOptions) Endpoint() string {
	return o.endpoint
}
