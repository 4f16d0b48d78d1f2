package flagutil

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestSourceOptionsValidate(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError string
	}{
		{
			name: "defaults select the http endpoint",
		},
		{
			name:        "empty endpoint",
			args:        []string{"--endpoint="},
			expectError: "--endpoint is required",
		},
		{
			name: "file source with a file",
			args: []string{"--source=file", "--source-file=board.json"},
		},
		{
			name:        "file source without a file",
			args:        []string{"--source=file"},
			expectError: "--source-file is required",
		},
		{
			name:        "jira source without a query",
			args:        []string{"--source=jira"},
			expectError: "--jql is required",
		},
		{
			name:        "unknown source",
			args:        []string{"--source=ftp"},
			expectError: "unknown source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())

			var o SourceOptions
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			o.AddPFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("cannot parse flags: %v", err)
			}

			err := o.Validate()
			if tt.expectError == "" && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != "" && (err == nil || !strings.Contains(err.Error(), tt.expectError)) {
				t.Errorf("expected error containing %q, got %v", tt.expectError, err)
			}
		})
	}
}

func TestJiraFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")

	var o SourceOptions
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AddPFlags(fs)

	token := fs.Lookup("jira.bearer-token-file")
	if token == nil || token.DefValue != "/cfg/tixboard/jira-token" {
		t.Errorf("unexpected default token path: %v", token)
	}

	if err := fs.Parse([]string{"--jira.endpoint=https://jira.example.com"}); err != nil {
		t.Fatalf("cannot parse flags: %v", err)
	}
	if o.Jira.Endpoint() != "https://jira.example.com" {
		t.Errorf("endpoint flag not bound, got %q", o.Jira.Endpoint())
	}
}
