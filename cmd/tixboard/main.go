package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/fang"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/petr-muller/tixboard/internal/app"
	"github.com/petr-muller/tixboard/internal/board"
	"github.com/petr-muller/tixboard/internal/config"
	"github.com/petr-muller/tixboard/internal/flagutil"
	"github.com/petr-muller/tixboard/internal/mappings"
	"github.com/petr-muller/tixboard/internal/prefs"
	"github.com/petr-muller/tixboard/internal/source"
	"github.com/petr-muller/tixboard/internal/ui"
)

type options struct {
	source          flagutil.SourceOptions
	preferencesPath string
	noPersist       bool
	locale          string
	logLevel        string
	logFile         string

	printGroup string
	printSort  string
	printWidth int
}

var o options

func main() {
	rootCmd := &cobra.Command{
		Use:   "tixboard",
		Short: "Kanban board for tickets served by a remote tracker",
		Long: `tixboard fetches tickets and users once, groups them by status, user or priority,
orders every group by priority or title and shows the groups as columns of cards.

The chosen grouping and ordering are remembered between runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd.Context())
		},
	}

	// Add global flags
	fs := rootCmd.PersistentFlags()
	o.source.AddPFlags(fs)
	fs.StringVar(&o.preferencesPath, "preferences", "", "Path to the preferences file (default: preferences.yaml in the user config dir)")
	fs.BoolVar(&o.noPersist, "no-persist", false, "Do not read or write stored preferences")
	fs.StringVar(&o.locale, "locale", "en", "Language whose rules order ticket titles (BCP 47 tag)")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level (trace, debug, info, warning, error)")
	fs.StringVar(&o.logFile, "log-file", "", "Write logs to this file (default: tixboard.log in the user state dir for the board, stderr otherwise)")

	// Add subcommands
	rootCmd.AddCommand(
		newBoardCmd(),
		newPrintCmd(),
		newPrefsCmd(),
		newMappingsCmd(),
	)

	// Use fang to execute the command
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		logrus.WithError(err).Fatal("command failed")
	}
}

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd.Context())
		},
	}
}

func newPrintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the board once and exit",
		Long: `Fetch tickets once and print the board to standard output.
--group and --sort apply to this invocation only and are not stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd.Context(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&o.printGroup, "group", "", "Grouping for this run: status, userId, priority, id, title or tag")
	cmd.Flags().StringVar(&o.printSort, "sort", "", "Ordering for this run: priority, title or none")
	cmd.Flags().IntVar(&o.printWidth, "width", 160, "Width of the printed board")

	return cmd
}

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change the stored display preferences",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the stored grouping and ordering",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runPrefsShow(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:       "set <group|sort> <value>",
			Short:     "Store a grouping or ordering",
			Args:      cobra.ExactArgs(2),
			ValidArgs: []string{"group", "sort"},
			RunE: func(cmd *cobra.Command, args []string) error {
				return runPrefsSet(cmd.OutOrStdout(), args[0], args[1])
			},
		},
	)

	return cmd
}

func newMappingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Manage how Jira statuses and priorities map onto the board",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Write the effective mappings to mappings.yaml for editing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMappingsSave(cmd.OutOrStdout())
		},
	})

	return cmd
}

// setupLogging configures logrus. defaultToFile sends logs to the state dir
// so they do not draw over the interactive board.
func setupLogging(defaultToFile bool) (func(), error) {
	level, err := logrus.ParseLevel(o.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(level)

	path := o.logFile
	if path == "" && defaultToFile {
		stateDir, err := config.StateDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine state directory: %w", err)
		}
		path = filepath.Join(stateDir, "tixboard.log")
	}
	if path == "" {
		logrus.SetOutput(os.Stderr)
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logrus.SetOutput(f)
	return func() { _ = f.Close() }, nil
}

func createStore() (prefs.KeyValue, error) {
	if o.noPersist {
		return prefs.NewMemoryStore(nil), nil
	}
	if o.preferencesPath != "" {
		return prefs.NewFileStore(o.preferencesPath), nil
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine config directory: %w", err)
	}
	return prefs.NewFileStore(prefs.DefaultPath(configDir)), nil
}

func createApp() (*app.App, error) {
	if err := o.source.Validate(); err != nil {
		return nil, fmt.Errorf("invalid source options: %w", err)
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine config directory: %w", err)
	}

	loader, err := source.New(o.source, configDir)
	if err != nil {
		return nil, fmt.Errorf("cannot create ticket source: %w", err)
	}

	tag, err := language.Parse(o.locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", o.locale, err)
	}

	store, err := createStore()
	if err != nil {
		return nil, err
	}

	return app.New(loader, store, board.NewSorter(tag)), nil
}

func runBoard(ctx context.Context) error {
	closeLog, err := setupLogging(true)
	if err != nil {
		return err
	}
	defer closeLog()

	a, err := createApp()
	if err != nil {
		return err
	}

	program := tea.NewProgram(ui.NewModel(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("cannot run TUI: %w", err)
	}

	return nil
}

func runPrint(ctx context.Context, out io.Writer) error {
	closeLog, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()

	a, err := createApp()
	if err != nil {
		return err
	}

	var group *board.GroupMode
	if o.printGroup != "" {
		mode, err := board.ParseGroupMode(o.printGroup)
		if err != nil {
			return err
		}
		group = &mode
	}
	var order *board.SortMode
	if o.printSort != "" {
		mode, err := board.ParseSortMode(o.printSort)
		if err != nil {
			return err
		}
		order = &mode
	}
	if group != nil || order != nil {
		if err := a.Override(group, order); err != nil {
			return err
		}
	}

	a.Replace(a.Fetch(ctx))
	current := a.Preferences()
	fmt.Fprintf(out, "Grouping: %s, Ordering: %s\n\n", current.Group.Title(), current.Sort.Title())
	fmt.Fprintln(out, ui.RenderBoard(current.Group, a.Columns(), a.Card, o.printWidth, ui.NoFocus))

	return nil
}

func runPrefsShow(out io.Writer) error {
	closeLog, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := createStore()
	if err != nil {
		return err
	}

	current := prefs.NewAdapter(store).Load()

	fmt.Fprintf(out, "%s: %s\n", prefs.KeyGroupBy, current.Group)
	fmt.Fprintf(out, "%s: %s\n", prefs.KeySortBy, current.Sort)
	return nil
}

func runPrefsSet(out io.Writer, which, value string) error {
	closeLog, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := createStore()
	if err != nil {
		return err
	}
	adapter := prefs.NewAdapter(store)

	switch which {
	case "group":
		mode, err := board.ParseGroupMode(value)
		if err != nil {
			return err
		}
		if err := adapter.SetGroup(mode); err != nil {
			return err
		}
	case "sort":
		mode, err := board.ParseSortMode(value)
		if err != nil {
			return err
		}
		if err := adapter.SetSort(mode); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown preference %q, expected group or sort", which)
	}

	fmt.Fprintf(out, "Stored %s=%s\n", which, value)
	return nil
}

func runMappingsSave(out io.Writer) error {
	closeLog, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer closeLog()

	configDir, err := config.ConfigDir()
	if err != nil {
		return fmt.Errorf("cannot determine config directory: %w", err)
	}

	m, err := mappings.LoadMappings(configDir)
	if err != nil {
		return fmt.Errorf("cannot load mappings: %w", err)
	}
	if err := m.SaveMappings(configDir); err != nil {
		return fmt.Errorf("cannot save mappings: %w", err)
	}

	fmt.Fprintf(out, "Wrote %s\n", mappings.Path(configDir))
	return nil
}
