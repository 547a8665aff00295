// Package main provides the CLI entrypoint for just-type-it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/thavelick/just-type-it/internal/config"
	"github.com/thavelick/just-type-it/internal/generator"
	"github.com/thavelick/just-type-it/internal/lesson"
	"github.com/thavelick/just-type-it/internal/model"
	"github.com/thavelick/just-type-it/internal/navigator"
	"github.com/thavelick/just-type-it/internal/report"
	"github.com/thavelick/just-type-it/internal/session"
	"github.com/thavelick/just-type-it/internal/store"
	"github.com/thavelick/just-type-it/internal/telemetry"
	"github.com/thavelick/just-type-it/internal/tui"
)

const (
	defaultRepeats  = 1
	defaultWidthPct = 0.70
	defaultText     = "The quick brown fox jumps over the lazy dog"

	topMistypedCount = 10
)

var (
	practiceInput    string
	practiceTextFile string
	practiceLibrary  string
	practiceRepeats  int
	practiceShuffle  bool
	practiceWidth    float64
	practiceLogPath  string

	statsLast int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "just-type-it",
		Short:         "CLI typing tutor",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVarP(&practiceInput, "input", "i", "", "text to practice, given directly")
	rootCmd.Flags().StringVarP(&practiceTextFile, "text", "t", "", "text file to practice")
	rootCmd.Flags().StringVar(&practiceLibrary, "library", "", "directory of practice texts")
	rootCmd.Flags().IntVarP(&practiceRepeats, "repeats", "r", defaultRepeats, "number of times to repeat the lesson text")
	rootCmd.Flags().BoolVarP(&practiceShuffle, "shuffle", "s", false, "shuffle words (or lines) of the lesson text")
	rootCmd.Flags().Float64Var(&practiceWidth, "width", defaultWidthPct, "content width as a fraction of the terminal (0-1)")
	rootCmd.Flags().StringVar(&practiceLogPath, "log", "", "write a session event log to this file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTextsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "library", &practiceLibrary, fileCfg.Practice.Library)
	applyIntConfig(cmd, "repeats", &practiceRepeats, fileCfg.Practice.Repeats)
	applyBoolConfig(cmd, "shuffle", &practiceShuffle, fileCfg.Practice.Shuffle)
	applyFloatConfig(cmd, "width", &practiceWidth, fileCfg.Practice.WidthPct)
	applyStringConfig(cmd, "log", &practiceLogPath, fileCfg.Practice.LogPath)

	cfg := model.Config{
		Input:    practiceInput,
		TextFile: practiceTextFile,
		Library:  practiceLibrary,
		Repeats:  practiceRepeats,
		Shuffle:  practiceShuffle,
		WidthPct: practiceWidth,
		LogPath:  practiceLogPath,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	gen := generator.New()
	base, err := loadBaseLesson(cfg, gen)
	if err != nil {
		return err
	}

	nav := navigator.New(base, gen, cfg.Library, cfg.Repeats, cfg.Shuffle)
	if strings.TrimSpace(nav.PracticeString()) == "" {
		return lesson.ErrNoText
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	var obs session.Observer
	if cfg.LogPath != "" {
		logger, err := telemetry.NewLogger(cfg.LogPath)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			if cerr := logger.Close(); cerr != nil {
				logErrf("failed to close log file: %v\n", cerr)
			}
		}()
		obs = logger
	}

	m := tui.NewModel(nav, st, obs, cfg.WidthPct)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadBaseLesson resolves the starting lesson: direct input wins over a
// text file, which wins over a random pick from the library.
func loadBaseLesson(cfg model.Config, gen *generator.Generator) (lesson.Lesson, error) {
	switch {
	case cfg.Input != "":
		return lesson.New(cfg.Input), nil
	case cfg.TextFile != "":
		return lesson.FromFile(cfg.TextFile)
	case cfg.Library != "":
		return lesson.RandomFromDir(cfg.Library, gen.Rand())
	default:
		return lesson.New(defaultText), nil
	}
}

func validateConfig(cfg model.Config) error {
	if cfg.Repeats < 1 {
		return fmt.Errorf("--repeats must be >= 1")
	}
	if cfg.WidthPct <= 0 || cfg.WidthPct > 1 {
		return fmt.Errorf("--width must be between 0 and 1")
	}
	if cfg.Input != "" && cfg.TextFile != "" {
		return fmt.Errorf("--input and --text are mutually exclusive")
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newTextsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "texts",
		Short: "List texts in the library",
		Args:  cobra.NoArgs,
		RunE:  runTextsCmd,
	}
	cmd.Flags().StringVar(&practiceLibrary, "library", "", "directory of practice texts")
	return cmd
}

func runTextsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "library", &practiceLibrary, fileCfg.Practice.Library)
	library := practiceLibrary
	if library == "" {
		library = config.DefaultLibraryDir()
	}

	files, err := lesson.ListLibrary(library)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logErrf("No texts found in %s\n", library)
		return lesson.ErrEmptyLibrary
	}
	sort.Strings(files)
	for _, name := range files {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	sessions, err := st.ListSessions(ctx, statsLast)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	topWords, err := st.TopMistypedWords(ctx, topMistypedCount)
	if err != nil {
		return fmt.Errorf("failed to load mistyped words: %w", err)
	}
	return report.Render(cmd.OutOrStdout(), sessions, topWords, report.TerminalWidth())
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# just-type-it configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# library = %q   # Directory of practice texts
# repeats = %d   # Number of times to repeat the lesson text
# shuffle = false  # Shuffle words (or lines) of the lesson text
# width = %.2f   # Content width as a fraction of the terminal (0-1)
# log = ""       # Write a session event log to this file
`,
		config.DefaultLibraryDir(),
		defaultRepeats,
		defaultWidthPct,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
