// Package main provides the CLI entrypoint for flashdeck.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/flashdeck/internal/config"
	"github.com/verte-zerg/flashdeck/internal/csvimport"
	"github.com/verte-zerg/flashdeck/internal/deck"
	"github.com/verte-zerg/flashdeck/internal/logging"
	"github.com/verte-zerg/flashdeck/internal/model"
	"github.com/verte-zerg/flashdeck/internal/report"
	"github.com/verte-zerg/flashdeck/internal/session"
	"github.com/verte-zerg/flashdeck/internal/shuffle"
	"github.com/verte-zerg/flashdeck/internal/store"
	"github.com/verte-zerg/flashdeck/internal/tui"
)

const (
	defaultMode     = string(csvimport.ModeLenient)
	defaultLogLevel = "info"
)

var (
	reviewFile     string
	reviewSeed     int64
	reviewAutosave bool
	reviewMode     string

	importMode string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "flashdeck",
		Short:         "TUI flash cards for English vocabulary",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReviewCmd,
	}

	rootCmd.Flags().StringVar(&reviewFile, "file", "", "CSV file to import before starting")
	rootCmd.Flags().Int64Var(&reviewSeed, "seed", 0, "shuffle seed (default: random)")
	rootCmd.Flags().BoolVar(&reviewAutosave, "autosave", false, "save after every status change, shuffle and reset")
	rootCmd.Flags().StringVar(&reviewMode, "mode", defaultMode, "CSV parser mode: lenient or rfc4180")

	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newProgressCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app bundles what every subcommand opens.
type app struct {
	store *store.Store
	repo  *deck.Repository
	log   *logrus.Logger
	close func() error
}

func openApp(fileCfg config.FileConfig) (*app, error) {
	level := defaultLogLevel
	if fileCfg.Log.Level != nil {
		level = *fileCfg.Log.Level
	}
	logPath := config.DefaultLogPath()
	if fileCfg.Log.File != nil {
		logPath = *fileCfg.Log.File
	}
	log, closeLog, err := logging.New(level, logPath)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return &app{
		store: st,
		repo:  deck.NewRepository(st, log),
		log:   log,
		close: closeLog,
	}, nil
}

func (a *app) shutdown() {
	if err := a.store.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
	if err := a.close(); err != nil {
		logErrf("failed to close log: %v\n", err)
	}
}

func loadConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

func runReviewCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	seedSet := cmd.Flags().Changed("seed") || fileCfg.Review.Seed != nil
	applyInt64Config(cmd, "seed", &reviewSeed, fileCfg.Review.Seed)
	applyBoolConfig(cmd, "autosave", &reviewAutosave, fileCfg.Review.Autosave)
	applyStringConfig(cmd, "mode", &reviewMode, fileCfg.Import.Mode)

	cfg := model.Config{
		Seed:       reviewSeed,
		Autosave:   reviewAutosave,
		ImportMode: reviewMode,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	a, err := openApp(fileCfg)
	if err != nil {
		return err
	}
	defer a.shutdown()

	shuffler := shuffle.New()
	if seedSet {
		shuffler = shuffle.NewSeeded(cfg.Seed)
	}
	opts := deck.Options{Autosave: cfg.Autosave, Mode: csvimport.Mode(cfg.ImportMode)}
	svc := deck.NewService(session.New(shuffler), a.repo, opts, a.log)

	ctx := context.Background()
	svc.Start(ctx)
	if reviewFile != "" {
		if err := svc.ImportFile(ctx, reviewFile); err != nil {
			return fmt.Errorf("%s: %w", csvimport.UserMessage(err), err)
		}
	}

	program := tea.NewProgram(tui.NewModel(svc), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a CSV file as the saved deck",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importMode, "mode", defaultMode, "CSV parser mode: lenient or rfc4180")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "mode", &importMode, fileCfg.Import.Mode)
	if err := validateMode(importMode); err != nil {
		return err
	}

	a, err := openApp(fileCfg)
	if err != nil {
		return err
	}
	defer a.shutdown()

	opts := deck.Options{Mode: csvimport.Mode(importMode)}
	svc := deck.NewService(session.New(nil), a.repo, opts, a.log)
	if err := svc.ImportFile(context.Background(), args[0]); err != nil {
		return fmt.Errorf("%s: %w", csvimport.UserMessage(err), err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cards from %s\n", svc.Total(), args[0]); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the saved deck",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	saved, err := loadSavedDeck()
	if err != nil {
		return err
	}
	if err := report.RenderDeck(cmd.OutOrStdout(), saved.cards, 0); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show how many saved cards are understood",
		Args:  cobra.NoArgs,
		RunE:  runProgressCmd,
	}
}

func runProgressCmd(cmd *cobra.Command, _ []string) error {
	saved, err := loadSavedDeck()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := report.RenderProgress(out, saved.cards); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if saved.hasSavedAt {
		if err := report.RenderSavedAt(out, saved.savedAt.Local()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

type savedDeck struct {
	cards      []model.Card
	savedAt    time.Time
	hasSavedAt bool
}

func loadSavedDeck() (savedDeck, error) {
	fileCfg, err := loadConfig()
	if err != nil {
		return savedDeck{}, err
	}
	a, err := openApp(fileCfg)
	if err != nil {
		return savedDeck{}, err
	}
	defer a.shutdown()
	return readSavedDeck(context.Background(), a.store, a.repo), nil
}

// readSavedDeck loads the deck and when it was last written. A failed
// timestamp lookup only drops the timestamp.
func readSavedDeck(ctx context.Context, st *store.Store, repo *deck.Repository) savedDeck {
	saved := savedDeck{cards: repo.Load(ctx)}
	savedAt, ok, err := st.UpdatedAt(ctx, deck.StorageKey)
	if err != nil {
		logErrf("failed to read save time: %v\n", err)
		return saved
	}
	saved.savedAt = savedAt
	saved.hasSavedAt = ok
	return saved
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved deck",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
}

func runResetCmd(_ *cobra.Command, _ []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := openApp(fileCfg)
	if err != nil {
		return err
	}
	defer a.shutdown()

	if err := a.store.Delete(context.Background(), deck.StorageKey); err != nil {
		return fmt.Errorf("failed to reset deck: %w", err)
	}
	logErrln("Saved deck cleared")
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

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
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
	return fmt.Sprintf(`# flashdeck configuration
# Uncomment a value to enable it. CLI flags override config values.

[review]
# seed = 42               # Fixed shuffle seed (default: random)
# autosave = false        # Also save after status changes, shuffle and reset

[import]
# mode = %q          # CSV parser: "lenient" or "rfc4180"

[log]
# level = %q            # trace, debug, info, warn, error
# file = %q
`,
		defaultMode,
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	return validateMode(cfg.ImportMode)
}

func validateMode(mode string) error {
	switch csvimport.Mode(mode) {
	case csvimport.ModeLenient, csvimport.ModeRFC4180:
		return nil
	}
	return fmt.Errorf("--mode must be %q or %q", csvimport.ModeLenient, csvimport.ModeRFC4180)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
