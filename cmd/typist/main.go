// Package main provides the CLI entrypoint for typist.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/typist/internal/config"
	"github.com/verte-zerg/typist/internal/corpus"
	"github.com/verte-zerg/typist/internal/generator"
	"github.com/verte-zerg/typist/internal/logging"
	"github.com/verte-zerg/typist/internal/model"
	"github.com/verte-zerg/typist/internal/tui"
	"github.com/verte-zerg/typist/internal/typing"
)

const (
	defaultMode       = "time"
	defaultSeconds    = 60
	defaultWords      = 25
	defaultQuote      = "all"
	defaultPunctPct   = 30.0
	defaultNumbersPct = 0.1
	defaultLogLevel   = "info"
	defaultLogSizeMB  = 10
	defaultLogBackups = 3
	defaultLogAgeDays = 28
)

type practiceFlags struct {
	lang       string
	mode       string
	seconds    int
	words      int
	quote      string
	punct      bool
	numbers    bool
	punctPct   float64
	numbersPct float64
	dataDir    string
	logFile    string
	logLevel   string
}

func main() {
	rootCmd := newRootCmd(&practiceFlags{})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(flags *practiceFlags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typist",
		Short:         "Terminal typing speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPracticeCmd(cmd, flags)
		},
	}

	rootCmd.Flags().StringVar(&flags.lang, "lang", corpus.DefaultLanguage.String(), "language, e.g. english or english_1k")
	rootCmd.Flags().StringVar(&flags.mode, "mode", defaultMode, "test mode: time, words or quote")
	rootCmd.Flags().IntVar(&flags.seconds, "time", defaultSeconds, fmt.Sprintf("seconds per test in time mode, presets %s", presetList(model.TimePresets)))
	rootCmd.Flags().IntVar(&flags.words, "words", defaultWords, fmt.Sprintf("words per test in words mode, presets %s", presetList(model.WordsPresets)))
	rootCmd.Flags().StringVar(&flags.quote, "quote", defaultQuote, "quote lengths: comma list of short, medium, long, thicc or all")
	rootCmd.Flags().BoolVar(&flags.punct, "punct", false, "add punctuation in words mode")
	rootCmd.Flags().BoolVar(&flags.numbers, "numbers", false, "add numbers in words mode")
	rootCmd.Flags().Float64Var(&flags.punctPct, "punct-pct", defaultPunctPct, "percentage of words decorated with punctuation (0-100)")
	rootCmd.Flags().Float64Var(&flags.numbersPct, "numbers-pct", defaultNumbersPct, "probability a word is replaced by a number (0-1)")
	rootCmd.PersistentFlags().StringVar(&flags.dataDir, "data-dir", config.DefaultDataDir(), "directory holding languages/ and quotes/")
	rootCmd.Flags().StringVar(&flags.logFile, "log-file", config.DefaultLogPath(), "log file path (empty disables logging)")
	rootCmd.Flags().StringVar(&flags.logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn or error")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd(flags))

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, flags *practiceFlags) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyPracticeConfig(cmd, flags, fileCfg.Practice)
	applyStringConfig(cmd, "log-file", &flags.logFile, fileCfg.Log.File)
	applyStringConfig(cmd, "log-level", &flags.logLevel, fileCfg.Log.Level)

	cfg, err := buildConfig(flags)
	if err != nil {
		return err
	}

	logger, err := logging.New(logOptions(flags, fileCfg.Log))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting practice",
		zap.String("lang", cfg.Lang.String()),
		zap.Stringer("mode", cfg.Mode),
		zap.String("data_dir", cfg.DataDir),
	)

	store := corpus.NewStore(cfg.DataDir, logger.Named("corpus"))
	session := typing.NewSession(store, generator.New(), typing.WithLogger(logger.Named("session")))
	if err := preflight(store, cfg.Lang); err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewModel(cfg, session, logger.Named("tui")), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func applyPracticeConfig(cmd *cobra.Command, flags *practiceFlags, practice config.PracticeConfig) {
	applyStringConfig(cmd, "lang", &flags.lang, practice.Lang)
	applyStringConfig(cmd, "mode", &flags.mode, practice.Mode)
	applyIntConfig(cmd, "time", &flags.seconds, practice.Time)
	applyIntConfig(cmd, "words", &flags.words, practice.Words)
	applyStringConfig(cmd, "quote", &flags.quote, practice.Quote)
	applyBoolConfig(cmd, "punct", &flags.punct, practice.Punct)
	applyBoolConfig(cmd, "numbers", &flags.numbers, practice.Numbers)
	applyFloatConfig(cmd, "punct-pct", &flags.punctPct, practice.PunctPct)
	applyFloatConfig(cmd, "numbers-pct", &flags.numbersPct, practice.NumbersPct)
	applyStringConfig(cmd, "data-dir", &flags.dataDir, practice.DataDir)
}

func buildConfig(flags *practiceFlags) (model.Config, error) {
	lengths, err := corpus.ParseQuoteLengths(flags.quote)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --quote value: %w", err)
	}
	mode, err := model.ParseMode(flags.mode, flags.seconds, flags.words, flags.punct, flags.numbers, lengths)
	if err != nil {
		return model.Config{}, err
	}
	cfg := model.Config{
		Lang:         corpus.Language(strings.TrimSpace(flags.lang)),
		Mode:         mode,
		Words:        flags.words,
		PunctPct:     flags.punctPct,
		NumbersPct:   flags.numbersPct,
		DataDir:      flags.dataDir,
		QuoteLengths: lengths,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func logOptions(flags *practiceFlags, fileLog config.LogConfig) logging.Options {
	opts := logging.Options{
		File:       flags.logFile,
		Level:      flags.logLevel,
		MaxSizeMB:  defaultLogSizeMB,
		MaxBackups: defaultLogBackups,
		MaxAgeDays: defaultLogAgeDays,
	}
	if fileLog.MaxSizeMB != nil {
		opts.MaxSizeMB = *fileLog.MaxSizeMB
	}
	if fileLog.MaxBackups != nil {
		opts.MaxBackups = *fileLog.MaxBackups
	}
	if fileLog.MaxAgeDays != nil {
		opts.MaxAgeDays = *fileLog.MaxAgeDays
	}
	return opts
}

// preflight loads the starting language so a missing corpus is reported
// before the TUI takes over the terminal.
func preflight(store *corpus.Store, lang corpus.Language) error {
	if _, _, err := store.Load(lang); err != nil {
		if errors.Is(err, corpus.ErrCorpusNotFound) {
			return corpusNotFoundError(store.Dir(), lang)
		}
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	return nil
}

func corpusNotFoundError(dataDir string, lang corpus.Language) error {
	lines := []string{
		fmt.Sprintf("language %q not found", lang),
		fmt.Sprintf("expected word list at: %s", filepath.Join(dataDir, "languages", lang.String()+".json")),
		"Run: typist langs",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
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

func newLangsCmd(flags *practiceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List installed languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLangsCmd(cmd, flags)
		},
	}
}

func runLangsCmd(cmd *cobra.Command, flags *practiceFlags) error {
	dataDir := flags.dataDir
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if fileCfg.Practice.DataDir != nil && !cmd.Flags().Changed("data-dir") {
		dataDir = *fileCfg.Practice.DataDir
	}

	langs, err := corpus.NewStore(dataDir, nil).Languages()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	if len(langs) == 0 {
		return fmt.Errorf("no languages found in %s", filepath.Join(dataDir, "languages"))
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
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
	return fmt.Sprintf(`# typist configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q          # Language (default %q)
# mode = %q             # time, words or quote
# time = %d               # Seconds per test in time mode
# words = %d              # Words per test in words mode
# quote = %q             # Quote lengths: short, medium, long, thicc or all
# punct = false           # Punctuation in words mode
# numbers = false         # Numbers in words mode
# punct-pct = %.1f        # Percentage of words decorated with punctuation (0-100)
# numbers-pct = %.2f      # Probability a word is replaced by a number (0-1)
# data-dir = %q

[log]
# file = %q
# level = %q             # debug, info, warn or error
# max-size = %d           # Megabytes before rotation
# max-backups = %d         # Rotated files to keep
# max-age = %d            # Days to keep rotated files
`,
		corpus.DefaultLanguage,
		corpus.DefaultLanguage,
		defaultMode,
		defaultSeconds,
		defaultWords,
		defaultQuote,
		defaultPunctPct,
		defaultNumbersPct,
		config.DefaultDataDir(),
		config.DefaultLogPath(),
		defaultLogLevel,
		defaultLogSizeMB,
		defaultLogBackups,
		defaultLogAgeDays,
	)
}

func presetList(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, "/")
}

func validateConfig(cfg model.Config) error {
	if cfg.Lang == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if math.IsNaN(cfg.PunctPct) || cfg.PunctPct < 0 || cfg.PunctPct > 100 {
		return fmt.Errorf("--punct-pct must be between 0 and 100")
	}
	if math.IsNaN(cfg.NumbersPct) || cfg.NumbersPct < 0 || cfg.NumbersPct > 1 {
		return fmt.Errorf("--numbers-pct must be between 0 and 1")
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("--data-dir must not be empty")
	}
	return nil
}
