package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/lmittmann/tint"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	gitcli "github.com/xwillq/git-stage-editor/internal/adapters/git"
	"github.com/xwillq/git-stage-editor/internal/config"
	"github.com/xwillq/git-stage-editor/internal/editor"
)

var (
	runPatterns      []string
	runDryRun        bool
	runNoWorkingTree bool
)

// runCmd pipes each eligible staged file through an external filter command.
var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "Run each staged file through a filter command",
	Long: `Run each staged addition or modification through a filter command.

The filter receives the path of a temporary copy of the staged content as its
last argument and is expected to edit that file in place. Changed results are
written back into the index; unchanged and emptied results are skipped.

Examples:
  git-stage-editor run -- gofmt -w
  git-stage-editor run --pattern '*.md' -- sed -i 's/TODO/DONE/'
  git-stage-editor run --dry-run -- markdownlint`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringArrayVar(&runPatterns, "pattern", nil, "path filter; a leading / selects a regular expression, otherwise a shell glob (repeatable)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "run the filter without touching the index or working tree")
	runCmd.Flags().BoolVar(&runNoWorkingTree, "no-working-tree", false, "update the index only, leave the working tree untouched")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger with pretty console output
	logLevel := slog.LevelInfo
	zerologLevel, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		zerologLevel = zerolog.InfoLevel
	}
	if verbose {
		logLevel = slog.LevelDebug
		zerologLevel = zerolog.DebugLevel
	}

	// Configure zerolog global logger for the editor and git packages
	zerolog.SetGlobalLevel(zerologLevel)
	if cfg.Logging.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Configure slog logger for command status lines
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.Kitchen,
	}))

	client, err := gitcli.NewClient(cfg.Repository.Path, cfg.Git.Command)
	if err != nil {
		return err
	}
	ed := editor.NewWithClient(client)

	patterns := cfg.Editor.Patterns
	if len(runPatterns) > 0 {
		patterns = runPatterns
	}

	opts := editor.Options{
		Patterns:          patterns,
		Write:             !runDryRun,
		UpdateWorkingTree: cfg.Editor.UpdateWorkingTree && !runNoWorkingTree,
	}

	logger.Info("editing staged files",
		"root", client.Root(),
		"filter", args[0],
		"patterns", len(patterns),
		"dry_run", runDryRun,
	)

	ctx := context.Background()
	filter := func(f *os.File, path string) error {
		filterArgs := append(append([]string{}, args[1:]...), path)
		c := exec.CommandContext(ctx, args[0], filterArgs...)
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	}

	updated, err := ed.Execute(ctx, filter, opts)
	if err != nil {
		return err
	}

	logger.Info("done", "updated", len(updated))
	for _, path := range updated {
		fmt.Println(path)
	}

	return nil
}
