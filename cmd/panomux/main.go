// Command panomux is the CLI entrypoint for the panorama segment merger.
//
// It discovers recorder segments by their embedded timestamps, orders them
// chronologically, and concatenates them losslessly with ffmpeg. Subcommands
// cover the merge itself, a read-only listing, a tool installation check,
// and version output.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/backmassage/panomux/internal/config"
	"github.com/backmassage/panomux/internal/display"
	"github.com/backmassage/panomux/internal/logging"
	"github.com/backmassage/panomux/internal/pipeline"
	"github.com/backmassage/panomux/internal/term"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build", these retain their defaults.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

var (
	cfg        = config.DefaultConfig()
	configPath string
	log        *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "panomux",
	Short: "Merge panorama recorder segments into a single video",
	Long: `Panomux merges the segment files a multi-camera panorama rig writes
(RecM0<unit>_<YYYYMMDD>_<HHMMSS>*.mp4) into one continuous video.

Segments are ordered by the timestamp embedded in their names and
concatenated without re-encoding via ffmpeg's concat demuxer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "version", "help":
			return nil
		}
		return bootstrap(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFile, "log-file", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().StringVar((*string)(&cfg.ColorMode), "color", string(cfg.ColorMode), "color output (auto|always|never)")

	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

// bootstrap finalizes the configuration (file overlay, validation), resolves
// the color state, and builds the logger. Explicit flags win over file
// values, file values win over defaults.
func bootstrap(cmd *cobra.Command) error {
	if configPath != "" {
		fileCfg, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		if err := fileCfg.Apply(&cfg, cmd.Flags().Changed); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	term.Configure(cfg.ColorMode)

	var err error
	log, err = logging.New(&cfg)
	if err != nil {
		return err
	}

	display.PrintBanner()
	return nil
}

// resolveSource maps the positional arguments onto c and returns the
// matching source variant. A single argument naming an existing directory
// selects directory mode; anything else is an explicit file list.
func resolveSource(c *config.Config, args []string) (pipeline.Source, error) {
	if len(args) == 0 {
		return pipeline.Source{}, errors.New("no source given: pass a directory or segment files")
	}
	if len(args) == 1 {
		if fi, err := os.Stat(args[0]); err == nil && fi.IsDir() {
			c.SourceDir = config.NormalizeDirArg(args[0])
			return pipeline.DirSource(c.SourceDir), nil
		}
	}
	c.SourceFiles = args
	return pipeline.FileSource(c.SourceFiles...), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "panomux: %v\n", err)
		os.Exit(1)
	}
}
