package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/panomux/internal/display"
	"github.com/backmassage/panomux/internal/pipeline"
	"github.com/backmassage/panomux/internal/term"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <dir | files...>",
	Short: "Merge segments into a single output file",
	Long: `Merge discovers segments in a directory (or takes an explicit file
list), orders them by embedded timestamp, and concatenates them into
<output-dir>/<name> without re-encoding.

An existing output file is never replaced unless --overwrite is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&cfg.OutputDir, "output-dir", "o", cfg.OutputDir, "output directory")
	mergeCmd.Flags().StringVarP(&cfg.OutputName, "name", "n", cfg.OutputName, "output file name")
	mergeCmd.Flags().BoolVar(&cfg.Overwrite, "overwrite", false, "confirm replacing an existing output")
	mergeCmd.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "tool timeout")
	mergeCmd.Flags().StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "required filename prefix")
	mergeCmd.Flags().StringSliceVar(&cfg.Extensions, "extensions", cfg.Extensions, "directory-mode extension filter")
	mergeCmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "stop before invoking the tool")
}

func runMerge(cmd *cobra.Command, args []string) error {
	src, err := resolveSource(&cfg, args)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(&cfg, log)
	res, err := runner.Merge(cmd.Context(), pipeline.Request{
		Source:     src,
		OutputDir:  cfg.OutputDir,
		OutputName: cfg.OutputName,
		Overwrite:  cfg.Overwrite,
		Observer:   display.NewConsole(log),
	})
	if err != nil {
		printErrorTail(err)
		return err
	}

	if res.DryRun {
		fmt.Printf("dry run: %d segment(s) would be merged into %s\n", res.Segments, res.OutputPath)
		return nil
	}

	fi, err := os.Stat(res.OutputPath)
	if err != nil {
		return err
	}
	fmt.Printf("%smerged%s %d segment(s) into %s (%s) in %s\n",
		term.Green, term.NC,
		res.Segments, res.OutputPath,
		display.FormatBytes(fi.Size()), display.FormatDuration(res.Elapsed))
	return nil
}

// printErrorTail surfaces the tool's final output lines on stderr so a
// failed merge can be diagnosed without opening the log file.
func printErrorTail(err error) {
	var perr *pipeline.Error
	if !errors.As(err, &perr) || len(perr.Tail) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%slast tool output:%s\n", term.Bold, term.NC)
	for _, line := range perr.Tail {
		fmt.Fprintf(os.Stderr, "  %s\n", line)
	}
}
