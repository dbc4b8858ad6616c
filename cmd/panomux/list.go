package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/backmassage/panomux/internal/display"
	"github.com/backmassage/panomux/internal/naming"
	"github.com/backmassage/panomux/internal/pipeline"
	"github.com/backmassage/panomux/internal/term"
)

const timestampLayout = "2006-01-02 15:04:05"

var listCmd = &cobra.Command{
	Use:   "list <dir | files...>",
	Short: "Show what merge would do, without merging",
	Long: `List runs discovery and ordering over the given source and prints
the segments in the order merge would concatenate them, together with the
files that were considered and rejected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "required filename prefix")
	listCmd.Flags().StringSliceVar(&cfg.Extensions, "extensions", cfg.Extensions, "directory-mode extension filter")
}

func runList(cmd *cobra.Command, args []string) error {
	src, err := resolveSource(&cfg, args)
	if err != nil {
		return err
	}

	disc, err := pipeline.Discover(src, naming.NewPattern(cfg.Prefix), cfg.Extensions)
	if err != nil {
		return err
	}
	segs, err := pipeline.Sequence(disc)
	if err != nil {
		// The rejections still explain what was found.
		printRejections(disc.Rejected)
		return err
	}

	printSegmentTable(segs)
	printRejections(disc.Rejected)

	var total int64
	for _, s := range segs {
		total += s.Size
	}
	fmt.Printf("%d segment(s), %s total\n", len(segs), display.FormatBytes(total))
	return nil
}

func printSegmentTable(segs []pipeline.Segment) {
	idxW := len(strconv.Itoa(len(segs)))
	if idxW < len("#") {
		idxW = len("#")
	}
	tsW := len("Timestamp")
	unitW := len("Unit")
	sizeW := len("Size")

	for _, s := range segs {
		if w := len(s.Timestamp.Format(timestampLayout)); w > tsW {
			tsW = w
		}
		if w := len(strconv.Itoa(s.Unit)); w > unitW {
			unitW = w
		}
		if w := len(display.FormatBytes(s.Size)); w > sizeW {
			sizeW = w
		}
	}

	header := fmt.Sprintf("  %*s  %-*s  %-*s  %-*s  %s",
		idxW, "#",
		tsW, "Timestamp",
		unitW, "Unit",
		sizeW, "Size",
		"Name",
	)
	fmt.Println(header)
	fmt.Println("  " + strings.Repeat("─", len(header)-2))

	for i, s := range segs {
		fmt.Printf("  %*d  %-*s  %-*d  %-*s  %s\n",
			idxW, i+1,
			tsW, s.Timestamp.Format(timestampLayout),
			unitW, s.Unit,
			sizeW, display.FormatBytes(s.Size),
			s.BaseName,
		)
	}
	fmt.Println()
}

func printRejections(rejected []pipeline.Rejection) {
	if len(rejected) == 0 {
		return
	}
	for _, r := range rejected {
		fmt.Printf("  %sskipped%s  %s: %s\n", term.Yellow, term.NC, filepath.Base(r.Path), r.Reason)
	}
	fmt.Println()
}
