package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/backmassage/panomux/internal/pipeline"
	"github.com/backmassage/panomux/internal/term"
)

// Console renders merge progress for an interactive session: an
// indeterminate spinner while the tool runs, ticked by its output lines,
// plus the handful of stream description lines an operator actually wants
// to see. Everything else the tool prints goes to the debug log only.
//
// Phase transitions themselves are not echoed here; the request logger
// already reports them.
type Console struct {
	log *zap.Logger
	out io.Writer

	segments int
	bar      *progressbar.ProgressBar
}

// NewConsole builds a Console writing to stdout.
func NewConsole(log *zap.Logger) *Console {
	return &Console{log: log, out: os.Stdout}
}

func (c *Console) OnDiscovered(pipeline.Discovery) {}

func (c *Console) OnSequenced(segs []pipeline.Segment) {
	c.segments = len(segs)
}

func (c *Console) OnManifestBuilt(string) {}

func (c *Console) OnMergeStarted(string, []string) {
	f, ok := c.out.(*os.File)
	if !ok || !term.IsTerminal(f) {
		return
	}
	c.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription(fmt.Sprintf("merging %d segment(s)", c.segments)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func (c *Console) OnToolLine(line string) {
	if c.bar != nil {
		_ = c.bar.Add(1)
	}
	if interestingLine(line) {
		c.log.Info("tool output", zap.String("line", line))
		return
	}
	c.log.Debug("tool output", zap.String("line", line))
}

func (c *Console) OnMergeDone(time.Duration, error) {
	if c.bar == nil {
		return
	}
	_ = c.bar.Clear()
	c.bar = nil
}

// interestingLine picks the tool lines worth surfacing at info level:
// stream and duration descriptions, but not the per-frame progress churn.
func interestingLine(line string) bool {
	if strings.Contains(line, "frame=") && strings.Contains(line, "time=") {
		return false
	}
	return strings.Contains(line, "Duration:") ||
		strings.Contains(line, "Stream") ||
		strings.Contains(line, "Output")
}
