package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/backmassage/panomux/internal/check"
	"github.com/backmassage/panomux/internal/config"
	"github.com/backmassage/panomux/internal/ffmpeg"
	"github.com/backmassage/panomux/internal/naming"
)

// Request describes one merge: where the segments come from, where the
// result goes, and whether an existing output may be replaced. The overwrite
// decision is always the caller's; the pipeline never answers it internally.
type Request struct {
	Source     Source
	OutputDir  string
	OutputName string // Defaults to config.DefaultOutputName when empty.
	Overwrite  bool

	// Observer receives progress events for this request. Nil means silent.
	Observer Observer
}

// Result is the successful terminal outcome of a merge request.
type Result struct {
	RequestID  string
	OutputPath string
	Segments   int
	Elapsed    time.Duration
	Rejected   []Rejection // Soft per-file diagnostics from discovery.
	DryRun     bool
}

// Runner drives merge requests end to end. At most one request runs per
// Runner at a time; a second concurrent call fails immediately with
// [KindAlreadyRunning] instead of queueing.
type Runner struct {
	cfg  *config.Config
	log  *zap.Logger
	busy atomic.Bool
}

// NewRunner builds a Runner over cfg. The config supplies the filename
// prefix, extension filter, tool timeout and dry-run switch; everything
// request-specific arrives with the [Request].
func NewRunner(cfg *config.Config, log *zap.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Merge runs one request to completion: preflight → discover → sequence →
// manifest → execute → verify. It is synchronous; shells that need a live
// event loop call it from their own goroutine and cancel via ctx, which
// terminates a running subprocess within a bounded grace period.
//
// The first hard failure aborts the request and is returned with its
// taxonomy [Kind] intact. The temporary manifest and any partial output are
// removed on every exit path.
func (r *Runner) Merge(ctx context.Context, req Request) (Result, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return Result{}, failf(KindAlreadyRunning, "another merge request is already in flight")
	}
	defer r.busy.Store(false)

	start := time.Now()
	id := uuid.NewString()
	log := r.log.With(zap.String("request", id))
	obs := req.Observer
	if obs == nil {
		obs = NopObserver{}
	}

	// --- Preflight ---
	outputPath, err := r.preflight(&req)
	if err != nil {
		log.Error("preflight failed", zap.Error(err))
		return Result{RequestID: id}, err
	}
	log.Info("merge request accepted",
		zap.String("source", req.Source.String()),
		zap.String("output", outputPath))

	// --- Discover ---
	pat := naming.NewPattern(r.cfg.Prefix)
	disc, err := Discover(req.Source, pat, r.cfg.Extensions)
	if err != nil {
		log.Error("discovery failed", zap.Error(err))
		return Result{RequestID: id}, err
	}
	obs.OnDiscovered(disc)
	log.Info("discovery complete",
		zap.Int("accepted", len(disc.Accepted)),
		zap.Int("rejected", len(disc.Rejected)))
	for _, rej := range disc.Rejected {
		log.Warn("segment rejected", zap.String("path", rej.Path), zap.String("reason", rej.Reason))
	}

	// --- Sequence ---
	segs, err := Sequence(disc)
	if err != nil {
		log.Error("sequencing failed", zap.Error(err))
		return Result{RequestID: id}, err
	}
	obs.OnSequenced(segs)
	log.Info("segments ordered",
		zap.Int("count", len(segs)),
		zap.Time("first", segs[0].Timestamp),
		zap.Time("last", segs[len(segs)-1].Timestamp))

	if err := ctx.Err(); err != nil {
		return Result{RequestID: id}, ctxError(err)
	}

	// --- Manifest ---
	manifest, err := WriteManifest(segs)
	if err != nil {
		log.Error("manifest build failed", zap.Error(err))
		return Result{RequestID: id}, err
	}
	defer func() {
		if rmErr := os.Remove(manifest); rmErr != nil {
			log.Warn("manifest cleanup failed", zap.Error(rmErr))
		}
	}()
	obs.OnManifestBuilt(manifest)
	log.Debug("manifest built", zap.String("path", manifest))

	args := ffmpeg.ConcatArgs(manifest, outputPath)

	if r.cfg.DryRun {
		log.Info("dry run, skipping execution",
			zap.String("command", "ffmpeg "+strings.Join(args, " ")))
		return Result{
			RequestID:  id,
			OutputPath: outputPath,
			Segments:   len(segs),
			Elapsed:    time.Since(start),
			Rejected:   disc.Rejected,
			DryRun:     true,
		}, nil
	}

	// --- Execute ---
	tool, err := check.Resolve(ctx)
	if err != nil {
		log.Error("tool resolution failed", zap.Error(err))
		return Result{RequestID: id}, wrapf(KindToolUnavailable, err, "no usable concatenation tool")
	}
	log.Info("tool resolved", zap.String("path", tool.Path), zap.String("origin", tool.Origin()))

	obs.OnMergeStarted(tool.Path, args)
	log.Info("merge started",
		zap.Int("segments", len(segs)),
		zap.Duration("timeout", r.cfg.Timeout))

	toolElapsed, err := executeMerge(ctx, tool.Path, args, outputPath, r.cfg.Timeout, obs.OnToolLine)
	obs.OnMergeDone(toolElapsed, err)
	if err != nil {
		log.Error("merge failed", zap.Error(err), zap.Duration("elapsed", toolElapsed))
		return Result{RequestID: id}, err
	}

	res := Result{
		RequestID:  id,
		OutputPath: outputPath,
		Segments:   len(segs),
		Elapsed:    time.Since(start),
		Rejected:   disc.Rejected,
	}
	log.Info("merge complete",
		zap.String("output", res.OutputPath),
		zap.Int("segments", res.Segments),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

// preflight validates the output side of the request before any work runs:
// the output directory must exist, and an existing output file is only
// acceptable when the caller confirmed overwrite.
func (r *Runner) preflight(req *Request) (string, error) {
	if req.OutputName == "" {
		req.OutputName = config.DefaultOutputName
	}

	fi, err := os.Stat(req.OutputDir)
	if err != nil {
		return "", fmt.Errorf("output directory %s: %w", req.OutputDir, err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("output path %s is not a directory", req.OutputDir)
	}

	out := filepath.Join(req.OutputDir, req.OutputName)
	if !req.Overwrite {
		if _, err := os.Stat(out); err == nil {
			return "", failf(KindOutputAlreadyExists,
				"output %s already exists and overwrite was not confirmed", out)
		}
	}
	return out, nil
}
