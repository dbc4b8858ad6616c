// Package pipeline implements the segment merge pipeline: discover candidate
// files from a source, order them chronologically, render the concat-demuxer
// manifest, and supervise the ffmpeg run that stitches them together.
//
// [Runner.Merge] is the single entry point presentation shells call. Control
// flow is strictly linear per request (discover → sequence → manifest →
// execute) and no component keeps state across requests; a [Runner] only
// guards against two requests overlapping in time.
//
// Hard failures carry a [Kind] from the merge taxonomy; per-file problems
// during discovery are soft [Rejection] diagnostics that ride along on the
// [Result] instead of aborting the request.
package pipeline
