// Package ffmpeg builds and supervises concat-mode ffmpeg invocations.
//
// The package knows nothing about segments or merge requests: it assembles
// an argument slice, runs the subprocess under a context, streams output
// lines as they arrive, and reports how the process ended as an explicit
// [State]. Callers map states and exit codes onto their own error taxonomy.
package ffmpeg
