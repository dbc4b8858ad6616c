package ffmpeg

// ConcatArgs constructs the argument slice for a concat-demuxer stream-copy
// merge. The binary itself is not included; callers pass the resolved tool
// path to [Execute] separately.
func ConcatArgs(manifestPath, outputPath string) []string {
	args := make([]string, 0, 12)

	// --- Concat demuxer input ---
	// -safe 0 permits absolute paths in the manifest.
	args = append(args, "-f", "concat", "-safe", "0", "-i", manifestPath)

	// --- Stream copy ---
	// No re-encode; make_zero shifts any negative timestamps so players
	// don't stall at segment joins.
	args = append(args, "-c", "copy", "-avoid_negative_ts", "make_zero")

	// --- Output ---
	args = append(args, "-y", outputPath)

	return args
}
