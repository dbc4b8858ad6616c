// Package naming parses panorama segment filenames.
//
// A segment name carries three tokens after the recorder prefix: the unit
// index, an 8-digit date and a 6-digit time, underscore-separated:
//
//	RecM03_20231215_143108_0007.mp4
//	^^^^^ ^  ^^^^^^^^ ^^^^^^
//	prefix|  date     time
//	      unit
//
// [Pattern.Parse] is a pure function over the base name. The timestamp is
// the pipeline's sole primary ordering key; the unit index is informational.
// Trailing suffix bytes (counters, rig serials) are ignored here and only
// matter as the lexicographic tie-break applied downstream.
package naming
