package pipeline

import "sort"

// Sequence orders accepted candidates ascending by (timestamp, base name).
// The order is total and deterministic regardless of how the source listed
// the files. Segments from different units sharing a second are all kept;
// the base-name tie-break decides who goes first.
//
// Fails with [KindNoValidSegments] when discovery accepted nothing.
func Sequence(d Discovery) ([]Segment, error) {
	if len(d.Accepted) == 0 {
		return nil, failf(KindNoValidSegments,
			"no valid segments found (%d candidate(s) rejected)", len(d.Rejected))
	}

	segs := make([]Segment, len(d.Accepted))
	copy(segs, d.Accepted)
	sort.SliceStable(segs, func(i, j int) bool { return segmentLess(segs[i], segs[j]) })
	return segs, nil
}

// segmentLess is the merge order: timestamp, then base name, then full path.
// The path comparison only matters for explicit lists naming identical base
// names in different directories; it keeps the order total even then.
func segmentLess(a, b Segment) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	if a.BaseName != b.BaseName {
		return a.BaseName < b.BaseName
	}
	return a.Path < b.Path
}
