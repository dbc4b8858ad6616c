package pipeline

import "time"

// Observer receives the ordered progress events of one merge request. Events
// arrive from the merge goroutine in emission order; implementations must
// return promptly and never block (buffer and hand off if dispatch is slow).
type Observer interface {
	// OnDiscovered fires once the source has been scanned, before ordering.
	OnDiscovered(d Discovery)

	// OnSequenced fires with the segments in final concatenation order.
	OnSequenced(segments []Segment)

	// OnManifestBuilt fires once the concat list file exists on disk.
	OnManifestBuilt(path string)

	// OnMergeStarted fires just before the tool subprocess launches.
	OnMergeStarted(bin string, args []string)

	// OnToolLine fires for every output line the tool emits, as it arrives.
	OnToolLine(line string)

	// OnMergeDone fires when execution and output verification end, with
	// the tool's wall-clock time and the classified failure, nil on success.
	OnMergeDone(elapsed time.Duration, err error)
}

// NopObserver discards every event. It backs requests that supply no sink.
type NopObserver struct{}

func (NopObserver) OnDiscovered(Discovery)           {}
func (NopObserver) OnSequenced([]Segment)            {}
func (NopObserver) OnManifestBuilt(string)           {}
func (NopObserver) OnMergeStarted(string, []string)  {}
func (NopObserver) OnToolLine(string)                {}
func (NopObserver) OnMergeDone(time.Duration, error) {}
