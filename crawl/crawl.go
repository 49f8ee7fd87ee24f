// Package crawl orchestrates batch runs: downloading article pages from
// category listings or feeds, and parsing stored sources into documents.
package crawl

// Result holds the tally of a batch run.
type Result struct {
	// OK counts articles downloaded or documents written.
	OK int

	// Existing counts articles already on disk.
	Existing int

	// Skipped counts inputs deliberately ignored: empty sources and
	// articles repeated within the run.
	Skipped int

	// Errors counts failed inputs.
	Errors int

	// Bytes is the size of the downloaded pages.
	Bytes int

	Failures []Failure
}

// Failure records why one input failed.
type Failure struct {
	// Path is the file path or URL of the input.
	Path string
	Err  error
}

// Processed returns the number of inputs that were either handled or failed.
func (r *Result) Processed() int {
	return r.OK + r.Errors
}

// Add accumulates other into r.
func (r *Result) Add(other *Result) {
	if other == nil {
		return
	}
	r.OK += other.OK
	r.Existing += other.Existing
	r.Skipped += other.Skipped
	r.Errors += other.Errors
	r.Bytes += other.Bytes
	r.Failures = append(r.Failures, other.Failures...)
}

func (r *Result) fail(path string, err error) {
	r.Errors++
	r.Failures = append(r.Failures, Failure{Path: path, Err: err})
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress.
type ProgressFunc func(event ProgressEvent)

func (f ProgressFunc) emit(event ProgressEvent) {
	if f != nil {
		f(event)
	}
}
