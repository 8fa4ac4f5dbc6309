// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RunStatus is the overall outcome of a batch run.
type RunStatus string

const (
	// StatusSuccess means every input file was processed and all outputs written.
	StatusSuccess RunStatus = "success"

	// StatusPartial means some files failed but the outputs were still produced.
	StatusPartial RunStatus = "partial"

	// StatusFailed means no file could be processed or an output could not be written.
	StatusFailed RunStatus = "failed"
)

// ExitCode maps the status to a process exit code at the outermost boundary.
// A partial run still produced output, so only total failure is non-zero:
// the launcher treats any non-zero code as a failed run.
func (s RunStatus) ExitCode() int {
	if s == StatusFailed {
		return 1
	}
	return 0
}

// FileResult records the outcome of processing one input PDF.
type FileResult struct {
	// Name is the base filename of the input.
	Name string `json:"name" yaml:"name"`

	// Pages is the number of pages read from the file.
	Pages int `json:"pages" yaml:"pages"`

	// Codes is the number of code matches found in the file.
	Codes int `json:"codes" yaml:"codes"`

	// Error holds the failure message for files that could not be read.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the file could not be processed.
func (r FileResult) Failed() bool {
	return r.Error != ""
}

// BatchResult aggregates the outcome of a full batch run: the code tally,
// per-file results, and the output files produced.
type BatchResult struct {
	// Folder is the input folder that was processed.
	Folder string `json:"folder" yaml:"folder"`

	// Files holds one entry per input PDF, in processing order.
	Files []FileResult `json:"files" yaml:"files"`

	// Tally is the aggregated code tally across all processed files.
	Tally Tally `json:"tally" yaml:"tally"`

	// Outputs lists the paths of all files written by the run.
	Outputs []string `json:"outputs" yaml:"outputs"`

	// CombinedPages is the page count of the combined output PDF, if one was written.
	CombinedPages int `json:"combined_pages" yaml:"combined_pages"`
}

// Processed returns the number of files read successfully.
func (r *BatchResult) Processed() int {
	n := 0
	for _, f := range r.Files {
		if !f.Failed() {
			n++
		}
	}
	return n
}

// FailedFiles returns the number of files that could not be read.
func (r *BatchResult) FailedFiles() int {
	return len(r.Files) - r.Processed()
}

// Status derives the overall run status from the per-file results.
func (r *BatchResult) Status() RunStatus {
	switch {
	case r.Processed() == 0:
		return StatusFailed
	case r.FailedFiles() > 0:
		return StatusPartial
	default:
		return StatusSuccess
	}
}
