package types

import "time"

// Kind identifies a conversion pipeline.
type Kind string

const (
	KindWordPDF      Kind = "word2pdf"
	KindMarkdownWord Kind = "md2word"
	KindPDFImages    Kind = "pdf2img"
)

// Status is the recorded outcome of one conversion attempt.
type Status string

const (
	StatusDone   Status = "done"
	StatusFailed Status = "failed"
)

// Request describes one conversion: an input path plus an optional output
// path. When Output is empty the orchestrator derives it from Input by
// extension substitution.
type Request struct {
	Input  string
	Output string
}

// Result holds the outcome of one conversion attempt.
type Result struct {
	Input    string
	Output   string
	Err      error
	Duration time.Duration
}

// OK reports whether the conversion succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Status returns the ledger status for this result.
func (r Result) Status() Status {
	if r.OK() {
		return StatusDone
	}
	return StatusFailed
}

// BatchResult accumulates per-file outcomes of a batch run.
type BatchResult struct {
	Results   []Result
	Converted int
	Failed    int
}

// Add appends a per-file result and updates the counters.
func (b *BatchResult) Add(r Result) {
	b.Results = append(b.Results, r)
	if r.OK() {
		b.Converted++
	} else {
		b.Failed++
	}
}

// Total returns the total number of files processed.
func (b BatchResult) Total() int {
	return b.Converted + b.Failed
}

// HasFailures reports whether any file failed conversion.
func (b BatchResult) HasFailures() bool {
	return b.Failed > 0
}
