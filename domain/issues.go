package domain

import "fmt"

// IssueKind classifies problems that are recorded on a record and surfaced
// to the operator without stopping the run.
type IssueKind string

const (
	// IssueNormalization marks a field that could not be confidently parsed;
	// the value is preserved verbatim.
	IssueNormalization IssueKind = "normalization_warning"

	// IssuePackaging marks a cross-check mismatch between derived and
	// supplied quantities; neither value is auto-corrected.
	IssuePackaging IssueKind = "packaging_inconsistency"
)

// Issue is attached to the affected record, never thrown.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
}

// ValidationError rejects an input before any extraction cost is incurred.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "input rejected: " + e.Reason
}

// Extraction failure reason codes.
const (
	ReasonCallFailed  = "call_failed"
	ReasonBadResponse = "bad_response"
)

// ExtractionError records that one chunk's extraction failed after its
// retry. Sibling chunks are unaffected; the pipeline proceeds with whatever
// succeeded and hands the collected errors to the caller.
type ExtractionError struct {
	ChunkIndex int    `json:"chunk_index"`
	StartRow   int    `json:"start_row"`
	EndRow     int    `json:"end_row"`
	Reason     string `json:"reason"`
	Message    string `json:"message"`
}

func (e ExtractionError) Error() string {
	return fmt.Sprintf("chunk %d (rows %d-%d): %s: %s",
		e.ChunkIndex, e.StartRow, e.EndRow, e.Reason, e.Message)
}
