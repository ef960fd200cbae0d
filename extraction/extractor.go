package extraction

import (
	"context"

	"offerflow/domain"
)

// Mode selects the prompt family sent to the extraction service.
type Mode string

const (
	ModeTable Mode = "table"
	ModeImage Mode = "image"
)

// Request is one call against the extraction boundary: a chunk's rows for
// table-sourced batches, or an image payload for photographed tables.
type Request struct {
	Mode         Mode
	Category     domain.Category
	ExtractPrice bool

	Columns []string
	Rows    []domain.Row

	// ImageURL is a data URL, set for ModeImage only.
	ImageURL string
}

// Extractor is the opaque language-understanding boundary. Rate limits,
// auth and model selection are its concern; the orchestrator only retries
// once on failure. Implementations must be safe for concurrent use.
type Extractor interface {
	// Extract returns the structured rows the service read out of the
	// request payload, in source order.
	Extract(ctx context.Context, req Request) ([]domain.Row, error)

	// Translate renders a product description in English, preserving brand
	// names verbatim. Already-English input comes back unchanged.
	Translate(ctx context.Context, text string) (string, error)
}
