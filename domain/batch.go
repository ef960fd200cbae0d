package domain

// SourceType identifies which reader produced a RawBatch.
type SourceType string

const (
	SourceSpreadsheet SourceType = "spreadsheet"
	SourcePDF         SourceType = "pdf"
	SourceImage       SourceType = "image"
)

// Category selects the output schema for a run.
type Category string

const (
	CategoryFood Category = "FOOD"
	CategoryHPC  Category = "HPC"
)

// Row is one input line keyed by the supplier's original column labels.
// Values are whatever the upstream reader produced (strings, numbers, nil).
type Row map[string]any

// RawBatch is the parsed input handed over by the file-reading collaborators.
// It is consumed once by the chunk planner and never mutated afterwards.
type RawBatch struct {
	SourceType SourceType `json:"source_type"`
	Columns    []string   `json:"columns"`
	Rows       []Row      `json:"rows"`

	// ImageURL carries the data URL of a photographed table. Set only for
	// image-sourced batches, where Rows is empty.
	ImageURL string `json:"image_url,omitempty"`

	// Declared shape, used by the limit validator before any extraction.
	ByteSize   int64 `json:"byte_size"`
	SheetCount int   `json:"sheet_count"`
}

func (b *RawBatch) RowCount() int { return len(b.Rows) }

func (b *RawBatch) ColumnCount() int { return len(b.Columns) }

// Chunk is a contiguous, size-bounded slice of a RawBatch tagged with its
// originating row range. Column labels are repeated on every chunk so each
// one is independently interpretable by the extraction service.
type Chunk struct {
	Index    int
	StartRow int // inclusive, zero-based within the batch
	EndRow   int // exclusive
	Columns  []string
	Rows     []Row
}
