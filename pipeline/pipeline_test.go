package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"offerflow/domain"
	"offerflow/extraction"
	"offerflow/limits"
	"offerflow/normalize"
)

// scriptedExtractor echoes each chunk's rows back as extracted products and
// fails the chunk indexes listed in failRows.
type scriptedExtractor struct {
	mu       sync.Mutex
	failRows map[int]bool // keyed by the chunk's first source row index
}

func (s *scriptedExtractor) Extract(_ context.Context, req extraction.Request) ([]domain.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(req.Rows) == 0 {
		return nil, errors.New("no rows")
	}
	first := int(req.Rows[0]["idx"].(float64))
	if s.failRows[first] {
		return nil, errors.New("scripted failure")
	}

	out := make([]domain.Row, 0, len(req.Rows))
	for _, r := range req.Rows {
		out = append(out, domain.Row{
			"ean":                  r["ean"],
			"product_description":  r["desc"],
			"content":              r["content"],
			"languages":            "NL/FR",
			"piece_per_case":       float64(24),
			"case_per_pallet":      float64(9),
			"availability_cartons": float64(10),
		})
	}
	return out, nil
}

func (s *scriptedExtractor) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}

func testPipeline(ex extraction.Extractor, rowBudget int) *Pipeline {
	logger := zap.NewNop()
	return New(
		limits.NewValidator(limits.Thresholds{
			MaxFileBytes:       1 << 20,
			MaxRowsPerSheet:    1000,
			MaxColumnsPerSheet: 50,
			MaxSheets:          5,
		}),
		extraction.NewPlanner(rowBudget),
		extraction.NewOrchestrator(ex, 2, logger),
		normalize.NewNormalizer(nil, logger),
		Numbering{Prefix: "AC", Width: 8, Base: 1000},
		logger,
	)
}

func inputBatch(rows int) *domain.RawBatch {
	b := &domain.RawBatch{
		SourceType: domain.SourceSpreadsheet,
		Columns:    []string{"idx", "ean", "desc", "content"},
		ByteSize:   1024,
		SheetCount: 1,
	}
	for i := 0; i < rows; i++ {
		b.Rows = append(b.Rows, domain.Row{
			"idx":     float64(i),
			"ean":     fmt.Sprintf("%08d", 10000000+i),
			"desc":    fmt.Sprintf("MILKA 120G COW %d", i),
			"content": "120G",
		})
	}
	return b
}

func TestRun_EndToEnd(t *testing.T) {
	p := testPipeline(&scriptedExtractor{}, 50)

	result, err := p.Run(context.Background(), inputBatch(5), Options{Category: domain.CategoryFood})
	require.NoError(t, err)
	require.Len(t, result.Records, 5)
	assert.Empty(t, result.Errors)
	assert.NotEmpty(t, result.RunID)

	// Sequential article numbers from the configured base, in record order.
	wantNumbers := []string{"AC00001000", "AC00001001", "AC00001002", "AC00001003", "AC00001004"}
	for i, rec := range result.Records {
		assert.Equal(t, wantNumbers[i], rec.ArticleNumber)
	}

	// Normalization and packaging math flowed through to the output cells.
	first := result.Records[0]
	cells := map[string]string{}
	for _, c := range first.Cells {
		cells[c.Header] = c.Value
	}
	assert.Equal(t, "MILKA COW 0", cells["Product Description"])
	assert.Equal(t, "120GR", cells["Content"])
	assert.Equal(t, "FR/NL", cells["Languages"])
	assert.Equal(t, "216", cells["Pieces per pallet"])
	assert.Equal(t, "240", cells["Availability/Pieces"], "10 cartons x 24 per case")
}

func TestRun_ValidationAbortsBeforeExtraction(t *testing.T) {
	p := testPipeline(&scriptedExtractor{}, 50)

	batch := inputBatch(5)
	batch.ByteSize = 10 << 20

	_, err := p.Run(context.Background(), batch, Options{Category: domain.CategoryFood})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestRun_PartialFailureSurfacesRowRanges(t *testing.T) {
	// Three chunks of two rows; the middle chunk (starting at source row 2)
	// fails both attempts.
	ex := &scriptedExtractor{failRows: map[int]bool{2: true}}
	p := testPipeline(ex, 2)

	result, err := p.Run(context.Background(), inputBatch(6), Options{Category: domain.CategoryHPC})
	require.NoError(t, err)

	assert.Len(t, result.Records, 4, "records from chunks 1 and 3 survive")
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].ChunkIndex)
	assert.Equal(t, 2, result.Errors[0].StartRow)
	assert.Equal(t, 4, result.Errors[0].EndRow)
}

func TestRun_TotalExtractionFailureIsFatal(t *testing.T) {
	ex := &scriptedExtractor{failRows: map[int]bool{0: true, 2: true, 4: true}}
	p := testPipeline(ex, 2)

	_, err := p.Run(context.Background(), inputBatch(6), Options{Category: domain.CategoryFood})
	require.ErrorIs(t, err, extraction.ErrAllChunksFailed)
}

func TestRun_DoubleStackDoublesAvailability(t *testing.T) {
	p := testPipeline(&scriptedExtractor{}, 50)

	result, err := p.Run(context.Background(), inputBatch(1), Options{
		Category:      domain.CategoryHPC,
		DoubleStacked: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	cells := map[string]string{}
	for _, c := range result.Records[0].Cells {
		cells[c.Header] = c.Value
	}
	assert.Equal(t, "20", cells["Availability/Cartons"])
	assert.Equal(t, "480", cells["Availability/Pieces"])
	assert.False(t, func() bool {
		for _, c := range result.Records[0].Cells {
			if c.Header == "BBD" {
				return true
			}
		}
		return false
	}(), "HPC output must not contain a BBD column")
}

func TestRun_SeparateRunsRestartNumbering(t *testing.T) {
	p := testPipeline(&scriptedExtractor{}, 50)

	first, err := p.Run(context.Background(), inputBatch(2), Options{Category: domain.CategoryFood})
	require.NoError(t, err)
	second, err := p.Run(context.Background(), inputBatch(2), Options{Category: domain.CategoryFood})
	require.NoError(t, err)

	assert.Equal(t, "AC00001000", first.Records[0].ArticleNumber)
	assert.Equal(t, "AC00001000", second.Records[0].ArticleNumber,
		"without a continuation counter each run starts at the base")
}
