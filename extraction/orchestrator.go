package extraction

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"offerflow/domain"
)

// ErrAllChunksFailed is the only fatal extraction outcome: not a single
// chunk produced usable rows.
var ErrAllChunksFailed = errors.New("extraction failed for every chunk")

// Orchestrator drives the per-chunk extraction calls. Chunks are
// independent work items dispatched concurrently up to a parallelism bound;
// the merge afterwards is a single-threaded reduction keyed by chunk index
// and EAN, so results are deterministic regardless of arrival order.
type Orchestrator struct {
	extractor   Extractor
	parallelism int
	logger      *zap.Logger
}

func NewOrchestrator(extractor Extractor, parallelism int, logger *zap.Logger) *Orchestrator {
	if parallelism <= 0 {
		parallelism = 1
	}
	return &Orchestrator{
		extractor:   extractor,
		parallelism: parallelism,
		logger:      logger,
	}
}

// Run extracts every chunk, retrying each failed call once with an
// unmodified request, and merges the results in chunk order. Chunks that
// fail twice are reported as ExtractionErrors without aborting siblings.
func (o *Orchestrator) Run(
	ctx context.Context,
	batch *domain.RawBatch,
	chunks []domain.Chunk,
	category domain.Category,
	extractPrice bool,
) ([]domain.CanonicalRecord, []domain.ExtractionError, error) {
	if len(chunks) == 0 {
		return nil, nil, nil
	}

	results := make([][]domain.CanonicalRecord, len(chunks))
	failures := make([]*domain.ExtractionError, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)

	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			recs, xerr := o.extractChunk(gctx, batch, chunk, category, extractPrice)
			if xerr != nil {
				o.logger.Warn("chunk extraction failed",
					zap.Int("chunk", chunk.Index),
					zap.Int("start_row", chunk.StartRow),
					zap.Int("end_row", chunk.EndRow),
					zap.String("reason", xerr.Reason))
				failures[chunk.Index] = xerr
				return nil
			}
			results[chunk.Index] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var errs []domain.ExtractionError
	succeeded := 0
	var merged []domain.CanonicalRecord
	for i := range chunks {
		if failures[i] != nil {
			errs = append(errs, *failures[i])
			continue
		}
		succeeded++
		merged = append(merged, results[i]...)
	}

	if succeeded == 0 {
		return nil, errs, ErrAllChunksFailed
	}
	return dedupeByEAN(merged), errs, nil
}

// extractChunk performs one call plus one unmodified retry.
func (o *Orchestrator) extractChunk(
	ctx context.Context,
	batch *domain.RawBatch,
	chunk domain.Chunk,
	category domain.Category,
	extractPrice bool,
) ([]domain.CanonicalRecord, *domain.ExtractionError) {
	req := Request{
		Mode:         ModeTable,
		Category:     category,
		ExtractPrice: extractPrice,
		Columns:      chunk.Columns,
		Rows:         chunk.Rows,
	}
	if batch.SourceType == domain.SourceImage {
		req.Mode = ModeImage
		req.ImageURL = batch.ImageURL
		req.Rows = nil
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		rows, err := o.extractor.Extract(ctx, req)
		if err != nil {
			lastErr = err
			continue
		}
		recs := make([]domain.CanonicalRecord, 0, len(rows))
		for i, row := range rows {
			recs = append(recs, RecordFromRow(row, chunk.Index, chunk.StartRow+i+1))
		}
		return recs, nil
	}

	reason := domain.ReasonCallFailed
	if errors.Is(lastErr, ErrBadResponse) {
		reason = domain.ReasonBadResponse
	}
	return nil, &domain.ExtractionError{
		ChunkIndex: chunk.Index,
		StartRow:   chunk.StartRow,
		EndRow:     chunk.EndRow,
		Reason:     reason,
		Message:    lastErr.Error(),
	}
}

// dedupeByEAN collapses rows sharing an EAN into the most complete
// candidate (highest populated-field count), ties broken by earliest chunk
// order. Records without an EAN are never merged.
func dedupeByEAN(records []domain.CanonicalRecord) []domain.CanonicalRecord {
	best := make(map[string]int) // EAN -> index into records of the winner
	order := make([]int, 0, len(records))

	for i, rec := range records {
		if rec.EAN == "" {
			order = append(order, i)
			continue
		}
		prev, seen := best[rec.EAN]
		if !seen {
			best[rec.EAN] = i
			order = append(order, i)
			continue
		}
		// Strictly greater keeps the earlier candidate on ties.
		if rec.PopulatedFields() > records[prev].PopulatedFields() {
			best[rec.EAN] = i
		}
	}

	// Output position follows the first occurrence of each EAN even when
	// the winning candidate came from a later chunk.
	out := make([]domain.CanonicalRecord, 0, len(order))
	for _, idx := range order {
		rec := records[idx]
		if rec.EAN != "" {
			rec = records[best[rec.EAN]]
		}
		out = append(out, rec)
	}
	return out
}
