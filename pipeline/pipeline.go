// Package pipeline drives one uploaded batch through the full
// extraction-to-canonical-to-category flow.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"offerflow/article"
	"offerflow/domain"
	"offerflow/extraction"
	"offerflow/limits"
	"offerflow/mapping"
	"offerflow/normalize"
	"offerflow/packaging"
)

// Options are the per-run external inputs.
type Options struct {
	Category      domain.Category
	DoubleStacked bool
	ExtractPrice  bool
}

// Numbering configures the article number generator. Counter is optional;
// when nil every run starts at Base.
type Numbering struct {
	Prefix  string
	Width   int
	Base    int
	Counter article.Counter
}

// Result is the output boundary: ordered category records plus the
// extraction errors of chunks that failed, for partial-failure visibility.
type Result struct {
	RunID   string                   `json:"run_id"`
	Records []domain.CategoryRecord  `json:"records"`
	Errors  []domain.ExtractionError `json:"extraction_errors,omitempty"`
}

type Pipeline struct {
	validator  *limits.Validator
	planner    *extraction.Planner
	orch       *extraction.Orchestrator
	normalizer *normalize.Normalizer
	numbering  Numbering
	logger     *zap.Logger
}

func New(
	validator *limits.Validator,
	planner *extraction.Planner,
	orch *extraction.Orchestrator,
	normalizer *normalize.Normalizer,
	numbering Numbering,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		validator:  validator,
		planner:    planner,
		orch:       orch,
		normalizer: normalizer,
		numbering:  numbering,
		logger:     logger,
	}
}

// Run processes one batch: validate, plan, extract, normalize, complete
// packaging quantities, map to the category schema and number the rows.
// A validation failure aborts before any extraction work is dispatched;
// after that only total extraction failure is fatal.
func (p *Pipeline) Run(ctx context.Context, batch *domain.RawBatch, opts Options) (*Result, error) {
	runID := uuid.NewString()
	logger := p.logger.With(
		zap.String("run_id", runID),
		zap.String("category", string(opts.Category)),
		zap.String("source_type", string(batch.SourceType)))

	if err := p.validator.Validate(batch); err != nil {
		logger.Warn("batch rejected by limit validator", zap.Error(err))
		return nil, err
	}

	chunks := p.planner.Plan(batch)
	logger.Info("batch planned",
		zap.Int("rows", batch.RowCount()),
		zap.Int("chunks", len(chunks)))

	records, extractionErrs, err := p.orch.Run(ctx, batch, chunks, opts.Category, opts.ExtractPrice)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	logger.Info("extraction complete",
		zap.Int("records", len(records)),
		zap.Int("failed_chunks", len(extractionErrs)))

	engine := packaging.NewEngine(opts.DoubleStacked)
	for i := range records {
		p.normalizer.Normalize(ctx, &records[i])
		engine.Complete(&records[i])
		engine.ApplyDoubleStack(&records[i])
	}

	schema := mapping.SchemaFor(opts.Category)
	result := &Result{RunID: runID, Errors: extractionErrs}

	if len(records) > 0 {
		numbers, err := p.generator().Allocate(len(records))
		if err != nil {
			return nil, err
		}
		result.Records = make([]domain.CategoryRecord, 0, len(records))
		for i, rec := range records {
			result.Records = append(result.Records, schema.Map(rec, numbers[i]))
		}
		logger.Info("run complete",
			zap.String("first_article", numbers[0]),
			zap.String("last_article", numbers[len(numbers)-1]))
	}

	return result, nil
}

// generator builds a fresh per-run allocator unless a continuation counter
// scopes numbering across runs.
func (p *Pipeline) generator() *article.Generator {
	if p.numbering.Counter != nil {
		return article.NewPersistentGenerator(p.numbering.Prefix, p.numbering.Width, p.numbering.Counter)
	}
	return article.NewGenerator(p.numbering.Prefix, p.numbering.Width, p.numbering.Base)
}
