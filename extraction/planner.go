package extraction

import "offerflow/domain"

// Planner partitions a RawBatch into chunks that fit the extraction
// service's context budget. Small batches pass through as a single chunk.
type Planner struct {
	rowBudget int
}

func NewPlanner(rowBudget int) *Planner {
	return &Planner{rowBudget: rowBudget}
}

// Plan returns an ordered sequence of chunks covering every source row
// exactly once. Boundaries always fall on row boundaries, and every chunk
// repeats the batch's column labels so it is independently interpretable.
func (p *Planner) Plan(b *domain.RawBatch) []domain.Chunk {
	total := b.RowCount()
	if total == 0 {
		if b.SourceType == domain.SourceImage {
			// An image batch has no rows to split; the whole payload is
			// one extraction unit.
			return []domain.Chunk{{Index: 0, Columns: b.Columns}}
		}
		return nil
	}

	if total <= p.rowBudget {
		return []domain.Chunk{{
			Index:    0,
			StartRow: 0,
			EndRow:   total,
			Columns:  b.Columns,
			Rows:     b.Rows,
		}}
	}

	chunks := make([]domain.Chunk, 0, (total+p.rowBudget-1)/p.rowBudget)
	for start := 0; start < total; start += p.rowBudget {
		end := start + p.rowBudget
		if end > total {
			end = total
		}
		chunks = append(chunks, domain.Chunk{
			Index:    len(chunks),
			StartRow: start,
			EndRow:   end,
			Columns:  b.Columns,
			Rows:     b.Rows[start:end],
		})
	}
	return chunks
}
