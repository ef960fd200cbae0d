package extraction

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offerflow/domain"
)

func tableBatch(rows int) *domain.RawBatch {
	b := &domain.RawBatch{
		SourceType: domain.SourceSpreadsheet,
		Columns:    []string{"EAN", "Description"},
	}
	for i := 0; i < rows; i++ {
		b.Rows = append(b.Rows, domain.Row{"EAN": fmt.Sprintf("%013d", i)})
	}
	return b
}

func TestPlanner_SingleChunkUnderBudget(t *testing.T) {
	for _, rows := range []int{1, 25, 50} {
		chunks := NewPlanner(50).Plan(tableBatch(rows))
		require.Len(t, chunks, 1, "rows=%d", rows)
		assert.Equal(t, 0, chunks[0].StartRow)
		assert.Equal(t, rows, chunks[0].EndRow)
		assert.Len(t, chunks[0].Rows, rows)
	}
}

func TestPlanner_PartitionCoversEveryRowExactlyOnce(t *testing.T) {
	batch := tableBatch(127)
	chunks := NewPlanner(50).Plan(batch)

	require.Len(t, chunks, 3)

	// Concatenating chunks in order reconstructs the original sequence.
	var rebuilt []domain.Row
	next := 0
	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, next, c.StartRow, "chunks must be contiguous")
		assert.LessOrEqual(t, len(c.Rows), 50, "chunk exceeds row budget")
		assert.Equal(t, c.EndRow-c.StartRow, len(c.Rows))
		next = c.EndRow
		rebuilt = append(rebuilt, c.Rows...)
	}
	assert.Equal(t, batch.Rows, rebuilt)
}

func TestPlanner_RepeatsColumnLabels(t *testing.T) {
	batch := tableBatch(120)
	for _, c := range NewPlanner(50).Plan(batch) {
		assert.Equal(t, batch.Columns, c.Columns)
	}
}

func TestPlanner_EmptyBatch(t *testing.T) {
	assert.Nil(t, NewPlanner(50).Plan(tableBatch(0)))
}

func TestPlanner_ImageBatchIsOneChunk(t *testing.T) {
	chunks := NewPlanner(50).Plan(&domain.RawBatch{
		SourceType: domain.SourceImage,
		ImageURL:   "data:image/png;base64,xxxx",
	})
	require.Len(t, chunks, 1)
	assert.Empty(t, chunks[0].Rows)
}
