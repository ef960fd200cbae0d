package packaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offerflow/domain"
)

func rec(mutate func(*domain.CanonicalRecord)) *domain.CanonicalRecord {
	r := &domain.CanonicalRecord{EAN: "12345678"}
	mutate(r)
	return r
}

func ip(n int) *int { return &n }

func TestComplete_TriadForward(t *testing.T) {
	r := rec(func(r *domain.CanonicalRecord) {
		r.PiecePerCase = ip(24)
		r.CasePerPallet = ip(9)
	})
	NewEngine(false).Complete(r)

	require.NotNil(t, r.PiecesPerPallet)
	assert.Equal(t, 216, *r.PiecesPerPallet)
	assert.Empty(t, r.Issues)
}

func TestComplete_TriadBackSolve(t *testing.T) {
	r := rec(func(r *domain.CanonicalRecord) {
		r.PiecePerCase = ip(24)
		r.PiecesPerPallet = ip(216)
	})
	NewEngine(false).Complete(r)

	require.NotNil(t, r.CasePerPallet)
	assert.Equal(t, 9, *r.CasePerPallet)
	assert.Empty(t, r.Issues)
}

func TestComplete_NonIntegerBackSolveFlagsInsteadOfRounding(t *testing.T) {
	r := rec(func(r *domain.CanonicalRecord) {
		r.PiecePerCase = ip(24)
		r.PiecesPerPallet = ip(217)
	})
	NewEngine(false).Complete(r)

	assert.Nil(t, r.CasePerPallet, "217/24 must not be rounded to 9")
	require.Len(t, r.Issues, 1)
	assert.Equal(t, domain.IssuePackaging, r.Issues[0].Kind)
	assert.Equal(t, "case_per_pallet", r.Issues[0].Field)
}

func TestComplete_SuppliedTriadMismatchIsFlaggedNotCorrected(t *testing.T) {
	r := rec(func(r *domain.CanonicalRecord) {
		r.PiecePerCase = ip(24)
		r.CasePerPallet = ip(9)
		r.PiecesPerPallet = ip(200) // supplier says 200, math says 216
	})
	NewEngine(false).Complete(r)

	assert.Equal(t, 200, *r.PiecesPerPallet, "supplied value wins")
	require.Len(t, r.Issues, 1)
	assert.Equal(t, "pieces_per_pallet", r.Issues[0].Field)
}

func TestComplete_AvailabilityCrossCheck(t *testing.T) {
	// 416 cartons x 24 per case implies 9984 pieces; a differing extracted
	// figure must be flagged with both values left untouched.
	r := rec(func(r *domain.CanonicalRecord) {
		r.PiecePerCase = ip(24)
		r.AvailCartons = ip(416)
		r.AvailPieces = ip(9000)
	})
	NewEngine(false).Complete(r)

	assert.Equal(t, 9000, *r.AvailPieces)
	assert.Equal(t, 416, *r.AvailCartons)

	found := false
	for _, iss := range r.Issues {
		if iss.Kind == domain.IssuePackaging && iss.Field == "availability_pieces" {
			found = true
		}
	}
	assert.True(t, found, "expected availability inconsistency, got %+v", r.Issues)
}

func TestComplete_AvailabilityFill(t *testing.T) {
	r := rec(func(r *domain.CanonicalRecord) {
		r.PiecePerCase = ip(24)
		r.CasePerPallet = ip(9)
		r.AvailCartons = ip(416)
	})
	NewEngine(false).Complete(r)

	require.NotNil(t, r.AvailPieces)
	assert.Equal(t, 9984, *r.AvailPieces)
	require.NotNil(t, r.PiecesPerPallet)
	assert.Equal(t, 216, *r.PiecesPerPallet)
	// 9984 / 216 is not integral, so pallets stay unknown rather than
	// being rounded.
	assert.Nil(t, r.AvailPallets)
}

func TestComplete_IteratesToFixpoint(t *testing.T) {
	// Pieces can only be derived after pieces-per-pallet is, which needs a
	// second pass.
	r := rec(func(r *domain.CanonicalRecord) {
		r.PiecePerCase = ip(10)
		r.CasePerPallet = ip(20)
		r.AvailPallets = ip(3)
	})
	NewEngine(false).Complete(r)

	require.NotNil(t, r.PiecesPerPallet)
	assert.Equal(t, 200, *r.PiecesPerPallet)
	require.NotNil(t, r.AvailPieces)
	assert.Equal(t, 600, *r.AvailPieces)
	require.NotNil(t, r.AvailCartons)
	assert.Equal(t, 60, *r.AvailCartons)
}

func TestStackCapacity(t *testing.T) {
	assert.Equal(t, 9, NewEngine(false).StackCapacity(9))
	assert.Equal(t, 18, NewEngine(true).StackCapacity(9))
}

func TestApplyDoubleStack(t *testing.T) {
	r := rec(func(r *domain.CanonicalRecord) {
		r.AvailPieces = ip(100)
		r.AvailCartons = ip(10)
	})

	NewEngine(false).ApplyDoubleStack(r)
	assert.Equal(t, 100, *r.AvailPieces, "inactive mode must be a no-op")

	NewEngine(true).ApplyDoubleStack(r)
	assert.Equal(t, 200, *r.AvailPieces)
	assert.Equal(t, 20, *r.AvailCartons)
	assert.Nil(t, r.AvailPallets)
}
