// Package packaging derives and cross-validates piece/case/pallet
// quantities. All count arithmetic is integer-exact: a non-integer division
// is reported as an inconsistency, never rounded away.
package packaging

import (
	"fmt"

	"offerflow/domain"
)

// Engine completes partial packaging quantity sets. The double-stacked mode
// is an explicit external input, not inferred from data.
type Engine struct {
	doubleStacked bool
}

func NewEngine(doubleStacked bool) *Engine {
	return &Engine{doubleStacked: doubleStacked}
}

// StackCapacity converts a single-stack case count into the pallet capacity
// to use for case-per-pallet derivation. Only applies to inferred
// capacities; a supplier-supplied case-per-pallet figure is never doubled.
func (e *Engine) StackCapacity(singleStackCases int) int {
	if e.doubleStacked {
		return singleStackCases * 2
	}
	return singleStackCases
}

// Complete fills the missing members of the packaging triad and the
// availability set, iterating until nothing changes, then runs the
// cross-checks. Supplier-provided values always take precedence: a field is
// only ever computed when it is currently unknown.
func (e *Engine) Complete(rec *domain.CanonicalRecord) {
	for i := 0; i < 3; i++ {
		changed := e.completeTriad(rec)
		changed = e.completeAvailability(rec) || changed
		if !changed {
			break
		}
	}
	e.crossCheck(rec)
}

// completeTriad applies the 2-of-3 rule over piece-per-case (A),
// case-per-pallet (B) and pieces-per-pallet (C): A*B=C, C/A=B, C/B=A.
// Back-solving only happens when the division is exact; remainders are left
// for crossCheck to report.
func (e *Engine) completeTriad(rec *domain.CanonicalRecord) bool {
	a, b, c := rec.PiecePerCase, rec.CasePerPallet, rec.PiecesPerPallet
	changed := false

	if c == nil && positive(a) && positive(b) {
		rec.PiecesPerPallet = intp(*a * *b)
		changed = true
	}
	if b == nil && positive(a) && positive(c) && *c%*a == 0 {
		rec.CasePerPallet = intp(*c / *a)
		changed = true
	}
	if a == nil && positive(b) && positive(c) && *c%*b == 0 {
		rec.PiecePerCase = intp(*c / *b)
		changed = true
	}
	return changed
}

// completeAvailability fills missing availability figures from the known
// ones: cartons = pieces/ppc, pallets = pieces/ppp, and the reverse when
// pieces itself is missing.
func (e *Engine) completeAvailability(rec *domain.CanonicalRecord) bool {
	ppc, ppp := rec.PiecePerCase, rec.PiecesPerPallet
	changed := false

	if rec.AvailPieces == nil {
		if positive(rec.AvailCartons) && positive(ppc) {
			rec.AvailPieces = intp(*rec.AvailCartons * *ppc)
			changed = true
		} else if positive(rec.AvailPallets) && positive(ppp) {
			rec.AvailPieces = intp(*rec.AvailPallets * *ppp)
			changed = true
		}
	}

	if positive(rec.AvailPieces) {
		if rec.AvailCartons == nil && positive(ppc) && *rec.AvailPieces%*ppc == 0 {
			rec.AvailCartons = intp(*rec.AvailPieces / *ppc)
			changed = true
		}
		if rec.AvailPallets == nil && positive(ppp) && *rec.AvailPieces%*ppp == 0 {
			rec.AvailPallets = intp(*rec.AvailPieces / *ppp)
			changed = true
		}
	}
	return changed
}

// crossCheck reports disagreements between supplied and derived quantities.
// Values stay untouched; source data disagreement must remain visible to
// the operator.
func (e *Engine) crossCheck(rec *domain.CanonicalRecord) {
	a, b, c := rec.PiecePerCase, rec.CasePerPallet, rec.PiecesPerPallet

	if positive(a) && positive(b) && positive(c) && *a**b != *c {
		rec.Flag(domain.IssuePackaging, "pieces_per_pallet", fmt.Sprintf(
			"pieces per pallet %d does not equal piece per case %d x case per pallet %d",
			*c, *a, *b))
	}
	if positive(a) && positive(c) && b == nil && *c%*a != 0 {
		rec.Flag(domain.IssuePackaging, "case_per_pallet", fmt.Sprintf(
			"pieces per pallet %d is not divisible by piece per case %d", *c, *a))
	}
	if positive(b) && positive(c) && a == nil && *c%*b != 0 {
		rec.Flag(domain.IssuePackaging, "piece_per_case", fmt.Sprintf(
			"pieces per pallet %d is not divisible by case per pallet %d", *c, *b))
	}

	if positive(rec.AvailCartons) && positive(a) && rec.AvailPieces != nil {
		implied := *rec.AvailCartons * *a
		if implied != *rec.AvailPieces {
			rec.Flag(domain.IssuePackaging, "availability_pieces", fmt.Sprintf(
				"availability %d pieces disagrees with %d cartons x %d pieces per case = %d",
				*rec.AvailPieces, *rec.AvailCartons, *a, implied))
		}
	}
}

// ApplyDoubleStack doubles the availability figures when the double-stacked
// mode is active. Called after completion so derived figures double too.
func (e *Engine) ApplyDoubleStack(rec *domain.CanonicalRecord) {
	if !e.doubleStacked {
		return
	}
	for _, p := range []**int{&rec.AvailPieces, &rec.AvailCartons, &rec.AvailPallets} {
		if *p != nil {
			**p *= 2
		}
	}
}

func positive(p *int) bool { return p != nil && *p > 0 }

func intp(n int) *int { return &n }
