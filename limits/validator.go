package limits

import (
	"fmt"

	"offerflow/domain"
)

// HardColumnCeiling is the absolute column cap. The configured soft ceiling
// can be lowered but never raised past this value.
const HardColumnCeiling = 256

// Thresholds are the externally configured input limits.
type Thresholds struct {
	MaxFileBytes       int64
	MaxRowsPerSheet    int
	MaxColumnsPerSheet int
	MaxSheets          int
}

// Validator performs the fast, side-effect-free pre-extraction check.
type Validator struct {
	t Thresholds
}

func NewValidator(t Thresholds) *Validator {
	if t.MaxColumnsPerSheet <= 0 || t.MaxColumnsPerSheet > HardColumnCeiling {
		t.MaxColumnsPerSheet = HardColumnCeiling
	}
	return &Validator{t: t}
}

// Validate returns a *domain.ValidationError describing the first exceeded
// threshold, or nil when the batch may proceed to extraction.
func (v *Validator) Validate(b *domain.RawBatch) error {
	if v.t.MaxFileBytes > 0 && b.ByteSize > v.t.MaxFileBytes {
		return &domain.ValidationError{Reason: fmt.Sprintf(
			"file size %d bytes exceeds limit of %d bytes", b.ByteSize, v.t.MaxFileBytes)}
	}
	if v.t.MaxSheets > 0 && b.SheetCount > v.t.MaxSheets {
		return &domain.ValidationError{Reason: fmt.Sprintf(
			"%d sheets exceeds limit of %d", b.SheetCount, v.t.MaxSheets)}
	}
	if v.t.MaxRowsPerSheet > 0 && b.RowCount() > v.t.MaxRowsPerSheet {
		return &domain.ValidationError{Reason: fmt.Sprintf(
			"%d rows exceeds limit of %d rows per sheet", b.RowCount(), v.t.MaxRowsPerSheet)}
	}
	if b.ColumnCount() > v.t.MaxColumnsPerSheet {
		return &domain.ValidationError{Reason: fmt.Sprintf(
			"%d columns exceeds limit of %d columns per sheet", b.ColumnCount(), v.t.MaxColumnsPerSheet)}
	}
	return nil
}
