// Package mapping projects canonical records into category output schemas.
// Schemas are data-driven column descriptors, so adding a category is a
// data change rather than a new code path.
package mapping

import (
	"strconv"
	"strings"

	"offerflow/domain"
)

// column binds an output header to its value renderer. Canonical fields
// without a column here are dropped by the schema, which is by design and
// not an error.
type column struct {
	header string
	render func(r domain.CanonicalRecord) string
}

// Schema is the ordered field list of one output category.
type Schema struct {
	category domain.Category
	columns  []column
}

const articleNumberHeader = "Article Number"

var baseColumns = []column{
	{"EAN code unit", func(r domain.CanonicalRecord) string { return r.EAN }},
	{"Product Description", func(r domain.CanonicalRecord) string { return r.Description }},
	{"Content", func(r domain.CanonicalRecord) string { return r.Content.String() }},
	{"Languages", func(r domain.CanonicalRecord) string { return strings.Join(r.Languages, "/") }},
	{"Piece per case", renderInt(func(r domain.CanonicalRecord) *int { return r.PiecePerCase })},
	{"Case per pallet", renderInt(func(r domain.CanonicalRecord) *int { return r.CasePerPallet })},
	{"Pieces per pallet", renderInt(func(r domain.CanonicalRecord) *int { return r.PiecesPerPallet })},
}

var bbdColumn = column{"BBD", func(r domain.CanonicalRecord) string { return r.BestBefore }}

var tailColumns = []column{
	{"Availability/Cartons", renderInt(func(r domain.CanonicalRecord) *int { return r.AvailCartons })},
	{"Availability/Pieces", renderInt(func(r domain.CanonicalRecord) *int { return r.AvailPieces })},
	{"Availability/Pallets", renderInt(func(r domain.CanonicalRecord) *int { return r.AvailPallets })},
	{"Price/Unit (Euro)", renderPrice},
}

// SchemaFor returns the output schema of a category. FOOD carries the BBD
// column; HPC's schema omits it entirely rather than leaving it blank.
func SchemaFor(category domain.Category) Schema {
	cols := make([]column, 0, len(baseColumns)+len(tailColumns)+1)
	cols = append(cols, baseColumns...)
	if category == domain.CategoryFood {
		cols = append(cols, bbdColumn)
	}
	cols = append(cols, tailColumns...)
	return Schema{category: category, columns: cols}
}

// Headers lists the output column headers in order, including the article
// number column the generator fills in.
func (s Schema) Headers() []string {
	out := make([]string, 0, len(s.columns)+1)
	out = append(out, articleNumberHeader)
	for _, c := range s.columns {
		out = append(out, c.header)
	}
	return out
}

// Map projects a canonical record into this schema. Pure and total: every
// canonical field either renders into its column or is dropped here.
func (s Schema) Map(rec domain.CanonicalRecord, articleNumber string) domain.CategoryRecord {
	cells := make([]domain.Cell, 0, len(s.columns)+1)
	cells = append(cells, domain.Cell{Header: articleNumberHeader, Value: articleNumber})
	for _, c := range s.columns {
		cells = append(cells, domain.Cell{Header: c.header, Value: c.render(rec)})
	}
	return domain.CategoryRecord{
		ArticleNumber: articleNumber,
		Category:      s.category,
		Cells:         cells,
		Issues:        rec.Issues,
	}
}

func renderInt(get func(r domain.CanonicalRecord) *int) func(r domain.CanonicalRecord) string {
	return func(r domain.CanonicalRecord) string {
		p := get(r)
		if p == nil {
			return ""
		}
		return strconv.Itoa(*p)
	}
}

// renderPrice applies the two-decimal rounding that only ever happens at
// output time.
func renderPrice(r domain.CanonicalRecord) string {
	if r.PriceUnitEUR == nil {
		return ""
	}
	return strconv.FormatFloat(*r.PriceUnitEUR, 'f', 2, 64)
}
