package domain

// Content is the parsed magnitude+unit of one product, e.g. 500GR. An input
// that could not be parsed keeps its verbatim text with Parsed=false so
// downstream consumers can tell "unknown" apart from a real value.
type Content struct {
	Magnitude string `json:"magnitude,omitempty"`
	Unit      string `json:"unit,omitempty"`
	Raw       string `json:"raw,omitempty"`
	Parsed    bool   `json:"parsed"`
}

func (c Content) IsZero() bool {
	return c.Raw == "" && c.Magnitude == "" && c.Unit == ""
}

// String renders the canonical form (500GR) for parsed values and the
// verbatim source text otherwise.
func (c Content) String() string {
	if c.Parsed {
		return c.Magnitude + c.Unit
	}
	return c.Raw
}

// CanonicalRecord is the standardized intermediate representation of one
// product line. Optional counts are pointers: nil means the supplier did not
// provide the figure, which is distinct from zero.
type CanonicalRecord struct {
	EAN         string   `json:"ean,omitempty"`
	Description string   `json:"product_description,omitempty"`
	Content     Content  `json:"content"`
	Languages   []string `json:"languages,omitempty"`

	PiecePerCase    *int `json:"piece_per_case,omitempty"`
	CasePerPallet   *int `json:"case_per_pallet,omitempty"`
	PiecesPerPallet *int `json:"pieces_per_pallet,omitempty"`

	// BestBefore is only mapped for FOOD output.
	BestBefore string `json:"bbd,omitempty"`

	AvailPieces  *int `json:"availability_pieces,omitempty"`
	AvailCartons *int `json:"availability_cartons,omitempty"`
	AvailPallets *int `json:"availability_pallets,omitempty"`

	PriceUnitEUR *float64 `json:"price_unit_eur,omitempty"`

	// Provenance.
	ChunkIndex int `json:"chunk_index"`
	SourceRow  int `json:"source_row"`

	Issues []Issue `json:"issues,omitempty"`
}

// Flag attaches an issue to the record. Values are never altered when an
// issue is raised; disagreement in source data stays visible to the operator.
func (r *CanonicalRecord) Flag(kind IssueKind, field, message string) {
	r.Issues = append(r.Issues, Issue{Kind: kind, Field: field, Message: message})
}

// PopulatedFields counts how many extracted fields carry a value. Used as
// the completeness score when rows sharing an EAN are merged across chunks.
func (r *CanonicalRecord) PopulatedFields() int {
	n := 0
	if r.EAN != "" {
		n++
	}
	if r.Description != "" {
		n++
	}
	if !r.Content.IsZero() {
		n++
	}
	if len(r.Languages) > 0 {
		n++
	}
	if r.BestBefore != "" {
		n++
	}
	for _, p := range []*int{
		r.PiecePerCase, r.CasePerPallet, r.PiecesPerPallet,
		r.AvailPieces, r.AvailCartons, r.AvailPallets,
	} {
		if p != nil {
			n++
		}
	}
	if r.PriceUnitEUR != nil {
		n++
	}
	return n
}

// Cell is one header/value pair of a category output row.
type Cell struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}

// CategoryRecord is a CanonicalRecord projected into a category schema with
// an assigned article number. Immutable once produced.
type CategoryRecord struct {
	ArticleNumber string   `json:"article_number"`
	Category      Category `json:"category"`
	Cells         []Cell   `json:"cells"`
	Issues        []Issue  `json:"issues,omitempty"`
}
