package extraction

import (
	"strings"

	"offerflow/domain"
	"offerflow/normalize"
)

// RecordFromRow converts one extracted row mapping into a CanonicalRecord
// with type-safe field coercion. No normalization happens here beyond value
// typing; the normalizer runs as a separate stage.
func RecordFromRow(row domain.Row, chunkIndex, sourceRow int) domain.CanonicalRecord {
	rec := domain.CanonicalRecord{
		EAN:             normalize.ToString(row["ean"]),
		Description:     normalize.ToString(row["product_description"]),
		Languages:       nil,
		PiecePerCase:    normalize.ToInt(row["piece_per_case"]),
		CasePerPallet:   normalize.ToInt(row["case_per_pallet"]),
		PiecesPerPallet: normalize.ToInt(row["pieces_per_pallet"]),
		BestBefore:      normalize.ToString(row["bbd"]),
		AvailPieces:     normalize.ToInt(row["availability_pieces"]),
		AvailCartons:    normalize.ToInt(row["availability_cartons"]),
		AvailPallets:    normalize.ToInt(row["availability_pallets"]),
		PriceUnitEUR:    normalize.ToFloat(row["price_unit_eur"]),
		ChunkIndex:      chunkIndex,
		SourceRow:       sourceRow,
	}

	if raw := normalize.ToString(row["content"]); raw != "" {
		rec.Content = domain.Content{Raw: raw}
	}
	if langs := normalize.ToString(row["languages"]); langs != "" {
		rec.Languages = strings.Fields(strings.ReplaceAll(langs, "/", " "))
	}
	return rec
}
