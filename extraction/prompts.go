package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"offerflow/domain"
)

// SystemPrompt instructs the service how supplier offer fields map onto the
// canonical keys. The rules mirror the most common extraction mistakes seen
// in real supplier sheets (cases vs pieces availability, unit vs case EAN).
const SystemPrompt = `You are an expert at extracting structured data from supplier offer documents.

CORE PRINCIPLES:
- Only extract information that is EXPLICITLY present.
- NEVER guess, infer, compute or derive values.
- If a value is not present, return null.
- Preserve original values; normalize format only.

FIELD RULES:
1. "ean" - the UNIT/ITEM EAN. If both an "EAN unit" and an "EAN case" column
   exist, ALWAYS take "EAN unit" and NEVER "EAN case".
2. "product_description" - the product name as written.
3. "content" - package content such as "500GR", "330ML", "1.5L".
4. "languages" - label languages, e.g. "NL/FR/DE".
5. "piece_per_case" - units per case. A column named "Pallet" or "Layer"
   WITHOUT the word "Available" is "case_per_pallet", not availability.
6. "case_per_pallet", "pieces_per_pallet" - pallet geometry as supplied.
7. "bbd" - best before date, if present.
8. "availability_cartons" - from "Cases Available" or similar CASE columns.
   "availability_pieces" - from "Pieces Available" ONLY. Do not mix these up.
   "availability_pallets" - from "Pallets Available".

Respond with a single JSON object: {"products": [ {...}, {...} ]} using
exactly the keys above. No prose, no markdown.`

// TranslatePrompt wraps a product description for the translation path of
// the normalizer. Brand names must survive untouched and English input must
// round-trip unchanged so the operation is idempotent.
const TranslatePrompt = `Translate the following product description to English.
Keep brand names exactly as written. If the text is already English, return
it unchanged. Respond with the translated text only, upper-case:

%s`

// BuildPrompt renders the user message for one chunk.
func BuildPrompt(req Request) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Category context: %s.\n", req.Category)
	if req.ExtractPrice {
		b.WriteString("Also extract \"price_unit_eur\" (unit price in euro) when present.\n")
	} else {
		b.WriteString("Do not extract prices; leave \"price_unit_eur\" null.\n")
	}

	if req.Mode == ModeImage {
		b.WriteString("Extract every product row from the offer table in the image below.\n")
		return b.String(), nil
	}

	payload := struct {
		Columns []string     `json:"columns"`
		Rows    []domain.Row `json:"rows"`
	}{Columns: req.Columns, Rows: req.Rows}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode chunk rows: %w", err)
	}

	b.WriteString("Extract every product row from the following offer data:\n\n")
	b.Write(data)
	return b.String(), nil
}
