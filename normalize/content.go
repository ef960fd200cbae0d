package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"offerflow/domain"
)

// Canonical unit vocabulary with the supplier-side spellings that map onto
// each token.
var unitAliases = map[string]string{
	"G": "GR", "GR": "GR", "GRAM": "GR", "GRAMS": "GR",
	"K": "KG", "KG": "KG", "KILO": "KG", "KILOS": "KG",
	"ML": "ML",
	"L": "L", "LTR": "L", "LITRE": "L", "LITER": "L", "LITERS": "L", "LITRES": "L",
}

var (
	contentPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*([A-Z]+)\b`)
	descContent    = regexp.MustCompile(`\b(\d+(?:[.,]\d+)?)\s*(GR|KG|ML|G|K|L)\b`)
	caseNotationA  = regexp.MustCompile(`(?i)\b(\d+)\s*(?:CA|CSE)\b`)
	caseNotationB  = regexp.MustCompile(`(?i)\b(?:CA|CSE)\s*(\d+)\b`)
	multiSpace     = regexp.MustCompile(`\s+`)
	eanPattern     = regexp.MustCompile(`^\d{8,14}$`)
)

// normalizeMagnitude accepts "1,5" or "1.5" and drops a trailing ".0".
func normalizeMagnitude(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseContent extracts a magnitude and canonical unit token from a
// freeform content string ("500 grams" -> 500GR, "1,5l" -> 1.5L). Input
// that does not match the vocabulary is preserved verbatim with
// Parsed=false so nothing is silently dropped.
func ParseContent(raw string) domain.Content {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Content{}
	}

	up := strings.ToUpper(raw)
	for _, m := range contentPattern.FindAllStringSubmatch(up, -1) {
		unit, ok := unitAliases[m[2]]
		if !ok {
			continue
		}
		return domain.Content{
			Magnitude: normalizeMagnitude(m[1]),
			Unit:      unit,
			Raw:       raw,
			Parsed:    true,
		}
	}
	return domain.Content{Raw: raw}
}

// ExtractContent pulls an embedded content token out of a product
// description ("LU PRINCE 187GR MILK" -> 187GR).
func ExtractContent(description string) (domain.Content, bool) {
	m := descContent.FindStringSubmatch(strings.ToUpper(description))
	if m == nil {
		return domain.Content{}, false
	}
	unit := unitAliases[m[2]]
	return domain.Content{
		Magnitude: normalizeMagnitude(m[1]),
		Unit:      unit,
		Raw:       m[0],
		Parsed:    true,
	}, true
}

// ExtractCaseCount reads piece-per-case figures written in CA/CSE notation
// ("10CA", "CSE12") out of a description.
func ExtractCaseCount(description string) *int {
	if m := caseNotationA.FindStringSubmatch(description); m != nil {
		n, _ := strconv.Atoi(m[1])
		return &n
	}
	if m := caseNotationB.FindStringSubmatch(description); m != nil {
		n, _ := strconv.Atoi(m[1])
		return &n
	}
	return nil
}

// CleanDescription trims, upper-cases and strips the captured content token
// and CA/CSE notation from a description, so quantity never appears in both
// fields. Falls back to the uppercased original when stripping would leave
// nothing.
func CleanDescription(description string, content domain.Content) string {
	desc := strings.ToUpper(strings.TrimSpace(description))
	if desc == "" {
		return desc
	}

	if content.Parsed {
		num := regexp.QuoteMeta(content.Magnitude)
		var unitAlt string
		switch content.Unit {
		case "GR":
			unitAlt = "(?:GRAMS|GRAM|GR|G)"
		case "KG":
			unitAlt = "(?:KILOS|KILO|KG|K)"
		case "L":
			unitAlt = "(?:LITRES|LITERS|LITRE|LITER|LTR|L)"
		default:
			unitAlt = regexp.QuoteMeta(content.Unit)
		}
		pattern := regexp.MustCompile(`\b` + num + `\s*` + unitAlt + `\b`)
		desc = pattern.ReplaceAllString(desc, " ")
	}

	desc = caseNotationA.ReplaceAllString(desc, " ")
	desc = caseNotationB.ReplaceAllString(desc, " ")
	desc = strings.TrimSpace(multiSpace.ReplaceAllString(desc, " "))

	if desc == "" {
		return strings.ToUpper(strings.TrimSpace(description))
	}
	return desc
}

// ValidEAN reports whether s is a numeric string of plausible EAN length.
func ValidEAN(s string) bool {
	return eanPattern.MatchString(s)
}
