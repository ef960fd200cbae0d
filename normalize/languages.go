package normalize

import (
	"regexp"
	"sort"
	"strings"
)

// langAliases maps spelled-out or abbreviated language mentions to the
// ISO-style codes used on product labels. Two-letter tokens not listed here
// pass through as-is.
var langAliases = map[string]string{
	"ENGLISH": "EN", "ENG": "EN",
	"DUTCH": "NL", "NEDERLANDS": "NL", "NED": "NL", "HOLLANDS": "NL",
	"FRENCH": "FR", "FRANCAIS": "FR", "FRA": "FR",
	"GERMAN": "DE", "DEUTSCH": "DE", "GER": "DE",
	"ITALIAN": "IT", "ITALIANO": "IT", "ITA": "IT",
	"SPANISH": "ES", "ESPANOL": "ES", "SPA": "ES",
	"PORTUGUESE": "PT", "POR": "PT",
	"POLISH": "PL", "POLSKI": "PL", "POL": "PL",
	"ROMANIAN": "RO", "RON": "RO",
	"CZECH": "CS", "CZE": "CS",
	"HUNGARIAN": "HU", "HUN": "HU",
	"GREEK": "EL", "GRE": "EL",
	"ARABIC": "AR", "ARA": "AR",
	"TURKISH": "TR", "TUR": "TR",
}

var langSeparators = regexp.MustCompile(`[,;/|\\\s]+`)

// Languages splits a freeform language mention list, maps each token to its
// code, de-duplicates and sorts. Equality of language sets is
// order-insensitive; the sorted rendering is the stable canonical order.
func Languages(value string) []string {
	parts := langSeparators.Split(strings.ToUpper(strings.TrimSpace(value)), -1)

	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if code, ok := langAliases[p]; ok {
			p = code
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}
