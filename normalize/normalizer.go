package normalize

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"offerflow/domain"
)

// Translator is the slice of the extraction boundary the normalizer needs
// for non-English descriptions. Translation must be idempotent: an English
// description comes back unchanged.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Normalizer rewrites extracted fields into the canonical vocabulary.
// Every step is pure computation except the description-translation path.
type Normalizer struct {
	translator Translator // nil disables the translation path
	logger     *zap.Logger
}

func NewNormalizer(translator Translator, logger *zap.Logger) *Normalizer {
	return &Normalizer{translator: translator, logger: logger}
}

// Normalize cleans one record in place:
//  1. strip embedded content and CA/CSE notation out of the description
//  2. settle the content field (supplied value wins over the extracted one)
//  3. canonicalize the language set
//  4. backfill piece-per-case from CA/CSE notation
//  5. sanity-check the EAN
//  6. translate a non-English description via the extraction boundary
//
// Unparseable values are kept verbatim and flagged, never dropped.
func (n *Normalizer) Normalize(ctx context.Context, rec *domain.CanonicalRecord) {
	rawDesc := rec.Description

	extracted, found := ExtractContent(rawDesc)
	rec.Description = CleanDescription(rawDesc, extracted)

	switch {
	case rec.Content.Raw != "":
		rec.Content = ParseContent(rec.Content.Raw)
		if !rec.Content.Parsed {
			rec.Flag(domain.IssueNormalization, "content",
				"content could not be parsed, value kept verbatim: "+rec.Content.Raw)
		}
	case found:
		rec.Content = extracted
	}

	if len(rec.Languages) > 0 {
		rec.Languages = Languages(strings.Join(rec.Languages, "/"))
	}

	if rec.PiecePerCase == nil {
		if ppc := ExtractCaseCount(rawDesc); ppc != nil {
			rec.PiecePerCase = ppc
		}
	}

	switch {
	case rec.EAN == "":
		rec.Flag(domain.IssueNormalization, "ean", "no EAN present")
	case !ValidEAN(rec.EAN):
		rec.Flag(domain.IssueNormalization, "ean",
			"EAN is not a plausible 8-14 digit code: "+rec.EAN)
	}

	n.translateDescription(ctx, rec)
}

func (n *Normalizer) translateDescription(ctx context.Context, rec *domain.CanonicalRecord) {
	if n.translator == nil || rec.Description == "" || isASCII(rec.Description) {
		// ASCII after cleanup is treated as English; re-normalizing an
		// already-English description is a no-op.
		return
	}

	translated, err := n.translator.Translate(ctx, rec.Description)
	if err != nil {
		n.logger.Warn("description translation failed",
			zap.String("ean", rec.EAN),
			zap.Error(err))
		rec.Flag(domain.IssueNormalization, "product_description",
			"translation failed, original kept: "+err.Error())
		return
	}
	translated = strings.ToUpper(strings.TrimSpace(translated))
	if translated != "" {
		rec.Description = translated
	}
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
