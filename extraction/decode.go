package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"offerflow/domain"
)

// ErrBadResponse marks a reply that could not be parsed into row mappings,
// as opposed to the call itself failing.
var ErrBadResponse = errors.New("malformed extraction response")

var (
	fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*\\})\\s*```")
	anyFence   = regexp.MustCompile("```(?:json)?")
	bareObject = regexp.MustCompile(`(?s)\{.*\}`)
)

type productsEnvelope struct {
	Products []domain.Row `json:"products"`
}

// DecodeRows parses the extraction service's reply into row mappings.
// Replies wrapped in markdown code fences are unwrapped first; as a last
// resort the first JSON object in the text is used.
func DecodeRows(raw string) ([]domain.Row, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("%w: empty response", ErrBadResponse)
	}

	if strings.HasPrefix(s, "```") {
		if m := fencedJSON.FindStringSubmatch(s); m != nil {
			s = m[1]
		} else {
			s = strings.TrimSpace(anyFence.ReplaceAllString(s, ""))
		}
	}

	if rows, err := decodeEnvelope(s); err == nil {
		return rows, nil
	}

	m := bareObject.FindString(s)
	if m == "" {
		return nil, fmt.Errorf("%w: no JSON object in %.120q", ErrBadResponse, raw)
	}
	rows, err := decodeEnvelope(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return rows, nil
}

func decodeEnvelope(s string) ([]domain.Row, error) {
	var env productsEnvelope
	if err := json.Unmarshal([]byte(s), &env); err == nil && env.Products != nil {
		return env.Products, nil
	}

	// A single-product reply may come back as one bare object.
	var one domain.Row
	if err := json.Unmarshal([]byte(s), &one); err != nil {
		return nil, err
	}
	return []domain.Row{one}, nil
}
