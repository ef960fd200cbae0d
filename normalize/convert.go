package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var digitRuns = regexp.MustCompile(`\d+`)

// ToString renders a raw cell value as a trimmed string. Floats that are
// whole numbers lose the trailing ".0" the spreadsheet readers tack on.
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// ToInt coerces numeric-ish cell values to an int. Handles "16 pcs",
// "1.000" style thousands grouping and float-typed JSON numbers. Returns
// nil when no digits are present.
func ToInt(v any) *int {
	switch t := v.(type) {
	case nil, bool:
		return nil
	case int:
		return &t
	case float64:
		n := int(t)
		return &n
	case string:
		runs := digitRuns.FindAllString(t, -1)
		if len(runs) == 0 {
			return nil
		}
		n, err := strconv.Atoi(strings.Join(runs, ""))
		if err != nil {
			return nil
		}
		return &n
	default:
		return ToInt(ToString(v))
	}
}

// ToFloat coerces cell values to a float, accepting comma decimals ("1,50").
func ToFloat(v any) *float64 {
	switch t := v.(type) {
	case nil, bool:
		return nil
	case int:
		f := float64(t)
		return &f
	case float64:
		return &t
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", "."))
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return ToFloat(ToString(v))
	}
}
