package ingest

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/dss/internal/domain/model"
)

// ParseFlexible parses numbers written with either decimal convention:
// "1,5" is 1.5 and "1.234,5" is 1234.5. It returns nil when s is not a number.
func ParseFlexible(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	hasComma, hasDot := strings.Contains(s, ","), strings.Contains(s, ".")
	switch {
	case hasComma && !hasDot:
		s = strings.Replace(s, ",", ".", 1)
	case hasComma && hasDot:
		s = strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return model.Float(f)
}

func number(v any) *float64 {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return model.Float(x)
	case string:
		return ParseFlexible(x)
	}
	return nil
}

func text(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return ""
}
