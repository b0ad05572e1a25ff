package wdi

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	jsoniter "github.com/json-iterator/go"

	"github.com/okian/dss/internal/domain/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // shared codec

// entry is one element of the data page returned by the API.
type entry struct {
	Country jsoniter.RawMessage `json:"country"`
	Date    any                 `json:"date"`
	Value   any                 `json:"value"`
}

// DecodeSeries parses a `[meta, [entries...]]` response body. Bodies that are
// valid JSON but not of that shape yield an empty series. Entries without a
// country, date or value are dropped.
func DecodeSeries(body []byte) ([]model.Observation, error) {
	var page []jsoniter.RawMessage
	if err := json.Unmarshal(body, &page); err != nil {
		if json.Valid(body) {
			return []model.Observation{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	if len(page) < 2 {
		return []model.Observation{}, nil
	}

	var entries []*entry
	if err := json.Unmarshal(page[1], &entries); err != nil {
		return []model.Observation{}, nil //nolint:nilerr // a non-array data page carries no observations
	}

	series := make([]model.Observation, 0, len(entries))
	for _, e := range entries {
		if e == nil || !present(e.Country) || e.Value == nil {
			continue
		}
		year := dateString(e.Date)
		if year == "" {
			continue
		}
		series = append(series, model.Observation{Year: year, Value: coerce(e.Value)})
	}
	return series, nil
}

func present(raw jsoniter.RawMessage) bool {
	v := string(bytes.TrimSpace(raw))
	switch v {
	case "", "null", `""`, "false", "0":
		return false
	}
	return true
}

func dateString(v any) string {
	switch d := v.(type) {
	case string:
		return d
	case float64:
		return strconv.FormatFloat(d, 'f', -1, 64)
	}
	return ""
}

// coerce converts an upstream value to a number, tolerating whitespace and a
// decimal comma. Anything else is treated as missing.
func coerce(v any) *float64 {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return model.Float(x)
	case string:
		return ParseNumber(x)
	}
	return nil
}

// ParseNumber strips whitespace and replaces the first comma with a dot.
func ParseNumber(s string) *float64 {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil
	}
	s = strings.Replace(s, ",", ".", 1)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return model.Float(f)
}
