// Package report renders comparison payloads as tables, CSV or JSON.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/okian/dss/internal/domain/scoring"
	"github.com/okian/dss/internal/domain/types"
)

// Format selects an output rendering.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // shared codec

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatCSV, FormatJSON:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("%w: %q (want table, csv or json)", ErrUnknownFormat, s)
	}
}

// Write renders payload to w in format f.
func Write(w io.Writer, payload *types.Payload, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, payload.Result)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case FormatTable:
		return WriteTable(w, payload)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// cell formats an optional value rounded to two decimals, empty when missing.
func cell(v *float64) string {
	if v == nil {
		return ""
	}
	return num(scoring.Round2(*v))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
