// Package ingest turns user uploads (CSV or JSON) into engine input rows.
package ingest

import (
	"bytes"
	"encoding/csv"
	"io"
	"path"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/rotisserie/eris"

	"github.com/okian/dss/internal/domain/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // shared codec

var utf8BOM = []byte{0xEF, 0xBB, 0xBF} //nolint:gochecknoglobals // constant byte sequence

// Column aliases in lookup order. Keys are matched after trimming and lower-casing.
//
//nolint:gochecknoglobals // alias tables
var (
	countryKeys = []string{"country", "pais", "país"}
	yearKeys    = []string{"year", "anio", "año"}
	accessKeys  = []string{"access_internet_pct", "acceso_internet_pct", "acceso"}
	fixedKeys   = []string{"fixed_broadband_subs_per100", "banda_fija_100", "banda_fija"}
	speedKeys   = []string{"broadband_speed_mbps", "velocidad_ba_mbps", "velocidad"}
	costKeys    = []string{"mobile_data_cost_pct_income", "costo_datos_pct_ingreso", "costo"}
)

// record is one uploaded row keyed by normalized column name.
type record map[string]any

// Parse decodes an upload. JSON is selected when mimetype mentions json or
// filename ends in .json; anything else is read as CSV. defaultYear fills
// rows that carry no year.
func Parse(data []byte, filename, mimetype, defaultYear string) ([]model.InputRow, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var (
		records []record
		err     error
	)
	if IsJSON(filename, mimetype) {
		records, err = parseJSON(data)
	} else {
		records, err = parseCSV(data)
	}
	if err != nil {
		return nil, err
	}
	return normalize(records, strings.TrimSpace(defaultYear))
}

// IsJSON reports whether an upload should be decoded as JSON.
func IsJSON(filename, mimetype string) bool {
	return strings.Contains(strings.ToLower(mimetype), "json") ||
		strings.EqualFold(path.Ext(filename), ".json")
}

func parseJSON(data []byte) ([]record, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(ErrMalformed, "json: %v", err)
	}

	var items []any
	switch v := doc.(type) {
	case []any:
		items = v
	case map[string]any:
		rows, ok := v["rows"].([]any)
		if !ok {
			return nil, eris.Wrap(ErrMalformed, "json: object without a rows array")
		}
		items = rows
	default:
		return nil, eris.Wrap(ErrMalformed, "json: expected an array of rows")
	}

	records := make([]record, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rec := make(record, len(obj))
		for k, val := range obj {
			rec[normalizeKey(k)] = val
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseCSV(data []byte) ([]record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(ErrMalformed, "csv header: %v", err)
	}
	for i := range header {
		header[i] = normalizeKey(header[i])
	}

	var records []record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(ErrMalformed, "csv: %v", err)
		}
		if blankRow(row) {
			continue
		}
		rec := make(record, len(header))
		for i, col := range header {
			if col != "" {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// sniffDelimiter picks ';' when the first line has more semicolons than commas.
func sniffDelimiter(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func normalize(records []record, defaultYear string) ([]model.InputRow, error) {
	rows := make([]model.InputRow, 0, len(records))
	for _, rec := range records {
		country := rec.firstText(countryKeys)
		if country == "" {
			continue
		}
		year := rec.firstText(yearKeys)
		if year == "" {
			year = defaultYear
		}
		rows = append(rows, model.InputRow{
			Country:                  country,
			Year:                     year,
			AccessInternetPct:        rec.firstNumber(accessKeys),
			FixedBroadbandSubsPer100: rec.firstNumber(fixedKeys),
			BroadbandSpeedMbps:       rec.firstNumber(speedKeys),
			MobileDataCostPctIncome:  rec.firstNumber(costKeys),
		})
	}
	if len(rows) == 0 {
		return nil, eris.Wrapf(ErrNoUsableRows, "%d records without a country column value", len(records))
	}
	return rows, nil
}

// firstText returns the first non-empty value among keys.
func (r record) firstText(keys []string) string {
	for _, k := range keys {
		if s := text(r[k]); s != "" {
			return s
		}
	}
	return ""
}

// firstNumber converts the value of the first key that is present and non-null.
func (r record) firstNumber(keys []string) *float64 {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return number(v)
		}
	}
	return nil
}
