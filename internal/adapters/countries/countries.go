// Package countries resolves free-text country names (Spanish or English,
// with or without accents) to ISO 3166-1 alpha-3 codes.
package countries

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Alias maps one spelling of a country name to its ISO-3 code.
type Alias struct {
	Name string `json:"name"`
	ISO3 string `json:"iso3"`
}

// aliasTable is ordered: the first entry for a code is its display name.
var aliasTable = [...]Alias{ //nolint:gochecknoglobals // immutable lookup table
	{"Colombia", "COL"}, {"Chile", "CHL"},
	{"Mexico", "MEX"}, {"México", "MEX"},
	{"Argentina", "ARG"},
	{"Peru", "PER"}, {"Perú", "PER"},
	{"Brasil", "BRA"}, {"Brazil", "BRA"},
	{"España", "ESP"}, {"Spain", "ESP"},
	{"France", "FRA"}, {"Francia", "FRA"},
	{"Alemania", "DEU"}, {"Germany", "DEU"},
	{"Italia", "ITA"}, {"Italy", "ITA"},
	{"Canada", "CAN"}, {"Canadá", "CAN"},
	{"Reino Unido", "GBR"}, {"ReinoUnido", "GBR"}, {"UK", "GBR"},
	{"Estados Unidos", "USA"}, {"EstadosUnidos", "USA"}, {"UnitedStates", "USA"},
	{"Singapur", "SGP"}, {"Singapore", "SGP"},
	{"Japan", "JPN"}, {"Japón", "JPN"}, {"Japon", "JPN"},
	{"China", "CHN"}, {"India", "IND"}, {"Vietnam", "VNM"},
	{"Corea del Sur", "KOR"}, {"Corea, Rep.", "KOR"},
	{"Emiratos Árabes Unidos", "ARE"}, {"Emiratos Arabes Unidos", "ARE"},
	{"Venezuela", "VEN"}, {"Rusia", "RUS"},
	{"Turquía", "TUR"}, {"Turquia", "TUR"},
}

var (
	byName        = make(map[string]string, len(aliasTable)) //nolint:gochecknoglobals // built once from aliasTable
	displayByISO3 = make(map[string]string, len(aliasTable)) //nolint:gochecknoglobals // built once from aliasTable
)

func init() { //nolint:gochecknoinits // derived indexes of an immutable table
	for _, a := range aliasTable {
		byName[a.Name] = a.ISO3
		if _, ok := displayByISO3[a.ISO3]; !ok {
			displayByISO3[a.ISO3] = a.Name
		}
	}
}

// Resolve returns the ISO-3 code for name. Any three-letter alphabetic input
// is taken as a code and upper-cased without checking that it exists.
func Resolve(name string) (string, bool) {
	raw := strings.TrimSpace(name)
	if raw == "" {
		return "", false
	}
	if isCodeLike(raw) {
		return strings.ToUpper(raw), true
	}

	plain := StripAccents(raw)
	for _, candidate := range [...]string{raw, plain, titleCase(raw), titleCase(plain)} {
		if code, ok := byName[candidate]; ok {
			return code, true
		}
	}
	return "", false
}

// NameFor returns the display name registered for iso3, or iso3 itself.
func NameFor(iso3 string) string {
	if name, ok := displayByISO3[iso3]; ok {
		return name
	}
	return iso3
}

// Aliases returns a copy of the alias table in registration order.
func Aliases() []Alias {
	out := make([]Alias, len(aliasTable))
	copy(out, aliasTable[:])
	return out
}

// StripAccents removes combining marks after canonical decomposition.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isCodeLike(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// titleCase upper-cases the first rune and lower-cases the rest.
func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
