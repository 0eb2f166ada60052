// Package countries exposes the ISO 3166-1 reference table used to validate
// the country selected at registration. The table is built once at process
// start and is immutable afterwards.
package countries

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Country is one entry of the reference table.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Table is an immutable country lookup keyed by ISO alpha-2 code.
type Table struct {
	byCode map[string]Country
	all    []Country
}

// NewTable enumerates the two-letter region codes known to x/text and keeps
// the ones that designate countries under their canonical code.
func NewTable() *Table {
	namer := display.English.Regions()
	byCode := make(map[string]Country)

	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			code := string([]rune{a, b})
			region, err := language.ParseRegion(code)
			if err != nil || !region.IsCountry() {
				continue
			}
			// Deprecated aliases canonicalize to a different code.
			if region.String() != code {
				continue
			}
			name := namer.Name(region)
			if name == "" {
				continue
			}
			byCode[code] = Country{Code: code, Name: name}
		}
	}

	all := make([]Country, 0, len(byCode))
	for _, c := range byCode {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	return &Table{byCode: byCode, all: all}
}

// Lookup resolves a country by its alpha-2 code, case-insensitively.
func (t *Table) Lookup(code string) (Country, bool) {
	c, ok := t.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// All returns the table sorted by country name. Callers must not modify the
// returned slice.
func (t *Table) All() []Country {
	return t.all
}

// Len returns the number of countries in the table.
func (t *Table) Len() int {
	return len(t.all)
}
