package address

import "strings"

// FilterCatalog narrows an already-fetched catalog list by a case-insensitive
// substring match on the address text. Pure: never triggers a fetch.
func FilterCatalog(entries []CatalogAddress, term string) []CatalogAddress {
	if term == "" {
		return entries
	}

	needle := strings.ToLower(term)
	out := make([]CatalogAddress, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Text), needle) {
			out = append(out, e)
		}
	}
	return out
}
