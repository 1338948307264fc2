package model

// CategoryEntry is one valid (category, subcategory) pair from the catalog.
type CategoryEntry struct {
	Category    string
	Subcategory string
}

// Label renders the entry in the wire form the oracle is asked to echo back.
func (e CategoryEntry) Label() string {
	if e.Subcategory == "" {
		return e.Category
	}
	return e.Category + " - " + e.Subcategory
}
