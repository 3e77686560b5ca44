package budget

// CategoryID identifies one of the fixed building-cost buckets.
type CategoryID string

const (
	CategorySite         CategoryID = "site"
	CategorySubstructure CategoryID = "substructure"
	CategoryShell        CategoryID = "shell"
	CategoryInteriors    CategoryID = "interiors"
	CategoryFFE          CategoryID = "ffe"
	CategoryMEP          CategoryID = "mep"
	CategoryExterior     CategoryID = "exterior"
)

// HeatBand is a cost-intensity tier selectable per category.
type HeatBand string

const (
	BandLow    HeatBand = "low"
	BandMedium HeatBand = "medium"
	BandHigh   HeatBand = "high"
)

// Category carries the display metadata for one cost bucket.
type Category struct {
	ID        CategoryID `json:"id"`
	Label     string     `json:"label"`
	SortOrder int        `json:"sort_order"`
}

// Categories returns the closed category set in its fixed sort order.
// The set is static; nothing creates or destroys categories at runtime.
func Categories() []Category {
	return []Category{
		{ID: CategorySite, Label: "Site & Infrastructure", SortOrder: 0},
		{ID: CategorySubstructure, Label: "Substructure", SortOrder: 1},
		{ID: CategoryShell, Label: "Shell & Structure", SortOrder: 2},
		{ID: CategoryInteriors, Label: "Interiors", SortOrder: 3},
		{ID: CategoryFFE, Label: "Furnishings & Equipment", SortOrder: 4},
		{ID: CategoryMEP, Label: "MEP Services", SortOrder: 5},
		{ID: CategoryExterior, Label: "Exterior Improvements", SortOrder: 6},
	}
}

// CategoryCount is the size of the fixed category set.
const CategoryCount = 7

// CategoryLabel returns the display label for an id, or the raw id if unknown.
func CategoryLabel(id CategoryID) string {
	for _, c := range Categories() {
		if c.ID == id {
			return c.Label
		}
	}
	return string(id)
}

// ValidBand reports whether b is one of the three known heat bands.
func ValidBand(b HeatBand) bool {
	return b == BandLow || b == BandMedium || b == BandHigh
}
