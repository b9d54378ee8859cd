package domain

// CanonicalIngredient is an authoritative catalog entry. Names are consumed in
// lowercase; uniqueness is owned by the ingredient store, not enforced here.
type CanonicalIngredient struct {
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`
	Expiry   int    `json:"expiry" db:"expiry"` // shelf life in days
}

// ExtractedItem is a single line item extracted from a receipt.
// Only Name is ever rewritten by standardization; the remaining fields pass through.
type ExtractedItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}
