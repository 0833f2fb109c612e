package models

// MenuItem is one orderable product belonging to exactly one store. The backend
// delivers rows already filtered to tilgaengelig=true and ordered by category
// then ascending price; callers must preserve that order.
type MenuItem struct {
	ID          string  `json:"id"`
	StoreID     string  `json:"store_id"`
	Category    string  `json:"kategori"`
	Name        string  `json:"navn"`
	Description string  `json:"beskrivelse"`
	Price       float64 `json:"pris"`
	Available   bool    `json:"tilgaengelig"`
	IsPopular   bool    `json:"is_popular"`
}
