package models

// Store is one tenant row in the backend "stores" table. Rows are owned by the
// backend; this service only reads them. Column names follow the backend schema
// (Danish where the original menu columns are Danish).
type Store struct {
	ID            string  `json:"id"`
	Slug          string  `json:"slug"`
	Name          string  `json:"name"`
	PrimaryColor  string  `json:"primary_color"`
	ContactPhone  string  `json:"contact_phone"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	CoverImageURL string  `json:"cover_image_url"`
	CVRNumber     string  `json:"cvr_number"`
	IsOpen        bool    `json:"is_open"`
	WaitingTime   int     `json:"waiting_time"`
	SmileyURL     string  `json:"smiley_url"`
}

// StoreSummary is the reduced projection the chat widget needs
// (select=id,name,primary_color,contact_phone,city).
type StoreSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PrimaryColor string `json:"primary_color"`
	ContactPhone string `json:"contact_phone"`
	City         string `json:"city"`
}
