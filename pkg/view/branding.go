package view

import "getmait/models"

const (
	defaultBrandColor  = "#ea580c"
	defaultCoverImage  = "https://images.unsplash.com/photo-1513104890138-7c749659a591?auto=format&fit=crop&q=80&w=1000"
	defaultWaitingTime = 20
)

// Branding is the store-derived presentation data interpolated into the page:
// colors, contact links and the footer fields.
type Branding struct {
	Name         string `json:"name"`
	PrimaryColor string `json:"primary_color"`
	ContactPhone string `json:"contact_phone"`
	TelLink      string `json:"tel_link"`
	SMSLink      string `json:"sms_link"`
	Address      string `json:"address"`
	City         string `json:"city"`
	CoverImage   string `json:"cover_image_url"`
	CVRNumber    string `json:"cvr_number"`
	WaitingTime  int    `json:"waiting_time"`
	SmileyURL    string `json:"smiley_url,omitempty"`
}

// BrandingFor fills presentation defaults for missing optional fields.
func BrandingFor(store models.Store) Branding {
	b := Branding{
		Name:         store.Name,
		PrimaryColor: store.PrimaryColor,
		ContactPhone: store.ContactPhone,
		TelLink:      "tel:" + store.ContactPhone,
		SMSLink:      "sms:" + store.ContactPhone,
		Address:      store.Address,
		City:         store.City,
		CoverImage:   store.CoverImageURL,
		CVRNumber:    store.CVRNumber,
		WaitingTime:  store.WaitingTime,
		SmileyURL:    store.SmileyURL,
	}
	if b.PrimaryColor == "" {
		b.PrimaryColor = defaultBrandColor
	}
	if b.CoverImage == "" {
		b.CoverImage = defaultCoverImage
	}
	if b.WaitingTime <= 0 {
		b.WaitingTime = defaultWaitingTime
	}
	if b.City == "" {
		b.City = "Danmark"
	}
	return b
}
