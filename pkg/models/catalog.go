package models

import "time"

// Vendor is one marketplace site we compare prices across. Name is
// the canonical lowercased key; discovery happens during listing
// import, vendors are never deleted.
type Vendor struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	URL  *string `json:"url"`
}

// Listing is one vendor's observation of a product. Rows from
// different vendors describing the same product share NpID. The ID is
// the surrogate listing id carried in the feed itself, which makes
// re-imports overwrite in place.
type Listing struct {
	ID                 int64     `json:"id"`
	NpID               int64     `json:"np_id"`
	Site               string    `json:"site"`
	SiteURL            *string   `json:"site_url"`
	ProductName        string    `json:"product_name"`
	ImageURL           *string   `json:"image_url"`
	Category           *string   `json:"category"`
	SubCategory        *string   `json:"sub_category"`
	Description        *string   `json:"description"`
	FreeDelivery       *string   `json:"free_delivery"`
	CashOnDelivery     *string   `json:"cash_on_delivery"`
	DaysToDeliver      *int      `json:"days_to_deliver"`
	DiscountPercentage *float64  `json:"discount_percentage"`
	ReturnPolicy       *string   `json:"return_policy"`
	BrandName          *string   `json:"brand_name"`
	Reviews            *int      `json:"reviews"`
	Rating             *float64  `json:"rating"`
	TrustScore         *float64  `json:"trust_score"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`
}

// Price is one observed price for a listing on a vendor site, keyed
// by the external price id from the feed.
type Price struct {
	ID        int     `json:"id"`
	PrideID   string  `json:"pride_id"`
	ProductID int64   `json:"product_id"`
	VendorID  int     `json:"vendor_id"`
	Site      string  `json:"site"`
	Price     float64 `json:"price"`
}

// Suggestion holds the two related-product references for a product.
// At most one row per product id; re-import overwrites.
type Suggestion struct {
	ProductID   int64  `json:"product_id"`
	Suggestion1 *int64 `json:"suggestion1"`
	Suggestion2 *int64 `json:"suggestion2"`
}
