package models

// ProductSummary is the representative row for one product across all
// of its vendor listings. Field values come from the first listing
// row encountered for the np_id (lowest listing id), which keeps the
// grouped views deterministic.
type ProductSummary struct {
	NpID        int64   `json:"np_id"`
	SampleID    int64   `json:"sample_id"`
	ProductName string  `json:"product_name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	SubCategory *string `json:"sub_category"`
	ImageURL    *string `json:"image_url"`
	BrandName   *string `json:"brand_name"`
}

// VendorPrice is the minimum observed price for one normalized vendor
// in a product's price table.
type VendorPrice struct {
	Site  string  `json:"site"`
	Price float64 `json:"price"`
}

// SuggestionRefs carries the two related-product references of a
// suggestion row as trimmed strings.
type SuggestionRefs struct {
	Suggestion1 string `json:"suggestion1,omitempty"`
	Suggestion2 string `json:"suggestion2,omitempty"`
}

// ProductDetail is the full detail view for one product id.
type ProductDetail struct {
	NpID        int64           `json:"np_id"`
	Listings    []*Listing      `json:"listings"`
	Prices      []VendorPrice   `json:"prices"`
	Suggestions *SuggestionRefs `json:"suggestions,omitempty"`
}

// SubCategoryFacet pairs a sub-category with its parent category.
type SubCategoryFacet struct {
	Name   string  `json:"name"`
	Parent *string `json:"parent"`
}

// FilterFacets lists the distinct categories and sub-categories
// available for filtering.
type FilterFacets struct {
	Categories    []string           `json:"categories"`
	SubCategories []SubCategoryFacet `json:"sub_categories"`
}

// VendorListing is one row of the vendor comparison view for a single
// listing id: the vendor's offer terms next to its observed price.
type VendorListing struct {
	ID                    int64    `json:"id"`
	WebsiteName           string   `json:"website_name"`
	URL                   *string  `json:"url"`
	Price                 *float64 `json:"price"`
	Rating                *float64 `json:"rating"`
	TrustScore            *float64 `json:"trust_score"`
	FreeDelivery          *string  `json:"free_delivery"`
	CashOnDelivery        *string  `json:"cash_on_delivery"`
	EstimatedDeliveryDays *int     `json:"estimated_delivery_days"`
	ReturnPolicy          *string  `json:"return_policy"`
	DiscountPercentage    *float64 `json:"discount_percentage"`
	Reviews               *int     `json:"reviews"`
}
