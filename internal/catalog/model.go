package catalog

// Delivery describes where and how fast a product ships from.
type Delivery struct {
	Time     string `json:"time"`
	Location string `json:"location"`
}

// Product is an immutable catalog entry. The catalog is loaded once at
// startup and never mutated at runtime.
type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	OriginalPrice      *float64 `json:"original_price,omitempty"`
	DiscountPercentage int      `json:"discount_percentage"`
	Rating             int      `json:"rating"`
	Category           string   `json:"category"`
	Subcategory        string   `json:"subcategory"`
	Brand              string   `json:"brand"`
	Stock              string   `json:"stock"`
	FreeShipping       bool     `json:"free_shipping"`
	Farm               string   `json:"farm,omitempty"`
	Freshness          string   `json:"freshness,omitempty"`
	Delivery           Delivery `json:"delivery"`
}
