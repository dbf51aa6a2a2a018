package model

// CatalogItem is a venue record normalized from the catalog search provider
type CatalogItem struct {
	VendorName        string   `json:"vendor_name,omitempty"`
	Name              string   `json:"name,omitempty"`
	Category          string   `json:"category,omitempty"`
	SubCategory       string   `json:"sub_category,omitempty"`
	CanonicalCategory string   `json:"normalized_category"`
	Address           string   `json:"address,omitempty"`
	Rating            string   `json:"rating,omitempty"` // verbatim; may not be numeric
	Phone             string   `json:"phone,omitempty"`
	Email             string   `json:"email,omitempty"`
	Website           string   `json:"website,omitempty"`
	GoogleLocation    string   `json:"google_location,omitempty"`
	Cancellation      string   `json:"cancellation,omitempty"`
	Amenities         []string `json:"amenities,omitempty"`
	Parking           bool     `json:"parking"`
	PetFriendly       bool     `json:"pet_friendly"`
	WiFi              bool     `json:"wifi"`
	Pool              bool     `json:"pool"`
	Bonfire           bool     `json:"bonfire"`
	Kitchen           bool     `json:"kitchen_available"`
	FoodAvailable     bool     `json:"food_available"`
	AirConditioned    bool     `json:"air_conditioned"`
	TaxesIncluded     bool     `json:"taxes_included"`
	PriceFrom         string   `json:"price_from,omitempty"`
	PriceUnit         string   `json:"price_unit,omitempty"`
	Description       string   `json:"description,omitempty"`
	Area              string   `json:"area_name,omitempty"`
	Image             string   `json:"image_url,omitempty"`
	TableID           string   `json:"table_id,omitempty"`
	CategoryID        string   `json:"category_id,omitempty"`
}

// DisplayName returns the vendor name, falling back to the plain name
func (c *CatalogItem) DisplayName() string {
	if c.VendorName != "" {
		return c.VendorName
	}
	return c.Name
}

// Card projects the item for display
func (c *CatalogItem) Card() Card {
	return Card{
		Title:       c.DisplayName(),
		Subtitle:    c.Area,
		Rating:      c.Rating,
		Address:     c.Address,
		Description: c.Description,
		Image:       c.Image,
		CategoryID:  c.CategoryID,
		TableID:     c.TableID,
	}
}

// Card is the display projection of a catalog item
type Card struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Rating      string `json:"rating"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CategoryID  string `json:"category_id"`
	TableID     string `json:"table_id"`
}

// AttributeAnswer is a rendered single-attribute answer for a resolved venue
type AttributeAnswer struct {
	Entity    *CatalogItem
	Attribute string
	Answer    string
}
