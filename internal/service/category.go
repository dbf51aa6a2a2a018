package service

import (
	"strings"

	"placefinder/internal/utils"
)

// Canonical category tags
const (
	CategoryHotel      = "hotel"
	CategoryResort     = "resort"
	CategoryVilla      = "villa"
	CategoryRestaurant = "restaurant"
	CategoryHospital   = "hospital"
	CategoryOffice     = "office"
	CategoryTheater    = "theater"
	CategoryMuseum     = "museum"
	CategoryReligious  = "religious"
	CategoryTreks      = "treks"
	CategoryAdventure  = "adventure"
	CategoryWildlife   = "wildlife"
	CategoryPicnic     = "picnic"
	CategoryWine       = "wine"
	CategoryShopping   = "shopping"
	CategoryEvents     = "events"
)

// categoryRule maps a raw category to a tag when any marker is a substring of it
type categoryRule struct {
	markers  []string
	category string
}

// categoryRules are evaluated top to bottom; the first hit wins, so a raw
// "Hotel & Restaurant" canonicalizes to hotel.
var categoryRules = []categoryRule{
	{[]string{"hotel"}, CategoryHotel},
	{[]string{"resort"}, CategoryResort},
	{[]string{"villa"}, CategoryVilla},
	{[]string{"restaurant", "cafe"}, CategoryRestaurant},
	{[]string{"hospital", "medical"}, CategoryHospital},
	{[]string{"office"}, CategoryOffice},
	{[]string{"theater", "theatre"}, CategoryTheater},
	{[]string{"museum"}, CategoryMuseum},
	{[]string{"religious", "temple", "mandir", "ashram"}, CategoryReligious},
	{[]string{"trek"}, CategoryTreks},
	{[]string{"adventure", "one-day"}, CategoryAdventure},
	{[]string{"wildlife", "nature"}, CategoryWildlife},
	{[]string{"picnic"}, CategoryPicnic},
	{[]string{"wine"}, CategoryWine},
	{[]string{"shopping"}, CategoryShopping},
}

// CanonicalCategory maps a raw catalog category to a canonical tag. Strings
// no rule recognizes come back lower-cased and trimmed.
func CanonicalCategory(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	if c == "" {
		return ""
	}

	for _, rule := range categoryRules {
		if utils.ContainsAny(c, rule.markers...) {
			return rule.category
		}
	}

	return c
}
