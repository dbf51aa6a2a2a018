package utils

import (
	"strings"
)

const minDirectMatchLen = 3

// Amenity aliases keyed by the facility flag they establish
var amenityAliases = map[string][]string{
	"wifi":    {"wifi", "wi-fi", "wireless internet"},
	"pool":    {"pool", "swimming"},
	"bonfire": {"bonfire", "camp fire", "campfire"},
	"parking": {"parking", "car park"},
	"ac":      {"air conditioner", "air conditioning", "air-conditioned", "a/c"},
	"kitchen": {"kitchen", "kitchenette"},
}

// FuzzyMatchAmenity reports whether an amenity label satisfies the search term,
// either directly or through one of the term's aliases
func FuzzyMatchAmenity(searchTerm, amenity string) bool {
	searchLower := strings.ToLower(strings.TrimSpace(searchTerm))
	amenityLower := strings.ToLower(strings.TrimSpace(amenity))

	if searchLower == "" || amenityLower == "" {
		return false
	}

	// very short terms like "ac" only match through their aliases
	if len(searchLower) >= minDirectMatchLen && strings.Contains(amenityLower, searchLower) {
		return true
	}

	for _, alias := range amenityAliases[searchLower] {
		if strings.Contains(amenityLower, alias) {
			return true
		}
	}

	return false
}

// HasAmenity reports whether any amenity in the list fuzzy-matches the term
func HasAmenity(amenities []string, term string) bool {
	for _, a := range amenities {
		if FuzzyMatchAmenity(term, a) {
			return true
		}
	}
	return false
}
