package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"placefinder/internal/model"
)

// ErrUnknownAttribute is returned for attribute keys outside the formatter table
var ErrUnknownAttribute = errors.New("unknown attribute")

const maxListedAmenities = 5

// AttributeValue reads the raw value of an attribute key from a catalog item.
// The result is a string, a bool or a []string depending on the key.
func AttributeValue(item *model.CatalogItem, key string) (any, error) {
	switch key {
	case "rating":
		return item.Rating, nil
	case "address":
		return item.Address, nil
	case "phone":
		return item.Phone, nil
	case "amenities":
		return item.Amenities, nil
	case "parking":
		return item.Parking, nil
	case "pet_friendly":
		return item.PetFriendly, nil
	case "price":
		return item.PriceFrom, nil
	case "map", "google_location":
		return item.GoogleLocation, nil
	case "vendor_name":
		return item.DisplayName(), nil
	case "wifi":
		return item.WiFi, nil
	case "pool":
		return item.Pool, nil
	case "bonfire":
		return item.Bonfire, nil
	case "website":
		return item.Website, nil
	case "kitchen_available":
		return item.Kitchen, nil
	case "food_available":
		return item.FoodAvailable, nil
	case "taxes_included":
		return item.TaxesIncluded, nil
	case "price_unit":
		return item.PriceUnit, nil
	case "cancellation":
		return item.Cancellation, nil
	case "air_conditioned":
		return item.AirConditioned, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, key)
}

// attributeTemplate renders one attribute sentence for a present value
type attributeTemplate func(name string, value any) string

var attributeTemplates = map[string]attributeTemplate{
	"rating": func(name string, v any) string {
		s := fmt.Sprint(v)
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return fmt.Sprintf("%s has a %s-star rating.", name, formatRating(f))
		}
		return fmt.Sprintf("%s has a rating of %s.", name, s)
	},
	"address": func(name string, v any) string {
		return fmt.Sprintf("%s is located at %v.", name, v)
	},
	"phone": func(name string, v any) string {
		return fmt.Sprintf("%s's phone number is %v.", name, v)
	},
	"amenities": func(name string, v any) string {
		list, _ := v.([]string)
		if len(list) == 0 {
			return fmt.Sprintf("%s does not have amenities information available.", name)
		}
		shown := list
		if len(shown) > maxListedAmenities {
			shown = shown[:maxListedAmenities]
		}
		s := strings.Join(shown, ", ")
		if extra := len(list) - len(shown); extra > 0 {
			s += fmt.Sprintf(" and %d more", extra)
		}
		return fmt.Sprintf("%s offers: %s.", name, s)
	},
	"parking": func(name string, v any) string {
		return fmt.Sprintf("%s %s parking available.", name, hasOrNot(v))
	},
	"pet_friendly": func(name string, v any) string {
		if truthy(v) {
			return fmt.Sprintf("%s is pet-friendly.", name)
		}
		return fmt.Sprintf("%s is not pet-friendly.", name)
	},
	"map": func(name string, v any) string {
		return fmt.Sprintf("%s's location: %v", name, v)
	},
	"vendor_name": func(_ string, v any) string {
		return fmt.Sprintf("The vendor name is %v.", v)
	},
	"wifi": func(name string, v any) string {
		return fmt.Sprintf("%s %s WiFi available.", name, hasOrNot(v))
	},
	"pool": func(name string, v any) string {
		return fmt.Sprintf("%s %s a pool.", name, hasOrNot(v))
	},
	"bonfire": func(name string, v any) string {
		return fmt.Sprintf("%s %s bonfire facilities.", name, hasOrNot(v))
	},
	"google_location": func(name string, v any) string {
		return fmt.Sprintf("%s is located at %v.", name, v)
	},
	"website": func(name string, v any) string {
		return fmt.Sprintf("%s's website is %v.", name, v)
	},
	"kitchen_available": func(name string, v any) string {
		return fmt.Sprintf("%s %s a kitchen available.", name, hasOrNot(v))
	},
	"food_available": func(name string, v any) string {
		return fmt.Sprintf("%s %s food available.", name, hasOrNot(v))
	},
	"taxes_included": func(name string, v any) string {
		if truthy(v) {
			return fmt.Sprintf("%s includes taxes in the price.", name)
		}
		return fmt.Sprintf("%s does not include taxes in the price.", name)
	},
	"price_unit": func(name string, v any) string {
		return fmt.Sprintf("%s's price is per %v.", name, v)
	},
	"cancellation": func(name string, v any) string {
		return fmt.Sprintf("%s's cancellation policy: %v.", name, v)
	},
	"air_conditioned": func(name string, v any) string {
		if truthy(v) {
			return fmt.Sprintf("%s has air-conditioned rooms.", name)
		}
		return fmt.Sprintf("%s does not have air-conditioned rooms.", name)
	},
}

// missingTemplates override the generic "not available" sentence for keys
// with their own wording.
var missingTemplates = map[string]string{
	"map":             "%s does not have location/map information available.",
	"google_location": "%s does not have location information available.",
	"website":         "%s does not have a website listed.",
	"price_unit":      "%s does not have price unit information available.",
	"cancellation":    "%s does not have cancellation policy information available.",
}

// FormatAttributeAnswer renders a one-sentence answer about one attribute of
// a resolved venue. Keys outside the fixed table return ErrUnknownAttribute.
func FormatAttributeAnswer(item *model.CatalogItem, key string, value any) (string, error) {
	name := item.DisplayName()
	if name == "" {
		name = "This place"
	}

	if key == "price" {
		if item.PriceFrom == "" {
			return fmt.Sprintf("%s does not have price information available.", name), nil
		}
		return strings.TrimSpace(fmt.Sprintf("%s's price starts from %s %s", name, item.PriceFrom, item.PriceUnit)) + ".", nil
	}

	tmpl, ok := attributeTemplates[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAttribute, key)
	}

	if value == nil || value == "" {
		if missing, ok := missingTemplates[key]; ok {
			return fmt.Sprintf(missing, name), nil
		}
		return fmt.Sprintf("%s does not have %s information available.", name, key), nil
	}

	return tmpl(name, value), nil
}

// AnswerAttribute looks up and formats one attribute of a resolved venue
func AnswerAttribute(item *model.CatalogItem, key string) (*model.AttributeAnswer, error) {
	value, err := AttributeValue(item, key)
	if err != nil {
		return nil, err
	}
	answer, err := FormatAttributeAnswer(item, key, value)
	if err != nil {
		return nil, err
	}
	return &model.AttributeAnswer{Entity: item, Attribute: key, Answer: answer}, nil
}

// formatRating prints a rating with at least one decimal place, e.g. 4 as 4.0
func formatRating(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case []string:
		return len(t) > 0
	}
	return v != nil
}

func hasOrNot(v any) string {
	if truthy(v) {
		return "has"
	}
	return "does not have"
}
