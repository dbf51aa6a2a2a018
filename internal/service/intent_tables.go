package service

import (
	"sort"
	"strings"

	"placefinder/internal/model"
)

// Lookup tables for intent extraction. They are built once at package init
// and only read afterwards, so concurrent requests share them without locking.

type keywordSet struct {
	key      string
	keywords []string
}

type phraseCategory struct {
	phrase   string
	category string
}

type actionRule struct {
	action   model.Action
	keywords []string
}

// actionRules are checked in order; the first rule with a word hit decides.
var actionRules = []actionRule{
	{model.ActionSearch, []string{"show", "list", "find", "search"}},
	{model.ActionDetail, []string{"tell", "about", "details"}},
	{model.ActionGeneral, []string{"who are you", "what can you do", "about yourself", "hey", "hi"}},
}

// attributeKeywords is scanned in order and every hit is kept.
var attributeKeywords = []keywordSet{
	{"rating", []string{"rating", "stars", "star"}},
	{"address", []string{"address", "where"}},
	{"phone", []string{"phone", "contact", "number"}},
	{"amenities", []string{"amenities", "facilities", "features"}},
	{"parking", []string{"parking"}},
	{"pet_friendly", []string{"pet", "pets", "pet-friendly"}},
	{"price", []string{"price", "cost", "tariff", "rate", "rates"}},
	{"map", []string{"map", "directions", "location"}},
	{"vendor_name", []string{"vendor name", "vendor"}},
	{"wifi", []string{"wifi", "wi-fi", "internet"}},
	{"pool", []string{"pool", "swimming"}},
	{"bonfire", []string{"bonfire"}},
	{"google_location", []string{"google location"}},
	{"website", []string{"website", "site", "url"}},
	{"kitchen_available", []string{"kitchen"}},
	{"food_available", []string{"food"}},
	{"taxes_included", []string{"tax", "taxes", "tax included"}},
	{"price_unit", []string{"price_unit", "unit"}},
	{"cancellation", []string{"cancellation", "cancel"}},
	{"air_conditioned", []string{"ac", "air conditioned", "air-conditioning"}},
}

// phraseToCategory maps user wording onto catalog categories. It is consulted
// before domainKeywords, longest phrase first.
var phraseToCategory = sortedByPhraseLength([]phraseCategory{
	{"wine shop", CategoryWine},
	{"wine shops", CategoryWine},
	{"one day trip", CategoryAdventure},
	{"one-day trip", CategoryAdventure},
	{"day trips", CategoryAdventure},
	{"guided tour", "tours"},
	{"guided tours", "tours"},
	{"picnic spot", CategoryPicnic},
	{"picnic spots", CategoryPicnic},
	{"movie theater", CategoryTheater},
	{"movie theatres", CategoryTheater},
	{"religious services", CategoryReligious},
	{"mandir", CategoryReligious},
	{"mandirs", CategoryReligious},
	{"temples", CategoryReligious},
	{"temple", CategoryReligious},
	{"movie", CategoryTheater},
	{"movies", CategoryTheater},
	{"cinema", CategoryTheater},
	{"cafe", CategoryRestaurant},
	{"cafes", CategoryRestaurant},
	{"trekking", CategoryTreks},
	{"trek", CategoryTreks},
	{"treks", CategoryTreks},
	{"vineyard", CategoryWine},
	{"vineyards", CategoryWine},
	{"winery", CategoryWine},
	{"wineries", CategoryWine},
	{"wine", CategoryWine},
	{"ashram", CategoryReligious},
	{"ashrams", CategoryReligious},
	{"resort", CategoryResort},
	{"resorts", CategoryResort},
	{"villa", CategoryVilla},
	{"villas", CategoryVilla},
	{"hotel", CategoryHotel},
	{"hotels", CategoryHotel},
	{"restaurant", CategoryRestaurant},
	{"restaurants", CategoryRestaurant},
	{"hospital", CategoryHospital},
	{"hospitals", CategoryHospital},
	{"clinic", CategoryHospital},
	{"medical", CategoryHospital},
	{"office", CategoryOffice},
	{"offices", CategoryOffice},
	{"theater", CategoryTheater},
	{"theatre", CategoryTheater},
	{"theatres", CategoryTheater},
	{"museum", CategoryMuseum},
	{"museums", CategoryMuseum},
	{"event", CategoryEvents},
	{"events", CategoryEvents},
	{"festival", CategoryEvents},
	{"festivals", CategoryEvents},
	{"mosque", CategoryReligious},
	{"church", CategoryReligious},
	{"worship", CategoryReligious},
})

// domainKeywords is the fallback domain table, checked in declaration order.
var domainKeywords = []keywordSet{
	{CategoryHotel, []string{"hotel", "hotels", "stay", "stays", "lodging", "accommodation"}},
	{CategoryResort, []string{"resort", "resorts"}},
	{CategoryVilla, []string{"villa", "villas"}},
	{CategoryRestaurant, []string{"restaurant", "restaurants", "cafe", "cafes", "food", "restaurants & cafes", "eating", "dining", "eat"}},
	{CategoryEvents, []string{"event", "events", "festival", "festivals", "festivities", "happenings", "events & festivals"}},
	{CategoryTreks, []string{"trek", "treks", "hiking", "trekking", "trail", "trails"}},
	{"activities", []string{"activity", "activities", "things to do", "city activities", "city activity", "things to do in city"}},
	{CategoryWine, []string{"wine", "vineyard", "winery", "wineries"}},
	{CategoryShopping, []string{"shopping", "mall", "market", "malls", "markets", "shop", "stores"}},
	{CategoryReligious, []string{"temple", "mosque", "church", "religious", "religious services", "worship"}},
	{"wellness", []string{"ayurveda", "spa", "wellness", "ayurvedic", "massage", "retreat", "wellness center", "ayurveda & wellness"}},
	{"kids", []string{"kids", "children", "activities for kids", "kids activities", "children activities", "family activities", "activities for children"}},
	{"attractions", []string{"attraction", "attractions", "places to visit", "places to explore", "places to see", "places to discover"}},
	{"visitors", []string{"visitor", "visitors", "visitor visit", "visitor visits"}},
	{"art", []string{"art", "art gallery", "art galleries", "art museum", "art museums"}},
	{CategoryMuseum, []string{"museum", "museums", "museum visit", "museum visits"}},
	{"history", []string{"history", "historical", "historical places"}},
	{CategoryHospital, []string{"healthcare", "hospital", "hospitals", "clinic", "medical", "nursing", "dental", "health", "diagnostic", "pathology", "care center", "iccu", "icu", "selfcare", "emergency", "ambulance", "doctor", "pharmacy"}},
	{CategoryReligious, []string{"ashram", "ashrams", "ashram visit", "ashram visits"}},
	{CategoryOffice, []string{"office", "offices", "virtual office", "virtual offices", "coworking", "coworking space", "workspace"}},
	{CategoryTheater, []string{"movie", "movies", "movie theater", "movie theaters", "theater", "theatre", "theaters", "theatres", "cinema"}},
	{CategoryAdventure, []string{"adventure", "one-day trip", "day trip", "one day trip", "day trips", "adventure activities"}},
	{CategoryWildlife, []string{"wildlife", "nature", "safari", "national park", "nature spots", "wildlife sanctuary"}},
	{CategoryPicnic, []string{"picnic", "picnic spot", "picnic spots", "picnic area"}},
	{"tours", []string{"guided tour", "guided tours", "tours", "tour", "sightseeing"}},
	{"today_happenings", []string{"today's happenings", "today happenings", "what's on today", "whats on today", "going on today", "today events", "happenings today", "what is happening today"}},
}

// mustHaveRules are independent substring checks; several flags may apply.
var mustHaveRules = []keywordSet{
	{model.MustHavePool, []string{"pool"}},
	{model.MustHaveFamily, []string{"family"}},
	{model.MustHaveCouple, []string{"couple"}},
	{model.MustHaveLuxury, []string{"luxury"}},
	{model.MustHaveBudget, []string{"budget", "cheap"}},
}

var exploratoryPhrases = []string{
	"fun activities", "things to do", "what to do", "discover", "explore",
	"experiences", "activities in", "fun in", "something to do",
}

// entityStopwords are dropped when extracting the entity candidate.
var entityStopwords = toSet(
	"what", "is", "the", "of", "tell", "me", "about",
	"rating", "price", "address", "amenities", "phone",
	"location", "where", "map", "directions",
	"hotel", "does", "do", "have", "has", "a", "an",
	"what's", "show", "find", "something",
	"wifi", "wi-fi", "internet", "pool", "swimming", "bonfire",
	"website", "site", "url", "kitchen", "food",
	"tax", "taxes", "cancellation", "cancel", "unit",
	"with", "and", "for", "near", "from", "any", "some",
)

// pureCategoryWords are entity words that only name a category, never a venue.
var pureCategoryWords = toSet(
	"hotel", "hotels", "resort", "resorts", "villa", "villas",
	"restaurant", "restaurants", "cafe", "cafes", "theater", "theatres",
	"hospital", "hospitals", "office", "offices", "ashram", "ashrams",
	"medical", "lodging", "food", "movies", "cinema", "nashik",
)

// qualifierWords describe what kind of venue is wanted rather than which
// one: must-have and attribute keywords. Built from the tables above.
var qualifierWords = buildQualifierWords()

func buildQualifierWords() map[string]struct{} {
	set := map[string]struct{}{}
	for _, table := range [][]keywordSet{attributeKeywords, mustHaveRules} {
		for _, ks := range table {
			for _, kw := range ks.keywords {
				if !strings.Contains(kw, " ") {
					set[kw] = struct{}{}
				}
			}
		}
	}
	return set
}

func sortedByPhraseLength(in []phraseCategory) []phraseCategory {
	out := make([]phraseCategory, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].phrase) > len(out[j].phrase)
	})
	return out
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
