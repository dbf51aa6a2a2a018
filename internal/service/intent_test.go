package service

import (
	"testing"

	"placefinder/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestIntentParser_Parse(t *testing.T) {
	parser := NewIntentParser(nil)

	tests := []struct {
		name        string
		query       string
		action      model.Action
		domain      string
		attributes  []string
		mustHave    []string
		entity      string
		lookup      model.LookupType
		entityName  string
		exploratory bool
	}{
		{
			name:       "list with budget flag",
			query:      "show me budget hotels",
			action:     model.ActionSearch,
			domain:     CategoryHotel,
			attributes: []string{},
			mustHave:   []string{model.MustHaveBudget},
			entity:     "budget hotels",
		},
		{
			name:       "detail about a named venue",
			query:      "Tell me about Sula Vineyards",
			action:     model.ActionDetail,
			domain:     CategoryWine,
			attributes: []string{},
			mustHave:   []string{},
			entity:     "sula vineyards",
			lookup:     model.LookupEntity,
			entityName: "sula vineyards",
		},
		{
			name:       "attribute of a named venue",
			query:      "hotel vaishali rating",
			action:     model.ActionSearch,
			domain:     CategoryHotel,
			attributes: []string{"rating"},
			mustHave:   []string{},
			entity:     "vaishali",
			lookup:     model.LookupEntityAttribute,
			entityName: "vaishali",
		},
		{
			name:       "pure category detail stays a list",
			query:      "tell me about hotels",
			action:     model.ActionDetail,
			domain:     CategoryHotel,
			attributes: []string{},
			mustHave:   []string{},
			entity:     "hotels",
		},
		{
			name:       "category and city only",
			query:      "resorts in nashik",
			action:     model.ActionSearch,
			domain:     CategoryResort,
			attributes: []string{},
			mustHave:   []string{},
			entity:     "resorts nashik",
		},
		{
			name:        "exploratory discovery",
			query:       "things to do in nashik",
			action:      model.ActionSearch,
			domain:      "activities",
			attributes:  []string{},
			mustHave:    []string{},
			entity:      "things nashik",
			exploratory: true,
		},
		{
			name:       "greeting",
			query:      "hi",
			action:     model.ActionGeneral,
			attributes: []string{},
			mustHave:   []string{},
		},
		{
			name:       "several flags and attributes",
			query:      "cheap family resort with pool and parking",
			action:     model.ActionSearch,
			domain:     CategoryResort,
			attributes: []string{"parking", "pool"},
			mustHave:   []string{model.MustHavePool, model.MustHaveFamily, model.MustHaveBudget},
			entity:     "cheap family resort parking",
		},
		{
			name:       "qualified category is a list",
			query:      "resorts with pool",
			action:     model.ActionSearch,
			domain:     CategoryResort,
			attributes: []string{"pool"},
			mustHave:   []string{model.MustHavePool},
			entity:     "resorts",
		},
		{
			name:       "ashram resolves to religious",
			query:      "ashrams in nashik",
			action:     model.ActionSearch,
			domain:     CategoryReligious,
			attributes: []string{},
			mustHave:   []string{},
			entity:     "ashrams nashik",
		},
		{
			name:       "empty query",
			query:      "   ",
			action:     model.ActionSearch,
			attributes: []string{},
			mustHave:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Parse(tt.query)

			assert.Equal(t, tt.query, got.RawQuery)
			assert.Equal(t, tt.action, got.Action)
			assert.Equal(t, tt.domain, got.SearchDomain)
			assert.Equal(t, tt.attributes, got.Attributes)
			assert.Equal(t, tt.mustHave, got.MustHave)
			assert.Equal(t, tt.entity, got.Entity)
			assert.Equal(t, tt.lookup, got.LookupType)
			assert.Equal(t, tt.entityName, got.EntityName)
			assert.Equal(t, tt.exploratory, got.Exploratory)
		})
	}
}

func TestResolveDomain_LongestPhraseFirst(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"best wine shop nearby", CategoryWine},
		{"one day trip from the city", CategoryAdventure},
		{"movie theater near me", CategoryTheater},
		{"guided tours", "tours"},
		{"places to stay", CategoryHotel},
		{"ayurveda spa", "wellness"},
		{"nothing relevant here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDomain(tt.query))
		})
	}
}

func TestPhraseToCategory_Sorted(t *testing.T) {
	for i := 1; i < len(phraseToCategory); i++ {
		assert.GreaterOrEqual(t, len(phraseToCategory[i-1].phrase), len(phraseToCategory[i].phrase))
	}
}

func TestIsPureCategory(t *testing.T) {
	assert.True(t, IsPureCategory("hotel"))
	assert.True(t, IsPureCategory("Resorts Nashik"))
	assert.False(t, IsPureCategory("hotel vaishali"))
	assert.False(t, IsPureCategory(""))
}

func TestIntentParser_AttributesDeduplicated(t *testing.T) {
	got := NewIntentParser(nil).Parse("rating stars and star rating of hotel ginger")
	assert.Equal(t, []string{"rating"}, got.Attributes)
}

func TestIntentParser_Keywords(t *testing.T) {
	got := NewIntentParser(nil).Parse("luxury villas for a couple")
	assert.Equal(t, []string{model.MustHaveCouple, model.MustHaveLuxury}, got.Keywords())
}
