package service

import (
	"testing"

	"placefinder/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hotel Vaishali Nashik", "vaishali nashik"},
		{"  THE   Gateway  Hotel ", "gateway"},
		{"The Hotel", ""},
		{"Hotels", "hotels"},
		{"Sula\tVineyards", "sula vineyards"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeName(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeName(got), "normalization must be idempotent")
		})
	}
}

func TestEntityResolver_Resolve(t *testing.T) {
	catalog := []model.CatalogItem{
		{VendorName: "Hotels"},
		{VendorName: "Resort"},
		{VendorName: "Hotel Vaishali Nashik", Rating: "4"},
		{Name: "Vaishali"},
		{VendorName: "", Name: "Sula Vineyards"},
		{VendorName: "Grape County Eco Resort"},
	}
	resolver := NewEntityResolver(nil)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"exact on name field beats earlier containment", "vaishali", "Vaishali"},
		{"exact ignores hotel and the tokens", "the hotel vaishali nashik", "Hotel Vaishali Nashik"},
		{"containment of query in item", "sula", "Sula Vineyards"},
		{"containment of item in query", "grape county eco resort nashik", "Grape County Eco Resort"},
		{"generic names only match exactly", "hotels", "Hotels"},
		{"generic names never match by containment", "cheap hotels near me", ""},
		{"resort contained in longer name", "eco resort", "Grape County Eco Resort"},
		{"no match", "taj", ""},
		{"empty after normalization", "the hotel", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(tt.query, catalog)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.DisplayName())
		})
	}
}

func TestEntityResolver_FirstCatalogOrderWins(t *testing.T) {
	catalog := []model.CatalogItem{
		{VendorName: "Panchavati Yatri", Address: "first"},
		{VendorName: "Panchavati Yatri", Address: "second"},
	}

	got := NewEntityResolver(nil).Resolve("Panchavati Yatri", catalog)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Address)
	assert.Same(t, &catalog[0], got)
}

func TestEntityResolver_EmptyCatalog(t *testing.T) {
	assert.Nil(t, NewEntityResolver(nil).Resolve("vaishali", nil))
}
