package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"placefinder/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const catalogPayload = `{
  "status": true,
  "data": {
    "search_data": [
      {
        "vendor_name": "Hotel Vaishali Nashik",
        "name": "Vaishali",
        "category": "Hotels",
        "sub_category": "Budget",
        "star_rating": 4,
        "address": "Gangapur Road",
        "phone": "0253 000000",
        "parking_available": "Y",
        "pet_friendly": "N",
        "air_conditioned": true,
        "food_available": "Y",
        "kitchen_available": "N",
        "taxes_included": "Y",
        "price_from": 2500,
        "price_unit": "night",
        "google_location": "https://maps.example/vaishali",
        "cancellation": "Free until 24h",
        "short_description": "Budget stay near the river",
        "zone_name": "West",
        "thumbnail_image": "uploads/vaishali.jpg",
        "amenities_gallery": [{"amenity": "Free WiFi"}, {"amenity": "Bonfire"}, {"icon": "x"}, "junk"],
        "table_id": 12,
        "category_id": "1"
      },
      "not an object",
      42,
      {
        "name": "Sula Vineyards",
        "category": "Wine Shops",
        "rating": "4.6",
        "description": "Vineyard tours",
        "location": "Gangapur-Savargaon Road",
        "area_name": "Gangapur",
        "gallery_images": ["https://cdn.example/sula.jpg"],
        "amenities_gallery": [{"amenity": "Swimming Pool"}]
      }
    ]
  }
}`

func newTestCatalogConfig(baseURL string) *config.CatalogConfig {
	return &config.CatalogConfig{
		BaseURL:      baseURL,
		APIToken:     "fallback-token",
		Timeout:      2 * time.Second,
		FetchLimit:   200,
		ImageBaseURL: "https://img.example/",
	}
}

func TestCatalogClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "hotel", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "200", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer caller-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogPayload))
	}))
	defer server.Close()

	client := NewCatalogClient(newTestCatalogConfig(server.URL+"/api/search/"), zaptest.NewLogger(t))

	items, err := client.Search(context.Background(), "hotel", 1, 200, "caller-token")
	require.NoError(t, err)
	require.Len(t, items, 2, "non-object records are discarded")

	hotel := items[0]
	assert.Equal(t, "Hotel Vaishali Nashik", hotel.DisplayName())
	assert.Equal(t, "Vaishali", hotel.Name)
	assert.Equal(t, "Hotels", hotel.Category)
	assert.Equal(t, "Budget", hotel.SubCategory)
	assert.Empty(t, hotel.CanonicalCategory)
	assert.Equal(t, "4", hotel.Rating)
	assert.Equal(t, "Gangapur Road", hotel.Address)
	assert.True(t, hotel.Parking)
	assert.False(t, hotel.PetFriendly)
	assert.True(t, hotel.AirConditioned)
	assert.True(t, hotel.FoodAvailable)
	assert.False(t, hotel.Kitchen)
	assert.True(t, hotel.TaxesIncluded)
	assert.Equal(t, "2500", hotel.PriceFrom)
	assert.Equal(t, "night", hotel.PriceUnit)
	assert.Equal(t, "Budget stay near the river", hotel.Description)
	assert.Equal(t, "West", hotel.Area)
	assert.Equal(t, "https://img.example/uploads/vaishali.jpg", hotel.Image)
	assert.Equal(t, []string{"Free WiFi", "Bonfire"}, hotel.Amenities)
	assert.True(t, hotel.WiFi)
	assert.True(t, hotel.Bonfire)
	assert.False(t, hotel.Pool)
	assert.Equal(t, "12", hotel.TableID)
	assert.Equal(t, "1", hotel.CategoryID)

	sula := items[1]
	assert.Equal(t, "Sula Vineyards", sula.DisplayName())
	assert.Equal(t, "4.6", sula.Rating)
	assert.Equal(t, "Gangapur-Savargaon Road", sula.Address)
	assert.Equal(t, "Gangapur", sula.Area)
	assert.Equal(t, "https://cdn.example/sula.jpg", sula.Image)
	assert.True(t, sula.Pool)
}

func TestCatalogClient_FallbackToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer fallback-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":{"search_data":[]}}`))
	}))
	defer server.Close()

	client := NewCatalogClient(newTestCatalogConfig(server.URL), nil)
	items, err := client.Search(context.Background(), "villa", 1, 10, "  ")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCatalogClient_MissingSearchData(t *testing.T) {
	payloads := []string{
		`{"data":{}}`,
		`{"message":"ok"}`,
		`[]`,
		`"unexpected"`,
		`{"data":{"search_data":"nope"}}`,
	}

	for _, payload := range payloads {
		t.Run(payload, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(payload))
			}))
			defer server.Close()

			client := NewCatalogClient(newTestCatalogConfig(server.URL), nil)
			items, err := client.Search(context.Background(), "hotel", 1, 10, "t")
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestCatalogClient_Failures(t *testing.T) {
	t.Run("upstream error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := NewCatalogClient(newTestCatalogConfig(server.URL), nil).Search(context.Background(), "hotel", 1, 10, "t")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		cfg := newTestCatalogConfig(server.URL)
		cfg.Timeout = 20 * time.Millisecond
		_, err := NewCatalogClient(cfg, nil).Search(context.Background(), "hotel", 1, 10, "t")
		assert.Error(t, err)
	})
}
