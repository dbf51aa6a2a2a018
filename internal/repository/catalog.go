package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"placefinder/internal/config"
	"placefinder/internal/model"
	"placefinder/internal/utils"

	"go.uber.org/zap"
)

// CatalogClient queries the external venue search API
type CatalogClient struct {
	config     *config.CatalogConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewCatalogClient creates a new catalog search client
func NewCatalogClient(cfg *config.CatalogConfig, logger *zap.Logger) *CatalogClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With(zap.String("component", "catalog")),
	}
}

// searchEnvelope is the provider response; only data.search_data is used
type searchEnvelope struct {
	Data *struct {
		SearchData []json.RawMessage `json:"search_data"`
	} `json:"data"`
}

// Search fetches one page of venues matching keyword. credential is the
// caller's bearer token; the configured token is used when it is empty. A
// response without data.search_data yields an empty list, not an error.
func (c *CatalogClient) Search(ctx context.Context, keyword string, page, limit int, credential string) ([]model.CatalogItem, error) {
	params := url.Values{}
	params.Set("query", keyword)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	reqURL := c.config.BaseURL
	if strings.Contains(reqURL, "?") {
		reqURL += "&" + params.Encode()
	} else {
		reqURL += "?" + params.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	token := strings.TrimSpace(credential)
	if token == "" {
		token = c.config.APIToken
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request failed with status %d", resp.StatusCode)
	}

	var envelope searchEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		// non-object payloads carry no search_data
		c.logger.Debug("catalog payload without search data", zap.Error(err))
		return []model.CatalogItem{}, nil
	}
	if envelope.Data == nil {
		return []model.CatalogItem{}, nil
	}

	items := make([]model.CatalogItem, 0, len(envelope.Data.SearchData))
	for _, raw := range envelope.Data.SearchData {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			continue
		}
		items = append(items, c.normalize(fields))
	}

	c.logger.Debug("catalog search",
		zap.String("keyword", keyword),
		zap.Int("raw_count", len(envelope.Data.SearchData)),
		zap.Int("item_count", len(items)),
	)

	return items, nil
}

// normalize maps a raw provider record onto a CatalogItem. The canonical
// category is left for the caller to derive.
func (c *CatalogClient) normalize(f map[string]any) model.CatalogItem {
	amenities := amenityList(f)

	return model.CatalogItem{
		VendorName:     text(f, "vendor_name"),
		Name:           text(f, "name"),
		Category:       text(f, "category"),
		SubCategory:    text(f, "sub_category"),
		Address:        text(f, "address", "location", "area_name"),
		Rating:         text(f, "star_rating", "rating"),
		Phone:          text(f, "phone"),
		Email:          text(f, "email"),
		Website:        text(f, "website"),
		GoogleLocation: text(f, "google_location"),
		Cancellation:   text(f, "cancellation"),
		Amenities:      amenities,
		Parking:        flag(f, "parking_available") || utils.HasAmenity(amenities, "parking"),
		PetFriendly:    flag(f, "pet_friendly"),
		WiFi:           utils.HasAmenity(amenities, "wifi"),
		Pool:           utils.HasAmenity(amenities, "pool"),
		Bonfire:        utils.HasAmenity(amenities, "bonfire"),
		Kitchen:        flag(f, "kitchen_available") || utils.HasAmenity(amenities, "kitchen"),
		FoodAvailable:  flag(f, "food_available"),
		AirConditioned: flag(f, "air_conditioned") || utils.HasAmenity(amenities, "ac"),
		TaxesIncluded:  flag(f, "taxes_included"),
		PriceFrom:      text(f, "price_from"),
		PriceUnit:      text(f, "price_unit"),
		Description:    text(f, "description", "short_description"),
		Area:           text(f, "area_name", "zone_name", "area"),
		Image:          c.imageURL(f),
		TableID:        text(f, "table_id"),
		CategoryID:     text(f, "category_id"),
	}
}

// imageURL picks the thumbnail, else the first gallery image, and joins
// relative paths to the configured image base.
func (c *CatalogClient) imageURL(f map[string]any) string {
	path := text(f, "thumbnail_image")
	if path == "" {
		if gallery, ok := f["gallery_images"].([]any); ok && len(gallery) > 0 {
			path = scalar(gallery[0])
		}
	}
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || c.config.ImageBaseURL == "" {
		return path
	}
	return strings.TrimRight(c.config.ImageBaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// amenityList reads amenities_gallery[].amenity, falling back to a plain
// amenities string list
func amenityList(f map[string]any) []string {
	out := []string{}
	if gallery, ok := f["amenities_gallery"].([]any); ok {
		for _, g := range gallery {
			entry, ok := g.(map[string]any)
			if !ok {
				continue
			}
			if name := scalar(entry["amenity"]); name != "" {
				out = append(out, name)
			}
		}
	}
	if len(out) == 0 {
		if list, ok := f["amenities"].([]any); ok {
			for _, a := range list {
				if name := scalar(a); name != "" {
					out = append(out, name)
				}
			}
		}
	}
	return out
}

// text returns the first non-empty scalar among keys
func text(f map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := scalar(f[k]); s != "" {
			return s
		}
	}
	return ""
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// flag accepts the provider's "Y" markers as well as JSON booleans
func flag(f map[string]any, key string) bool {
	switch t := f[key].(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "y", "yes", "true", "1":
			return true
		}
	case float64:
		return t == 1
	}
	return false
}
