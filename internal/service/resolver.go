package service

import (
	"strings"

	"placefinder/internal/model"

	"go.uber.org/zap"
)

// nameStopwords are dropped from venue names before comparison
var nameStopwords = toSet("hotel", "the")

// genericNames can only ever be matched exactly, never by containment
var genericNames = toSet("hotel", "hotels", "resort", "villa")

// EntityResolver finds the single catalog venue a free-text name refers to
type EntityResolver struct {
	logger *zap.Logger
}

// NewEntityResolver creates a new entity resolver
func NewEntityResolver(logger *zap.Logger) *EntityResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntityResolver{
		logger: logger.With(zap.String("component", "resolver")),
	}
}

// NormalizeName lower-cases a venue name, drops the tokens "hotel" and "the"
// and collapses whitespace. Applying it twice gives the same result as once.
func NormalizeName(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	kept := fields[:0]
	for _, f := range fields {
		if _, stop := nameStopwords[f]; stop {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// Resolve returns the first catalog-order item whose vendor name or name
// equals the normalized query name. Failing that, it returns the first item
// whose normalized name contains, or is contained in, the query name, skipping
// names that are bare category words. A nil result means not found.
//
// The whole catalog slice must be passed, not a ranked subset.
func (r *EntityResolver) Resolve(name string, catalog []model.CatalogItem) *model.CatalogItem {
	query := NormalizeName(name)
	if query == "" {
		return nil
	}

	for i := range catalog {
		for _, candidate := range itemNames(&catalog[i]) {
			if candidate == query {
				r.logger.Debug("entity resolved",
					zap.String("query", query),
					zap.String("match", catalog[i].DisplayName()),
					zap.String("pass", "exact"),
				)
				return &catalog[i]
			}
		}
	}

	for i := range catalog {
		for _, candidate := range itemNames(&catalog[i]) {
			if candidate == "" {
				continue
			}
			if _, generic := genericNames[candidate]; generic {
				continue
			}
			if strings.Contains(candidate, query) || strings.Contains(query, candidate) {
				r.logger.Debug("entity resolved",
					zap.String("query", query),
					zap.String("match", catalog[i].DisplayName()),
					zap.String("pass", "contains"),
				)
				return &catalog[i]
			}
		}
	}

	r.logger.Debug("entity not found", zap.String("query", query), zap.Int("catalog_size", len(catalog)))
	return nil
}

// itemNames returns the normalized vendor name and name of an item
func itemNames(item *model.CatalogItem) [2]string {
	return [2]string{NormalizeName(item.VendorName), NormalizeName(item.Name)}
}
