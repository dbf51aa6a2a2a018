package service

import (
	"sort"
	"strings"

	"placefinder/internal/model"
)

// ScoredItem is a catalog item with its keyword relevance score
type ScoredItem struct {
	Item  model.CatalogItem
	Score int
}

// Ranker handles keyword scoring and ranking of catalog items
type Ranker struct{}

// NewRanker creates a new ranker
func NewRanker() *Ranker {
	return &Ranker{}
}

// Score counts how many keywords occur in the item's category, sub-category
// and description, case-insensitively. Each keyword counts at most once.
func (r *Ranker) Score(item *model.CatalogItem, keywords []string) int {
	text := strings.ToLower(item.SubCategory + " " + item.Category + " " + item.Description)

	score := 0
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(text, kw) {
			score++
		}
	}
	return score
}

// Rank keeps the items scoring above zero, ordered by descending score with
// ties in catalog order. When nothing scores, the catalog is returned as is.
func (r *Ranker) Rank(catalog []model.CatalogItem, keywords []string) []model.CatalogItem {
	scored := make([]ScoredItem, 0, len(catalog))
	for _, item := range catalog {
		if s := r.Score(&item, keywords); s > 0 {
			scored = append(scored, ScoredItem{Item: item, Score: s})
		}
	}

	if len(scored) == 0 {
		return catalog
	}

	// Sort by score descending
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	ranked := make([]model.CatalogItem, len(scored))
	for i, s := range scored {
		ranked[i] = s.Item
	}
	return ranked
}
