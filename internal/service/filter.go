package service

import (
	"context"
	"fmt"
	"strings"

	"placefinder/internal/model"
	"placefinder/internal/utils"

	"golang.org/x/sync/errgroup"
)

// DefaultContextItems caps the venues handed to the responder
const DefaultContextItems = 8

const descriptionLimit = 200

// exploratoryCategories are the leisure categories allowed in exploratory mode
var exploratoryCategories = toSet(
	CategoryMuseum, CategoryTheater, CategoryTreks, CategoryPicnic, CategoryEvents,
	CategoryAdventure, CategoryWildlife, CategoryRestaurant, CategoryShopping, CategoryWine,
)

// mustHaveTerms are the catalog wordings that satisfy each must-have flag
var mustHaveTerms = map[string][]string{
	model.MustHavePool:   {"pool", "swimming"},
	model.MustHaveFamily: {"family"},
	model.MustHaveCouple: {"couple"},
	model.MustHaveLuxury: {"luxury"},
	model.MustHaveBudget: {"budget", "cheap", "affordable"},
}

// CatalogFilter narrows a fetched catalog to the venues an intent asks for.
// It holds no mutable state; identical inputs give identical output.
type CatalogFilter struct {
	ranker *Ranker
}

// NewCatalogFilter creates a new catalog filter
func NewCatalogFilter(ranker *Ranker) *CatalogFilter {
	if ranker == nil {
		ranker = NewRanker()
	}
	return &CatalogFilter{ranker: ranker}
}

// Filter ranks the catalog by intent keywords, then drops items that meet
// none of the must-have flags and applies the domain rule: exploratory
// intents keep leisure categories only, otherwise items must match the
// search domain exactly when one was resolved. An empty result with
// must-have flags set means the flags cannot be satisfied.
func (f *CatalogFilter) Filter(catalog []model.CatalogItem, intent *model.Intent) []model.CatalogItem {
	ranked := f.ranker.Rank(catalog, intent.Keywords())

	filtered := make([]model.CatalogItem, 0, len(ranked))
	for _, item := range ranked {
		if meetsMustHave(&item, intent.MustHave) && keepForDomain(&item, intent) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// meetsMustHave reports whether the item satisfies at least one flag. The
// pool flag also accepts the normalized amenity flag.
func meetsMustHave(item *model.CatalogItem, flags []string) bool {
	if len(flags) == 0 {
		return true
	}

	text := strings.ToLower(strings.Join([]string{
		item.DisplayName(), item.SubCategory, item.Category, item.Description,
		strings.Join(item.Amenities, " "),
	}, " "))

	for _, flag := range flags {
		if flag == model.MustHavePool && item.Pool {
			return true
		}
		if utils.ContainsAny(text, mustHaveTerms[flag]...) {
			return true
		}
	}
	return false
}

func keepForDomain(item *model.CatalogItem, intent *model.Intent) bool {
	if intent.Exploratory {
		_, ok := exploratoryCategories[item.CanonicalCategory]
		return ok
	}
	if intent.SearchDomain == "" {
		return true
	}
	return item.CanonicalCategory == intent.SearchDomain
}

// FormatContext renders at most limit items as numbered text blocks for the
// responder. Blocks are built concurrently but keep the input order.
func FormatContext(ctx context.Context, items []model.CatalogItem, limit int) (string, error) {
	if limit <= 0 || len(items) == 0 {
		return "", nil
	}
	if len(items) > limit {
		items = items[:limit]
	}

	blocks := make([]string, len(items))
	g, ctx := errgroup.WithContext(ctx)
	for i := range items {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			blocks[i] = formatBlock(i+1, &items[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("failed to format context: %w", err)
	}

	return strings.Join(blocks, "\n"), nil
}

func formatBlock(index int, item *model.CatalogItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d]\n", index)
	fmt.Fprintf(&b, "Name: %s\n", item.DisplayName())
	fmt.Fprintf(&b, "Category: %s\n", item.Category)
	fmt.Fprintf(&b, "Area: %s\n", item.Area)
	fmt.Fprintf(&b, "Rating: %s\n", item.Rating)
	fmt.Fprintf(&b, "Address: %s\n", item.Address)
	fmt.Fprintf(&b, "Description: %s\n", utils.Truncate(item.Description, descriptionLimit))
	b.WriteString("----")
	return b.String()
}

// FormatEntityContext renders the single-venue context used when a detail
// request resolves to one catalog item.
func FormatEntityContext(item *model.CatalogItem) string {
	return fmt.Sprintf("Name: %s\nRating: %s\nAddress: %s\nDescription: %s",
		item.DisplayName(), item.Rating, item.Address, item.Description)
}
