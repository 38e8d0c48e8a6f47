package products

import (
	"sort"
	"strings"

	"musicstore/internal/domain"
	"musicstore/internal/pkg/utils"
)

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
	SortNewest    = "newest"
)

type Filter struct {
	Category        domain.ProductCategory
	Condition       domain.ProductCondition
	Search          string
	MinPrice        *float64
	MaxPrice        *float64
	OnlyFeatured    bool
	OnlyOffers      bool
	OnlyNew         bool
	IncludeInactive bool
	Sort            string
}

// Apply filters and sorts products without touching the input.
func Apply(f Filter, products []domain.Product) []domain.Product {
	search := strings.TrimSpace(f.Search)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		switch {
		case !p.Active && !f.IncludeInactive:
			continue
		case f.Category != "" && p.Category != f.Category:
			continue
		case f.Condition != "" && p.Condition != f.Condition:
			continue
		case f.OnlyFeatured && !p.Featured,
			f.OnlyOffers && !p.Offer,
			f.OnlyNew && !p.New:
			continue
		case f.MinPrice != nil && p.Price < *f.MinPrice,
			f.MaxPrice != nil && p.Price > *f.MaxPrice:
			continue
		}
		if search != "" &&
			!utils.ContainsFold(p.Name, search) &&
			!utils.ContainsFold(p.Description, search) &&
			!utils.ContainsFold(p.Brand, search) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortNewest:
		// flag only, so new items move to the front and keep their order
		sort.SliceStable(out, func(i, j int) bool { return out[i].New && !out[j].New })
	}
	return out
}
