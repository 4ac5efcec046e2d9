package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/example/storefront/internal/domain"
)

// FilterAndSort applies the filter predicates and sort key to a product
// list and returns the result as a new slice. The input is never
// mutated, so applying the same config twice yields the same result.
// Sorting is stable: products with equal keys keep their input order,
// and SortNone keeps the input order entirely.
//
// All predicates work on the effective price (discount price when the
// product is actually discounted, list price otherwise) and are ANDed
// together. Bounds are inclusive.
func FilterAndSort(products []domain.Product, cfg domain.FilterConfig) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !matches(p, cfg) {
			continue
		}
		out = append(out, p)
	}

	switch cfg.Sort {
	case domain.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice().LessThan(out[j].EffectivePrice())
		})
	case domain.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].EffectivePrice().LessThan(out[i].EffectivePrice())
		})
	case domain.SortTitleAsc:
		// Collation, not byte order: Cyrillic and accented titles have
		// to interleave correctly with ASCII ones.
		coll := collate.New(language.Und)
		sort.SliceStable(out, func(i, j int) bool {
			return coll.CompareString(out[i].Title, out[j].Title) < 0
		})
	case domain.SortTitleDesc:
		coll := collate.New(language.Und)
		sort.SliceStable(out, func(i, j int) bool {
			return coll.CompareString(out[j].Title, out[i].Title) < 0
		})
	}

	return out
}

func matches(p domain.Product, cfg domain.FilterConfig) bool {
	price := p.EffectivePrice()
	if cfg.PriceFrom.Valid && price.LessThan(cfg.PriceFrom.Decimal) {
		return false
	}
	if cfg.PriceTo.Valid && price.GreaterThan(cfg.PriceTo.Decimal) {
		return false
	}
	if cfg.OnlyDiscounted && !p.Discounted() {
		return false
	}
	return true
}
