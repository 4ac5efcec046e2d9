package domain

import "github.com/shopspring/decimal"

// SortKey selects the ordering applied to a product list.
type SortKey string

const (
	SortNone      SortKey = "none"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortTitleAsc  SortKey = "title-asc"
	SortTitleDesc SortKey = "title-desc"
)

// ParseSortKey normalises the provided value into one of the known sort
// keys. Unknown values fall back to SortNone so a bad query parameter
// degrades to "no reordering" instead of an error.
func ParseSortKey(v string) SortKey {
	switch SortKey(v) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	case SortTitleAsc:
		return SortTitleAsc
	case SortTitleDesc:
		return SortTitleDesc
	default:
		return SortNone
	}
}

// FilterConfig describes the filter and sort applied to a product list.
// Absent bounds are invalid NullDecimals. All predicates are conjunctive.
type FilterConfig struct {
	PriceFrom      decimal.NullDecimal
	PriceTo        decimal.NullDecimal
	OnlyDiscounted bool
	Sort           SortKey
}
