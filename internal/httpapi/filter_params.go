package httpapi

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/domain"
)

// parseFilterConfig reads the filter/sort query parameters. Malformed
// values are dropped rather than rejected: a bad price bound means no
// bound, an unknown sort key means no reordering.
func parseFilterConfig(r *http.Request) domain.FilterConfig {
	q := r.URL.Query()

	var cfg domain.FilterConfig
	if v := q.Get("price_from"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.PriceFrom = decimal.NullDecimal{Decimal: d, Valid: true}
		}
	}
	if v := q.Get("price_to"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.PriceTo = decimal.NullDecimal{Decimal: d, Valid: true}
		}
	}
	if v := q.Get("discounted"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OnlyDiscounted = b
		}
	}
	cfg.Sort = domain.ParseSortKey(q.Get("sort"))

	return cfg
}
