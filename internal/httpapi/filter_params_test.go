package httpapi

import (
	"net/http/httptest"
	"testing"

	"github.com/example/storefront/internal/domain"
)

func TestParseFilterConfig(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/products?price_from=10.50&price_to=99&discounted=true&sort=price-asc", nil)

	cfg := parseFilterConfig(r)

	if !cfg.PriceFrom.Valid || cfg.PriceFrom.Decimal.String() != "10.5" {
		t.Errorf("unexpected price_from %+v", cfg.PriceFrom)
	}
	if !cfg.PriceTo.Valid || cfg.PriceTo.Decimal.String() != "99" {
		t.Errorf("unexpected price_to %+v", cfg.PriceTo)
	}
	if !cfg.OnlyDiscounted {
		t.Error("discounted=true should enable the discount filter")
	}
	if cfg.Sort != domain.SortPriceAsc {
		t.Errorf("unexpected sort %q", cfg.Sort)
	}
}

func TestParseFilterConfig_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/products", nil)

	cfg := parseFilterConfig(r)

	if cfg.PriceFrom.Valid || cfg.PriceTo.Valid || cfg.OnlyDiscounted {
		t.Errorf("expected empty config, got %+v", cfg)
	}
	if cfg.Sort != domain.SortNone {
		t.Errorf("expected sort none, got %q", cfg.Sort)
	}
}

// Malformed values are dropped, not rejected.
func TestParseFilterConfig_MalformedValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/products?price_from=abc&discounted=maybe&sort=newest", nil)

	cfg := parseFilterConfig(r)

	if cfg.PriceFrom.Valid {
		t.Error("malformed price_from should be ignored")
	}
	if cfg.OnlyDiscounted {
		t.Error("malformed discounted should be ignored")
	}
	if cfg.Sort != domain.SortNone {
		t.Errorf("unknown sort should fall back to none, got %q", cfg.Sort)
	}
}
