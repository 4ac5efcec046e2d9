package domain

import "github.com/shopspring/decimal"

// Product is a catalog item. The JSON shape follows the catalog API,
// including its "discont_price" key (sic); both null and an absent key
// decode to an invalid NullDecimal.
type Product struct {
	ID            int64               `json:"id"`
	Title         string              `json:"title"`
	Price         decimal.Decimal     `json:"price"`
	DiscountPrice decimal.NullDecimal `json:"discont_price"`
	Description   string              `json:"description,omitempty"`
	Image         string              `json:"image,omitempty"`
	CategoryID    int64               `json:"categoryId,omitempty"`
}

type Category struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

// Discounted reports whether the discount price actually discounts:
// present, positive and strictly below the list price.
func (p Product) Discounted() bool {
	return discounted(p.Price, p.DiscountPrice)
}

// EffectivePrice is the discount price for discounted products,
// otherwise the list price.
func (p Product) EffectivePrice() decimal.Decimal {
	return effectivePrice(p.Price, p.DiscountPrice)
}

// DiscountPercent is the rounded percentage reduction from the list
// price, 0 for non-discounted products.
func (p Product) DiscountPercent() int {
	return discountPercent(p.Price, p.DiscountPrice)
}

// Ref extracts the product metadata captured into a cart line.
func (p Product) Ref() ProductRef {
	return ProductRef{
		ProductID:     p.ID,
		Title:         p.Title,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		Image:         p.Image,
	}
}

func discounted(price decimal.Decimal, dp decimal.NullDecimal) bool {
	return dp.Valid && dp.Decimal.IsPositive() && dp.Decimal.LessThan(price)
}

func effectivePrice(price decimal.Decimal, dp decimal.NullDecimal) decimal.Decimal {
	if discounted(price, dp) {
		return dp.Decimal
	}
	return price
}

var hundred = decimal.NewFromInt(100)

func discountPercent(price decimal.Decimal, dp decimal.NullDecimal) int {
	if !discounted(price, dp) || price.IsZero() {
		return 0
	}
	pct := price.Sub(dp.Decimal).Div(price).Mul(hundred).Round(0)
	return int(pct.IntPart())
}
