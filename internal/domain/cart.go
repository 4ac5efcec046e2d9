package domain

import "github.com/shopspring/decimal"

// ProductRef is the product metadata a cart line carries. Once a line
// exists its stored metadata wins over whatever later add calls pass in.
type ProductRef struct {
	ProductID     int64               `json:"id"`
	Title         string              `json:"title"`
	Price         decimal.Decimal     `json:"price"`
	DiscountPrice decimal.NullDecimal `json:"discont_price"`
	Image         string              `json:"image"`
}

// CartLine is one cart entry, unique by product id.
type CartLine struct {
	ProductRef
	Quantity int `json:"quantity"`
}

// EffectivePrice is the discount price when it actually discounts,
// otherwise the list price.
func (l CartLine) EffectivePrice() decimal.Decimal {
	return effectivePrice(l.Price, l.DiscountPrice)
}

// Subtotal is the effective price multiplied by the line quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.EffectivePrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}
