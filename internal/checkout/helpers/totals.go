package helpers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenbasket/greenbasket-backend/pkg/config"
	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
)

// Totals is the money breakdown for one vendor group.
type Totals struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// ComputeTotals prices a vendor group. The delivery fee is waived only
// when the group's subtotal strictly exceeds the free-delivery
// threshold; tax applies to the subtotal and rounds to paise.
func ComputeTotals(items []models.CartItem, policy config.CheckoutConfig) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		price := item.UnitPriceSnapshot
		if item.Product != nil {
			price = item.Product.EffectivePrice()
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	fee := policy.DeliveryFee
	if subtotal.GreaterThan(policy.FreeDeliveryThreshold) {
		fee = decimal.Zero
	}

	tax := subtotal.Mul(policy.TaxRate).Round(2)

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       subtotal.Add(fee).Add(tax),
	}
}

// AmountPaise converts a rupee total into the integer paise amount the
// payment gateway expects.
func (t Totals) AmountPaise() int64 {
	return t.Total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// NewOrderNumber builds a human-readable order number from the current
// millisecond timestamp and a random suffix.
func NewOrderNumber() string {
	return fmt.Sprintf("ORG%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
