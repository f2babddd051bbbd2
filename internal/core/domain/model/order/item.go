package order

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errs.NewValueIsRequiredError("item must be created via NewItem")

const (
	// PriceScale is the number of decimal places a price may carry.
	PriceScale = 2

	MaxQuantity = math.MaxInt32
)

// MaxAmount is the exclusive upper bound of every unit price, subtotal and
// order total: ten integer digits and PriceScale fractional ones.
var MaxAmount = decimal.New(1, 10)

// largestAmount is the greatest representable amount, MaxAmount minus one cent.
var largestAmount = MaxAmount.Sub(decimal.New(1, -PriceScale))

// Item is one line of the order snapshot: the food as it was priced when the
// order was placed.
type Item struct {
	foodID    kernel.UUID
	name      string
	quantity  int
	unitPrice decimal.Decimal
	guard     guard.ConstructorGuard
}

// NewItem validates a line item. Quantity must be positive, the unit price
// must not be negative nor carry more than PriceScale decimals, and the
// subtotal must stay below MaxAmount.
func NewItem(foodID kernel.UUID, name string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	var qtyErr, priceErr error
	switch {
	case quantity <= 0:
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	case quantity > MaxQuantity:
		qtyErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	switch {
	case unitPrice.IsNegative():
		priceErr = errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", unitPrice))
	case !unitPrice.Equal(unitPrice.Round(PriceScale)):
		priceErr = errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%s has more than %d decimal places", unitPrice, PriceScale))
	}
	if err := errors.Join(foodID.Validate(), qtyErr, priceErr); err != nil {
		return Item{}, err
	}

	if subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity))); subtotal.GreaterThanOrEqual(MaxAmount) {
		return Item{}, errs.NewValueIsOutOfRangeError("subtotal", subtotal, decimal.Zero, largestAmount)
	}

	return Item{
		foodID:    foodID,
		name:      strings.TrimSpace(name),
		quantity:  quantity,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (i Item) FoodID() kernel.UUID {
	return i.foodID
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Subtotal is quantity × unit price.
func (i Item) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}
