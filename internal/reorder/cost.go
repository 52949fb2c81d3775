package reorder

import "github.com/shopspring/decimal"

// EstimateOrderCost prices the recommended order at unitCost, rounded to cents.
// It is nil when either the quantity or the cost is unknown.
func EstimateOrderCost(plan Plan, unitCost *decimal.Decimal) *decimal.Decimal {
	if plan.UnitsToOrder == nil || unitCost == nil {
		return nil
	}
	cost := unitCost.Mul(decimal.NewFromInt(int64(*plan.UnitsToOrder))).Round(2)
	return &cost
}
