// Package reorder turns a product's stock levels and sales velocity into a
// reorder decision: days of cover, reorder date, order quantity and a status.
//
// ComputePlan is pure. The policy and the planning date are explicit inputs so
// identical calls return identical plans, whether they come from a live
// settings preview, a list view or an export job.
package reorder

import (
	"fmt"
	"math"
	"time"
)

// maxPlanValue bounds day and unit counts so extreme velocities cannot
// overflow the integer conversion.
const maxPlanValue = math.MaxInt32

const noSalesRecommendation = "No sales data available. Set daily sales to calculate reorder timing."

// ComputePlan derives the reorder plan for snapshot under policy as of asOf.
func ComputePlan(snapshot InventorySnapshot, policy Policy, asOf time.Time) Plan {
	velocity, ok := snapshot.velocity()
	if !ok {
		return unknownPlan()
	}
	policy = policy.normalized()

	fbaStock := clampZero(snapshot.FBAStock)
	fbmStock := clampZero(snapshot.FBMStock)
	leadTime := clampZero(snapshot.LeadTimeDays)
	buffer := clampZero(snapshot.SafetyBufferDays)

	daysOfFBA := roundHalfUp(float64(fbaStock) / velocity)
	daysOfFBM := 0
	if fbmStock > 0 {
		daysOfFBM = roundHalfUp(float64(fbmStock) / velocity)
	}
	totalDays := daysOfFBA + daysOfFBM

	daysUntilReorder := totalDays - leadTime - buffer
	reorderDate := NewDate(asOf.AddDate(0, 0, daysUntilReorder))

	totalStock := fbaStock + fbmStock
	idealUnits := ceilInt(velocity * float64(policy.IdealStockDays))
	stockVsIdeal := roundHalfUp(float64(totalStock) / float64(idealUnits) * 100)

	stockAfterLeadTime := float64(totalStock) - velocity*float64(leadTime)
	unitsToOrder := ceilInt(float64(idealUnits) - stockAfterLeadTime)
	if unitsToOrder < 0 {
		unitsToOrder = 0
	}

	status, recommendation := classify(classifyInput{
		totalDays:        totalDays,
		daysUntilReorder: daysUntilReorder,
		totalStock:       totalStock,
		idealUnits:       idealUnits,
		unitsToOrder:     unitsToOrder,
		reorderDate:      reorderDate,
	}, policy)

	return Plan{
		DaysOfFBAStock:      intPtr(daysOfFBA),
		DaysOfFBMStock:      intPtr(daysOfFBM),
		TotalDaysOfStock:    intPtr(totalDays),
		DaysUntilReorder:    intPtr(daysUntilReorder),
		ReorderStatus:       status,
		ReorderDate:         &reorderDate,
		IdealStockUnits:     intPtr(idealUnits),
		CurrentStockVsIdeal: intPtr(stockVsIdeal),
		UnitsToOrder:        intPtr(unitsToOrder),
		OrderRecommendation: recommendation,
	}
}

type classifyInput struct {
	totalDays        int
	daysUntilReorder int
	totalStock       int
	idealUnits       int
	unitsToOrder     int
	reorderDate      Date
}

// classify walks the tiers top to bottom; the first match wins. Overstock is
// checked first so a large surplus is never reported as critical.
func classify(in classifyInput, policy Policy) (Status, string) {
	switch {
	case in.totalDays >= policy.OverstockedThresholdDays:
		excess := in.totalStock - in.idealUnits
		return StatusOverstocked, fmt.Sprintf(
			"Overstocked by %d units (%d days of stock). Consider promotions to reduce excess inventory.",
			excess, in.totalDays)
	case in.daysUntilReorder == 0:
		return StatusCritical, fmt.Sprintf(
			"ORDER NOW! Reorder point is today. Order %d units immediately.", in.unitsToOrder)
	case in.daysUntilReorder < 0:
		return StatusCritical, fmt.Sprintf(
			"ORDER NOW! Reorder point passed %s ago. Order %d units immediately.",
			pluralDays(-in.daysUntilReorder), in.unitsToOrder)
	case in.daysUntilReorder <= policy.CriticalWindowDays:
		return StatusCritical, fmt.Sprintf(
			"Order within %s. Order %d units.",
			pluralDays(in.daysUntilReorder), in.unitsToOrder)
	case in.daysUntilReorder <= policy.WarningWindowDays:
		return StatusWarning, fmt.Sprintf(
			"Order soon: reorder by %s. Order %d units.",
			in.reorderDate, in.unitsToOrder)
	case in.totalDays < policy.MinimumSafeStockDays:
		return StatusWarning, fmt.Sprintf(
			"Stock below %d-day minimum (%d days left). Consider ordering %d units.",
			policy.MinimumSafeStockDays, in.totalDays, in.unitsToOrder)
	case in.totalStock >= in.idealUnits:
		return StatusSafe, fmt.Sprintf("Stock optimal. Next reorder by %s.", in.reorderDate)
	default:
		return StatusSafe, fmt.Sprintf("Stock OK. Order %d units by %s.", in.unitsToOrder, in.reorderDate)
	}
}

func unknownPlan() Plan {
	return Plan{
		ReorderStatus:       StatusUnknown,
		OrderRecommendation: noSalesRecommendation,
	}
}

func (s InventorySnapshot) velocity() (float64, bool) {
	if s.AvgDailySales == nil {
		return 0, false
	}
	v := *s.AvgDailySales
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// roundHalfUp rounds .5 toward +Inf, matching how the dashboard rounds.
func roundHalfUp(f float64) int {
	return saturate(math.Floor(f + 0.5))
}

func ceilInt(f float64) int {
	return saturate(math.Ceil(f))
}

func saturate(f float64) int {
	switch {
	case f > maxPlanValue:
		return maxPlanValue
	case f < -maxPlanValue:
		return -maxPlanValue
	}
	return int(f)
}

func intPtr(n int) *int {
	return &n
}
