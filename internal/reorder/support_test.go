package reorder

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageDailySales(t *testing.T) {
	assert.Nil(t, AverageDailySales(0, 30))
	assert.Nil(t, AverageDailySales(90, 0))

	avg := AverageDailySales(90, 30)
	require.NotNil(t, avg)
	assert.InDelta(t, 3.0, *avg, 1e-9)
}

func TestResolveDailySales(t *testing.T) {
	assert.Nil(t, ResolveDailySales(nil, nil))
	assert.Nil(t, ResolveDailySales(sales(0), sales(-1)))
	assert.Equal(t, 4.0, *ResolveDailySales(sales(4), sales(2)))
	assert.Equal(t, 2.0, *ResolveDailySales(sales(0), sales(2)))
}

func TestEstimateOrderCost(t *testing.T) {
	cost := decimal.RequireFromString("3.333")
	plan := Plan{UnitsToOrder: intPtr(125)}

	got := EstimateOrderCost(plan, &cost)
	require.NotNil(t, got)
	assert.Equal(t, "416.63", got.StringFixed(2))

	assert.Nil(t, EstimateOrderCost(Plan{}, &cost))
	assert.Nil(t, EstimateOrderCost(plan, nil))
}

func TestStatusUrgencyOrdering(t *testing.T) {
	statuses := []Status{StatusUnknown, StatusSafe, StatusOverstocked, StatusCritical, StatusWarning}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Urgency() < statuses[j].Urgency() })

	assert.Equal(t, []Status{StatusCritical, StatusWarning, StatusSafe, StatusOverstocked, StatusUnknown}, statuses)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("warning")
	require.NoError(t, err)
	assert.Equal(t, StatusWarning, s)

	_, err = ParseStatus("urgent")
	assert.Error(t, err)
}

func TestPlanJSON(t *testing.T) {
	plan := ComputePlan(InventorySnapshot{FBAStock: 100, AvgDailySales: sales(10)}, DefaultPolicy(), asOf)

	data, err := json.Marshal(plan)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"reorder_date":"2026-03-20"`)
	assert.Contains(t, string(data), `"reorder_status":"warning"`)

	var back Plan
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, plan.DateString(), back.DateString())

	unknown, err := json.Marshal(ComputePlan(InventorySnapshot{}, DefaultPolicy(), asOf))
	require.NoError(t, err)
	assert.Contains(t, string(unknown), `"reorder_date":null`)
	assert.Contains(t, string(unknown), `"units_to_order":null`)
}
