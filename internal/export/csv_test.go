package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/sellergenix/inventory-service/internal/reorder"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	asOf := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	velocity := 5.0
	cost := decimal.RequireFromString("125.50")

	rows := []Row{
		{
			SKU:                "MUG-BLUE",
			Name:               "Blue mug, 12oz",
			FBAStock:           300,
			AvgDailySales:      &velocity,
			Plan:               reorder.ComputePlan(reorder.InventorySnapshot{FBAStock: 300, AvgDailySales: &velocity, LeadTimeDays: 10, SafetyBufferDays: 5}, reorder.DefaultPolicy(), asOf),
			EstimatedOrderCost: &cost,
		},
		{
			SKU:      "MUG-NEW",
			Name:     "New mug",
			FBAStock: 50,
			FBMStock: 20,
			Plan:     reorder.ComputePlan(reorder.InventorySnapshot{FBAStock: 50, FBMStock: 20}, reorder.DefaultPolicy(), asOf),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{"MUG-BLUE", "Blue mug, 12oz", "300", "0", "5.00", "60", "safe", "2026-04-24", "125", "125.50"}, records[1])
	assert.Equal(t, []string{"MUG-NEW", "New mug", "50", "20", "", "", "unknown", "", "", ""}, records[2])
}
