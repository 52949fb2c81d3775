// Package export renders reorder plans as spreadsheet rows.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/sellergenix/inventory-service/internal/reorder"
	"github.com/shopspring/decimal"
)

var Header = []string{
	"sku",
	"name",
	"fba_stock",
	"fbm_stock",
	"avg_daily_sales",
	"total_days_of_stock",
	"reorder_status",
	"reorder_date",
	"units_to_order",
	"estimated_order_cost",
}

type Row struct {
	SKU                string
	Name               string
	FBAStock           int
	FBMStock           int
	AvgDailySales      *float64
	Plan               reorder.Plan
	EstimatedOrderCost *decimal.Decimal
}

// Record formats r in Header order. Unknown values are empty cells.
func (r Row) Record() []string {
	return []string{
		r.SKU,
		r.Name,
		strconv.Itoa(r.FBAStock),
		strconv.Itoa(r.FBMStock),
		formatFloat(r.AvgDailySales),
		formatInt(r.Plan.TotalDaysOfStock),
		string(r.Plan.ReorderStatus),
		r.Plan.DateString(),
		formatInt(r.Plan.UnitsToOrder),
		formatMoney(r.EstimatedOrderCost),
	}
}

func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatMoney(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return v.StringFixed(2)
}
