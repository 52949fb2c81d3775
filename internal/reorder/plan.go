package reorder

import (
	"encoding/json"
	"fmt"
	"time"
)

// InventorySnapshot is the stock and velocity of one product at planning time.
// AvgDailySales is nil when the product has no usable sales history.
type InventorySnapshot struct {
	FBAStock         int      `json:"fba_stock"`
	FBMStock         int      `json:"fbm_stock"`
	AvgDailySales    *float64 `json:"avg_daily_sales"`
	LeadTimeDays     int      `json:"lead_time_days"`
	SafetyBufferDays int      `json:"safety_buffer_days"`
}

// Plan is the reorder decision derived from a snapshot. Every numeric field is
// nil when the status is unknown.
type Plan struct {
	DaysOfFBAStock      *int   `json:"days_of_fba_stock"`
	DaysOfFBMStock      *int   `json:"days_of_fbm_stock"`
	TotalDaysOfStock    *int   `json:"total_days_of_stock"`
	DaysUntilReorder    *int   `json:"days_until_reorder"`
	ReorderStatus       Status `json:"reorder_status"`
	ReorderDate         *Date  `json:"reorder_date"`
	IdealStockUnits     *int   `json:"ideal_stock_units"`
	CurrentStockVsIdeal *int   `json:"current_stock_vs_ideal"`
	UnitsToOrder        *int   `json:"units_to_order"`
	OrderRecommendation string `json:"order_recommendation"`
}

const DateLayout = "2006-01-02"

// Date is a calendar day. It serialises as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate keeps the calendar day of t as seen in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(v string) (Date, error) {
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", v, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// DateString returns the reorder date, or "" for an unknown plan.
func (p Plan) DateString() string {
	if p.ReorderDate == nil {
		return ""
	}
	return p.ReorderDate.String()
}
