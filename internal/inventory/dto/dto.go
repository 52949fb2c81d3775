package dto

import (
	"time"

	"github.com/sellergenix/inventory-service/internal/reorder"
	"github.com/shopspring/decimal"
)

type ProductFilters struct {
	MerchantID  string
	ProductIDs  []string
	SearchQuery string
	SearchIDs   []string       `json:"-"` // Index hits, matched in addition to SearchQuery
	Status      reorder.Status // Empty for all statuses
	ActiveOnly  bool
	Page        int
	PageSize    int
}

type MovementFilters struct {
	MerchantID   string
	ProductID    string
	Channel      string
	MovementType string
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	PageSize     int
}

// ProductPlan is a product's reorder plan with the facts it was computed from.
type ProductPlan struct {
	ProductID          string           `json:"product_id"`
	SKU                string           `json:"sku"`
	ASIN               string           `json:"asin,omitempty"`
	Name               string           `json:"name"`
	FBAStock           int              `json:"fba_stock"`
	FBMStock           int              `json:"fbm_stock"`
	AvgDailySales      *float64         `json:"avg_daily_sales"`
	LeadTimeDays       int              `json:"lead_time_days"`
	SafetyBufferDays   int              `json:"safety_buffer_days"`
	UnitCost           *decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost *decimal.Decimal `json:"estimated_order_cost"`
	Plan               reorder.Plan     `json:"plan"`
}

// ReorderAlert is published when a product's plan turns critical.
type ReorderAlert struct {
	MerchantID       string         `json:"merchant_id"`
	ProductID        string         `json:"product_id"`
	SKU              string         `json:"sku"`
	Status           reorder.Status `json:"status"`
	DaysUntilReorder *int           `json:"days_until_reorder"`
	UnitsToOrder     *int           `json:"units_to_order"`
	ReorderDate      string         `json:"reorder_date"`
	Recommendation   string         `json:"recommendation"`
	CreatedAt        time.Time      `json:"created_at"`
}
