package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a seller's listing together with its stock and reorder settings.
type Product struct {
	ID               string              `db:"id" json:"id"`
	MerchantID       string              `db:"merchant_id" json:"merchant_id"`
	SKU              string              `db:"sku" json:"sku"`
	ASIN             *string             `db:"asin" json:"asin"`
	Name             string              `db:"name" json:"name"`
	FBAStock         int                 `db:"fba_stock" json:"fba_stock"`
	FBMStock         int                 `db:"fbm_stock" json:"fbm_stock"`
	LeadTimeDays     int                 `db:"lead_time_days" json:"lead_time_days"`
	SafetyBufferDays int                 `db:"safety_buffer_days" json:"safety_buffer_days"`
	ManualDailySales *float64            `db:"manual_daily_sales" json:"manual_daily_sales"` // Seller override of the trailing average
	UnitCost         decimal.NullDecimal `db:"unit_cost" json:"unit_cost"`
	IsActive         bool                `db:"is_active" json:"is_active"`
	CreatedAt        time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time           `db:"updated_at" json:"updated_at"`
}

func (p *Product) TotalStock() int {
	return p.FBAStock + p.FBMStock
}

// Stock returns the on-hand quantity for a fulfillment channel.
func (p *Product) Stock(channel string) int {
	if channel == ChannelFBM {
		return p.FBMStock
	}
	return p.FBAStock
}

func (p *Product) SetStock(channel string, qty int) {
	if channel == ChannelFBM {
		p.FBMStock = qty
		return
	}
	p.FBAStock = qty
}
