package dto

import (
	"time"

	"github.com/sellergenix/inventory-service/internal/reorder"
	"github.com/shopspring/decimal"
)

type PreviewPlanInput struct {
	Snapshot reorder.InventorySnapshot
	AsOf     *time.Time // Defaults to the service clock
}

type UpdateReorderSettingsInput struct {
	MerchantID       string
	ProductID        string
	LeadTimeDays     int
	SafetyBufferDays int
	ManualDailySales *float64
	UnitCost         *decimal.Decimal
}

type AdjustStockInput struct {
	MerchantID     string
	ProductID      string
	Channel        string // 'fba' or 'fbm', defaults to fba
	QuantityChange int
	MovementType   string // 'adjustment', 'sale', 'inbound'
	Reason         string
	ReferenceID    string
	ReferenceType  string
	UserID         string
}

type RecordSaleInput struct {
	MerchantID string
	ProductID  string // Either ProductID or SKU identifies the product
	SKU        string
	Channel    string
	Quantity   int
	OrderID    string
	SoldAt     time.Time
}
