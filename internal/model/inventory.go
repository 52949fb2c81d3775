package model

import "time"

const (
	ChannelFBA = "fba"
	ChannelFBM = "fbm"
)

const (
	MovementAdjustment = "adjustment"
	MovementSale       = "sale"
	MovementInbound    = "inbound"
)

type StockMovement struct {
	ID             string    `db:"id"`
	MerchantID     string    `db:"merchant_id"`
	ProductID      string    `db:"product_id"`
	Channel        string    `db:"channel"`
	MovementType   string    `db:"movement_type"`
	QuantityChange int       `db:"quantity_change"`
	QuantityBefore int       `db:"quantity_before"`
	QuantityAfter  int       `db:"quantity_after"`
	ReferenceType  *string   `db:"reference_type"`
	ReferenceID    *string   `db:"reference_id"`
	Notes          string    `db:"notes"`
	CreatedBy      *string   `db:"created_by"`
	CreatedAt      time.Time `db:"created_at"`
}

// DailySales is the number of units of a product sold on one calendar day.
type DailySales struct {
	MerchantID string    `db:"merchant_id"`
	ProductID  string    `db:"product_id"`
	SalesDate  time.Time `db:"sales_date"`
	UnitsSold  int       `db:"units_sold"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// OrderSale is one order line already applied to stock and sales history.
// (merchant, order, product, channel) is unique so redelivered orders are skipped.
type OrderSale struct {
	MerchantID string    `db:"merchant_id"`
	OrderID    string    `db:"order_id"`
	ProductID  string    `db:"product_id"`
	Channel    string    `db:"channel"`
	Quantity   int       `db:"quantity"`
	SoldAt     time.Time `db:"sold_at"`
}
