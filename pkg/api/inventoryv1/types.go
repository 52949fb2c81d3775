package inventoryv1

// Snapshot is the planner input for a live preview.
type Snapshot struct {
	FBAStock         int      `json:"fba_stock"`
	FBMStock         int      `json:"fbm_stock"`
	AvgDailySales    *float64 `json:"avg_daily_sales"`
	LeadTimeDays     int      `json:"lead_time_days"`
	SafetyBufferDays int      `json:"safety_buffer_days"`
}

// Plan mirrors the planner output. Numeric fields are null when daily sales
// are unknown; reorder_date is YYYY-MM-DD.
type Plan struct {
	DaysOfFBAStock      *int   `json:"days_of_fba_stock"`
	DaysOfFBMStock      *int   `json:"days_of_fbm_stock"`
	TotalDaysOfStock    *int   `json:"total_days_of_stock"`
	DaysUntilReorder    *int   `json:"days_until_reorder"`
	ReorderStatus       string `json:"reorder_status"`
	ReorderDate         string `json:"reorder_date,omitempty"`
	IdealStockUnits     *int   `json:"ideal_stock_units"`
	CurrentStockVsIdeal *int   `json:"current_stock_vs_ideal"`
	UnitsToOrder        *int   `json:"units_to_order"`
	OrderRecommendation string `json:"order_recommendation"`
}

type ProductPlan struct {
	ProductID          string   `json:"product_id"`
	SKU                string   `json:"sku"`
	ASIN               string   `json:"asin,omitempty"`
	Name               string   `json:"name"`
	FBAStock           int      `json:"fba_stock"`
	FBMStock           int      `json:"fbm_stock"`
	AvgDailySales      *float64 `json:"avg_daily_sales"`
	LeadTimeDays       int      `json:"lead_time_days"`
	SafetyBufferDays   int      `json:"safety_buffer_days"`
	UnitCost           string   `json:"unit_cost,omitempty"`
	EstimatedOrderCost string   `json:"estimated_order_cost,omitempty"`
	Plan               *Plan    `json:"plan"`
}

type StockMovement struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	Channel        string `json:"channel"`
	MovementType   string `json:"movement_type"`
	QuantityChange int    `json:"quantity_change"`
	QuantityBefore int    `json:"quantity_before"`
	QuantityAfter  int    `json:"quantity_after"`
	ReferenceType  string `json:"reference_type,omitempty"`
	ReferenceID    string `json:"reference_id,omitempty"`
	Notes          string `json:"notes,omitempty"`
	CreatedBy      string `json:"created_by,omitempty"`
	CreatedAt      string `json:"created_at"`
}

type PreviewReorderPlanRequest struct {
	Snapshot *Snapshot `json:"snapshot"`
	AsOf     string    `json:"as_of,omitempty"` // YYYY-MM-DD, defaults to today
}

type PreviewReorderPlanResponse struct {
	Plan *Plan `json:"plan"`
}

type GetReorderPlanRequest struct {
	ProductID string `json:"product_id"`
}

type GetReorderPlanResponse struct {
	Plan *ProductPlan `json:"plan"`
}

type ListReorderPlansRequest struct {
	Status     string `json:"status,omitempty"`
	Search     string `json:"search,omitempty"`
	ActiveOnly bool   `json:"active_only,omitempty"`
	Page       int    `json:"page,omitempty"`
	PageSize   int    `json:"page_size,omitempty"`
}

type ListReorderPlansResponse struct {
	Plans    []*ProductPlan `json:"plans"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

type UpdateReorderSettingsRequest struct {
	ProductID        string   `json:"product_id"`
	LeadTimeDays     int      `json:"lead_time_days"`
	SafetyBufferDays int      `json:"safety_buffer_days"`
	ManualDailySales *float64 `json:"manual_daily_sales,omitempty"`
	UnitCost         string   `json:"unit_cost,omitempty"`
}

type UpdateReorderSettingsResponse struct {
	Plan *ProductPlan `json:"plan"`
}

type AdjustStockRequest struct {
	ProductID      string `json:"product_id"`
	Channel        string `json:"channel,omitempty"`
	QuantityChange int    `json:"quantity_change"`
	MovementType   string `json:"movement_type,omitempty"`
	Reason         string `json:"reason,omitempty"`
	ReferenceID    string `json:"reference_id,omitempty"`
	ReferenceType  string `json:"reference_type,omitempty"`
	UserID         string `json:"user_id,omitempty"`
}

type AdjustStockResponse struct {
	Plan *ProductPlan `json:"plan"`
}

type ListStockMovementsRequest struct {
	ProductID    string `json:"product_id"`
	Channel      string `json:"channel,omitempty"`
	MovementType string `json:"movement_type,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	Page         int    `json:"page,omitempty"`
	PageSize     int    `json:"page_size,omitempty"`
}

type ListStockMovementsResponse struct {
	Movements []*StockMovement `json:"movements"`
	Total     int              `json:"total"`
}
