package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sellergenix/inventory-service/internal/inventory/dto"
	"github.com/sellergenix/inventory-service/internal/model"
	"github.com/sellergenix/inventory-service/internal/reorder"
	"github.com/sellergenix/inventory-service/pkg/api/inventoryv1"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var errInvalidRequest = errors.New("invalid request")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errInvalidRequest, fmt.Sprintf(format, args...))
}

// checkProductID rejects ids that cannot name a product row.
func checkProductID(id string) error {
	if id == "" {
		return invalid("product_id is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return invalid("product_id %q is not a valid id", id)
	}
	return nil
}

func previewInput(req *inventoryv1.PreviewReorderPlanRequest) (*dto.PreviewPlanInput, error) {
	if req.Snapshot == nil {
		return nil, invalid("snapshot is required")
	}

	input := &dto.PreviewPlanInput{
		Snapshot: reorder.InventorySnapshot{
			FBAStock:         req.Snapshot.FBAStock,
			FBMStock:         req.Snapshot.FBMStock,
			AvgDailySales:    req.Snapshot.AvgDailySales,
			LeadTimeDays:     req.Snapshot.LeadTimeDays,
			SafetyBufferDays: req.Snapshot.SafetyBufferDays,
		},
	}
	if req.AsOf != "" {
		d, err := reorder.ParseDate(req.AsOf)
		if err != nil {
			return nil, invalid("as_of: %v", err)
		}
		input.AsOf = &d.Time
	}
	return input, nil
}

func planFilters(merchantID string, req *inventoryv1.ListReorderPlansRequest) (*dto.ProductFilters, error) {
	filters := &dto.ProductFilters{
		MerchantID:  merchantID,
		SearchQuery: strings.TrimSpace(req.Search),
		ActiveOnly:  req.ActiveOnly,
	}
	filters.Page, filters.PageSize = normalizePage(req.Page, req.PageSize)

	if req.Status != "" {
		s, err := reorder.ParseStatus(strings.ToLower(req.Status))
		if err != nil {
			return nil, invalid("%v", err)
		}
		filters.Status = s
	}
	return filters, nil
}

func settingsInput(merchantID string, req *inventoryv1.UpdateReorderSettingsRequest) (*dto.UpdateReorderSettingsInput, error) {
	if err := checkProductID(req.ProductID); err != nil {
		return nil, err
	}
	input := &dto.UpdateReorderSettingsInput{
		MerchantID:       merchantID,
		ProductID:        req.ProductID,
		LeadTimeDays:     req.LeadTimeDays,
		SafetyBufferDays: req.SafetyBufferDays,
		ManualDailySales: req.ManualDailySales,
	}
	if req.UnitCost != "" {
		cost, err := decimal.NewFromString(req.UnitCost)
		if err != nil {
			return nil, invalid("unit_cost %q is not a number", req.UnitCost)
		}
		input.UnitCost = &cost
	}
	return input, nil
}

func adjustInput(merchantID string, req *inventoryv1.AdjustStockRequest) (*dto.AdjustStockInput, error) {
	if err := checkProductID(req.ProductID); err != nil {
		return nil, err
	}

	movementType := strings.ToLower(req.MovementType)
	switch movementType {
	case "", model.MovementAdjustment, model.MovementInbound:
	default:
		return nil, invalid("movement_type must be %q or %q", model.MovementAdjustment, model.MovementInbound)
	}

	refType := req.ReferenceType
	if refType == "" {
		refType = "manual"
	}
	return &dto.AdjustStockInput{
		MerchantID:     merchantID,
		ProductID:      req.ProductID,
		Channel:        req.Channel,
		QuantityChange: req.QuantityChange,
		MovementType:   movementType,
		Reason:         req.Reason,
		ReferenceID:    req.ReferenceID,
		ReferenceType:  refType,
		UserID:         req.UserID,
	}, nil
}

func movementFilters(merchantID string, req *inventoryv1.ListStockMovementsRequest) (*dto.MovementFilters, error) {
	if req.ProductID != "" {
		if err := checkProductID(req.ProductID); err != nil {
			return nil, err
		}
	}
	filters := &dto.MovementFilters{
		MerchantID:   merchantID,
		ProductID:    req.ProductID,
		Channel:      strings.ToLower(req.Channel),
		MovementType: req.MovementType,
	}
	filters.Page, filters.PageSize = normalizePage(req.Page, req.PageSize)

	if req.StartDate != "" {
		d, err := reorder.ParseDate(req.StartDate)
		if err != nil {
			return nil, invalid("start_date: %v", err)
		}
		filters.StartDate = &d.Time
	}
	if req.EndDate != "" {
		d, err := reorder.ParseDate(req.EndDate)
		if err != nil {
			return nil, invalid("end_date: %v", err)
		}
		// inclusive of the whole end day
		end := d.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filters.EndDate = &end
	}
	return filters, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func mapPlanToAPI(p reorder.Plan) *inventoryv1.Plan {
	return &inventoryv1.Plan{
		DaysOfFBAStock:      p.DaysOfFBAStock,
		DaysOfFBMStock:      p.DaysOfFBMStock,
		TotalDaysOfStock:    p.TotalDaysOfStock,
		DaysUntilReorder:    p.DaysUntilReorder,
		ReorderStatus:       string(p.ReorderStatus),
		ReorderDate:         p.DateString(),
		IdealStockUnits:     p.IdealStockUnits,
		CurrentStockVsIdeal: p.CurrentStockVsIdeal,
		UnitsToOrder:        p.UnitsToOrder,
		OrderRecommendation: p.OrderRecommendation,
	}
}

func mapProductPlanToAPI(p *dto.ProductPlan) *inventoryv1.ProductPlan {
	if p == nil {
		return nil
	}

	unitCost := ""
	if p.UnitCost != nil {
		unitCost = p.UnitCost.StringFixed(2)
	}
	orderCost := ""
	if p.EstimatedOrderCost != nil {
		orderCost = p.EstimatedOrderCost.StringFixed(2)
	}

	return &inventoryv1.ProductPlan{
		ProductID:          p.ProductID,
		SKU:                p.SKU,
		ASIN:               p.ASIN,
		Name:               p.Name,
		FBAStock:           p.FBAStock,
		FBMStock:           p.FBMStock,
		AvgDailySales:      p.AvgDailySales,
		LeadTimeDays:       p.LeadTimeDays,
		SafetyBufferDays:   p.SafetyBufferDays,
		UnitCost:           unitCost,
		EstimatedOrderCost: orderCost,
		Plan:               mapPlanToAPI(p.Plan),
	}
}

func mapProductPlansToAPI(plans []dto.ProductPlan) []*inventoryv1.ProductPlan {
	out := make([]*inventoryv1.ProductPlan, len(plans))
	for i := range plans {
		out[i] = mapProductPlanToAPI(&plans[i])
	}
	return out
}

func mapMovementToAPI(m *model.StockMovement) *inventoryv1.StockMovement {
	refType := ""
	if m.ReferenceType != nil {
		refType = *m.ReferenceType
	}
	refID := ""
	if m.ReferenceID != nil {
		refID = *m.ReferenceID
	}
	createdBy := ""
	if m.CreatedBy != nil {
		createdBy = *m.CreatedBy
	}

	return &inventoryv1.StockMovement{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Channel:        m.Channel,
		MovementType:   m.MovementType,
		QuantityChange: m.QuantityChange,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		ReferenceType:  refType,
		ReferenceID:    refID,
		Notes:          m.Notes,
		CreatedBy:      createdBy,
		CreatedAt:      m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapMovementsToAPI(mvs []model.StockMovement) []*inventoryv1.StockMovement {
	out := make([]*inventoryv1.StockMovement, len(mvs))
	for i := range mvs {
		out[i] = mapMovementToAPI(&mvs[i])
	}
	return out
}
