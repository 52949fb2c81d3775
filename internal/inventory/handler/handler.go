package handler

import (
	"context"

	"github.com/sellergenix/inventory-service/internal/auth"
	"github.com/sellergenix/inventory-service/internal/inventory"
	"github.com/sellergenix/inventory-service/pkg/api/inventoryv1"
	"github.com/sellergenix/inventory-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type InventoryHandler struct {
	inventoryv1.UnimplementedReorderServiceServer
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func requireMerchant(ctx context.Context) (string, error) {
	merchantID := auth.GetMerchantID(ctx)
	if merchantID == "" {
		return "", status.Error(codes.Unauthenticated, "missing merchant")
	}
	return merchantID, nil
}

// PreviewReorderPlan needs no merchant; it only runs the planner.
func (h *InventoryHandler) PreviewReorderPlan(ctx context.Context, req *inventoryv1.PreviewReorderPlanRequest) (*inventoryv1.PreviewReorderPlanResponse, error) {
	input, err := previewInput(req)
	if err != nil {
		return nil, grpcError(err)
	}

	plan := h.uc.PreviewReorderPlan(input)
	return &inventoryv1.PreviewReorderPlanResponse{Plan: mapPlanToAPI(plan)}, nil
}

func (h *InventoryHandler) GetReorderPlan(ctx context.Context, req *inventoryv1.GetReorderPlanRequest) (*inventoryv1.GetReorderPlanResponse, error) {
	merchantID, err := requireMerchant(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkProductID(req.ProductID); err != nil {
		return nil, grpcError(err)
	}

	p, err := h.uc.GetReorderPlan(ctx, merchantID, req.ProductID)
	if err != nil {
		return nil, h.fail("failed to get reorder plan", err)
	}

	return &inventoryv1.GetReorderPlanResponse{Plan: mapProductPlanToAPI(p)}, nil
}

func (h *InventoryHandler) ListReorderPlans(ctx context.Context, req *inventoryv1.ListReorderPlansRequest) (*inventoryv1.ListReorderPlansResponse, error) {
	merchantID, err := requireMerchant(ctx)
	if err != nil {
		return nil, err
	}

	filters, err := planFilters(merchantID, req)
	if err != nil {
		return nil, grpcError(err)
	}

	plans, total, err := h.uc.ListReorderPlans(ctx, filters)
	if err != nil {
		return nil, h.fail("failed to list reorder plans", err)
	}

	return &inventoryv1.ListReorderPlansResponse{
		Plans:    mapProductPlansToAPI(plans),
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}, nil
}

func (h *InventoryHandler) UpdateReorderSettings(ctx context.Context, req *inventoryv1.UpdateReorderSettingsRequest) (*inventoryv1.UpdateReorderSettingsResponse, error) {
	merchantID, err := requireMerchant(ctx)
	if err != nil {
		return nil, err
	}

	input, err := settingsInput(merchantID, req)
	if err != nil {
		return nil, grpcError(err)
	}

	p, err := h.uc.UpdateReorderSettings(ctx, input)
	if err != nil {
		return nil, h.fail("failed to update reorder settings", err)
	}

	return &inventoryv1.UpdateReorderSettingsResponse{Plan: mapProductPlanToAPI(p)}, nil
}

func (h *InventoryHandler) AdjustStock(ctx context.Context, req *inventoryv1.AdjustStockRequest) (*inventoryv1.AdjustStockResponse, error) {
	merchantID, err := requireMerchant(ctx)
	if err != nil {
		return nil, err
	}

	input, err := adjustInput(merchantID, req)
	if err != nil {
		return nil, grpcError(err)
	}
	if input.UserID == "" {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if val := md.Get("x-user-id"); len(val) > 0 {
				input.UserID = val[0]
			}
		}
	}

	p, err := h.uc.AdjustStock(ctx, input)
	if err != nil {
		return nil, h.fail("failed to adjust stock", err)
	}

	return &inventoryv1.AdjustStockResponse{Plan: mapProductPlanToAPI(p)}, nil
}

func (h *InventoryHandler) ListStockMovements(ctx context.Context, req *inventoryv1.ListStockMovementsRequest) (*inventoryv1.ListStockMovementsResponse, error) {
	merchantID, err := requireMerchant(ctx)
	if err != nil {
		return nil, err
	}

	filters, err := movementFilters(merchantID, req)
	if err != nil {
		return nil, grpcError(err)
	}

	mvs, count, err := h.uc.ListMovements(ctx, filters)
	if err != nil {
		return nil, h.fail("failed to list stock movements", err)
	}

	return &inventoryv1.ListStockMovementsResponse{
		Movements: mapMovementsToAPI(mvs),
		Total:     count,
	}, nil
}

func (h *InventoryHandler) fail(msg string, err error) error {
	st := grpcError(err)
	if status.Code(st) == codes.Internal {
		h.logger.Error(msg, zap.Error(err))
	}
	return st
}
