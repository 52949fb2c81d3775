package inventory

import (
	"context"
	"io"

	"github.com/sellergenix/inventory-service/internal/inventory/dto"
	"github.com/sellergenix/inventory-service/internal/model"
	"github.com/sellergenix/inventory-service/internal/reorder"
)

type UseCase interface {
	PreviewReorderPlan(input *dto.PreviewPlanInput) reorder.Plan
	GetReorderPlan(ctx context.Context, merchantID, productID string) (*dto.ProductPlan, error)
	ListReorderPlans(ctx context.Context, filters *dto.ProductFilters) ([]dto.ProductPlan, int, error)
	UpdateReorderSettings(ctx context.Context, input *dto.UpdateReorderSettingsInput) (*dto.ProductPlan, error)
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.ProductPlan, error)
	RecordSale(ctx context.Context, input *dto.RecordSaleInput) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
	ExportReorderPlans(ctx context.Context, merchantID string, w io.Writer) error
	Policy() reorder.Policy
}
