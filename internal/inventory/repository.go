package inventory

import (
	"context"
	"time"

	"github.com/sellergenix/inventory-service/internal/inventory/dto"
	"github.com/sellergenix/inventory-service/internal/model"
)

type Repository interface {
	// Products
	GetProduct(ctx context.Context, merchantID, productID string) (*model.Product, error)
	GetProductBySKU(ctx context.Context, merchantID, sku string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateReorderSettings(ctx context.Context, p *model.Product) error

	// Stock operations, transactional with the audit log. Both lock the product
	// row, apply movement.QuantityChange to movement.Channel, fill the
	// movement's before/after quantities and return the updated product.
	AdjustStockWithMovement(ctx context.Context, movement *model.StockMovement) (*model.Product, error)
	// RecordSaleWithMovement also adds the units to the day's sales. A line
	// already recorded for the same order returns ErrDuplicateSale.
	RecordSaleWithMovement(ctx context.Context, sale *model.OrderSale, movement *model.StockMovement) (*model.Product, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)

	// Sales history
	SumUnitsSold(ctx context.Context, merchantID string, productIDs []string, from, to time.Time) (map[string]int, error)
}
