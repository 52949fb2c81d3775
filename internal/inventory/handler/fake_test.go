package handler

import (
	"context"
	"io"
	"time"

	"github.com/sellergenix/inventory-service/internal/inventory/dto"
	"github.com/sellergenix/inventory-service/internal/model"
	"github.com/sellergenix/inventory-service/internal/reorder"
	"github.com/shopspring/decimal"
)

var asOf = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

const productID = "3f1c2a9e-5b7d-4c8e-9a01-6d2f4b8c7e15"

// fakeUseCase records the last input it saw and replays canned results.
type fakeUseCase struct {
	plan      *dto.ProductPlan
	plans     []dto.ProductPlan
	total     int
	movements []model.StockMovement
	csv       string
	err       error

	lastMerchant string
	lastProduct  string
	lastFilters  *dto.ProductFilters
	lastSettings *dto.UpdateReorderSettingsInput
	lastAdjust   *dto.AdjustStockInput
	lastMoves    *dto.MovementFilters
}

func (f *fakeUseCase) PreviewReorderPlan(input *dto.PreviewPlanInput) reorder.Plan {
	at := asOf
	if input.AsOf != nil {
		at = *input.AsOf
	}
	return reorder.ComputePlan(input.Snapshot, reorder.DefaultPolicy(), at)
}

func (f *fakeUseCase) GetReorderPlan(_ context.Context, merchantID, productID string) (*dto.ProductPlan, error) {
	f.lastMerchant, f.lastProduct = merchantID, productID
	return f.plan, f.err
}

func (f *fakeUseCase) ListReorderPlans(_ context.Context, filters *dto.ProductFilters) ([]dto.ProductPlan, int, error) {
	f.lastFilters = filters
	return f.plans, f.total, f.err
}

func (f *fakeUseCase) UpdateReorderSettings(_ context.Context, input *dto.UpdateReorderSettingsInput) (*dto.ProductPlan, error) {
	f.lastSettings = input
	return f.plan, f.err
}

func (f *fakeUseCase) AdjustStock(_ context.Context, input *dto.AdjustStockInput) (*dto.ProductPlan, error) {
	f.lastAdjust = input
	return f.plan, f.err
}

func (f *fakeUseCase) RecordSale(context.Context, *dto.RecordSaleInput) error {
	return f.err
}

func (f *fakeUseCase) ListMovements(_ context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	f.lastMoves = filters
	return f.movements, len(f.movements), f.err
}

func (f *fakeUseCase) ExportReorderPlans(_ context.Context, merchantID string, w io.Writer) error {
	f.lastMerchant = merchantID
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, f.csv)
	return err
}

func (f *fakeUseCase) Policy() reorder.Policy {
	return reorder.DefaultPolicy()
}

func samplePlan() *dto.ProductPlan {
	v := 5.0
	cost := decimal.RequireFromString("2.5")
	orderCost := decimal.RequireFromString("312.5")
	return &dto.ProductPlan{
		ProductID:          productID,
		SKU:                "MUG-BLUE",
		Name:               "Blue mug",
		FBAStock:           300,
		AvgDailySales:      &v,
		LeadTimeDays:       10,
		SafetyBufferDays:   5,
		UnitCost:           &cost,
		EstimatedOrderCost: &orderCost,
		Plan: reorder.ComputePlan(reorder.InventorySnapshot{
			FBAStock:         300,
			AvgDailySales:    &v,
			LeadTimeDays:     10,
			SafetyBufferDays: 5,
		}, reorder.DefaultPolicy(), asOf),
	}
}
