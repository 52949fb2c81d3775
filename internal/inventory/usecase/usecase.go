package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sellergenix/inventory-service/internal/export"
	"github.com/sellergenix/inventory-service/internal/inventory"
	"github.com/sellergenix/inventory-service/internal/inventory/dto"
	"github.com/sellergenix/inventory-service/internal/model"
	"github.com/sellergenix/inventory-service/internal/reorder"
	"github.com/sellergenix/inventory-service/pkg/logger"
	"github.com/sellergenix/inventory-service/pkg/search"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const planIndex = "reorder_plans"

// Cache is the subset of the Redis client the usecase needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

type SearchIndex interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc interface{}) error
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResponse, error)
}

type Publisher interface {
	PublishJSON(ctx context.Context, key string, v interface{}) error
}

type Options struct {
	Policy          reorder.Policy
	SalesWindowDays int
	CacheTTL        time.Duration
	Now             func() time.Time
}

type inventoryUseCase struct {
	repo      inventory.Repository
	cache     Cache
	search    SearchIndex
	publisher Publisher
	logger    logger.ZapLogger

	policy     reorder.Policy
	window     int
	cacheTTL   time.Duration
	now        func() time.Time
	lockTries  int
	lockWait   time.Duration
	lockExpiry time.Duration
}

// NewInventoryUseCase wires the planner to storage. cache, search and publisher
// may be nil; the corresponding features are then skipped.
func NewInventoryUseCase(repo inventory.Repository, cache Cache, search SearchIndex, publisher Publisher, log logger.ZapLogger, opts Options) inventory.UseCase {
	if opts.SalesWindowDays <= 0 {
		opts.SalesWindowDays = reorder.DefaultSalesWindowDays
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &inventoryUseCase{
		repo:       repo,
		cache:      cache,
		search:     search,
		publisher:  publisher,
		logger:     log,
		policy:     opts.Policy,
		window:     opts.SalesWindowDays,
		cacheTTL:   opts.CacheTTL,
		now:        opts.Now,
		lockTries:  3,
		lockWait:   100 * time.Millisecond,
		lockExpiry: 5 * time.Second,
	}
}

func (uc *inventoryUseCase) Policy() reorder.Policy {
	return uc.policy
}

func (uc *inventoryUseCase) PreviewReorderPlan(input *dto.PreviewPlanInput) reorder.Plan {
	asOf := uc.now()
	if input.AsOf != nil {
		asOf = *input.AsOf
	}
	return reorder.ComputePlan(input.Snapshot, uc.policy, asOf)
}

func (uc *inventoryUseCase) GetReorderPlan(ctx context.Context, merchantID, productID string) (*dto.ProductPlan, error) {
	p, err := uc.repo.GetProduct(ctx, merchantID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, inventory.ErrProductNotFound
	}

	sold, err := uc.unitsSold(ctx, merchantID, []string{p.ID})
	if err != nil {
		return nil, err
	}

	plan := uc.buildPlan(p, sold[p.ID])
	return &plan, nil
}

type cachedPlans struct {
	Items []dto.ProductPlan
	Total int
}

func (uc *inventoryUseCase) ListReorderPlans(ctx context.Context, filters *dto.ProductFilters) ([]dto.ProductPlan, int, error) {
	// 1. Cache
	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil && uc.cache != nil {
		if val, err := uc.cache.Get(ctx, cacheKey); err == nil {
			var result cachedPlans
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return result.Items, result.Total, nil
			}
		}
	}

	// 2. Compute plans for every matching product; status and urgency order are
	// derived, so filtering and paging happen after computation.
	plans, err := uc.computeAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if filters.Status != "" {
		filtered := plans[:0]
		for _, p := range plans {
			if p.Plan.ReorderStatus == filters.Status {
				filtered = append(filtered, p)
			}
		}
		plans = filtered
	}
	sortByUrgency(plans)

	total := len(plans)
	page := paginate(plans, filters.Page, filters.PageSize)

	// 3. Store
	if cacheKey != "" && uc.cache != nil {
		if data, err := json.Marshal(cachedPlans{Items: page, Total: total}); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
				uc.logger.Warn("failed to cache reorder plans", zap.Error(err))
			}
		}
	}

	return page, total, nil
}

func (uc *inventoryUseCase) computeAll(ctx context.Context, filters *dto.ProductFilters) ([]dto.ProductPlan, error) {
	query := &dto.ProductFilters{
		MerchantID:  filters.MerchantID,
		ProductIDs:  filters.ProductIDs,
		SearchQuery: filters.SearchQuery,
		ActiveOnly:  filters.ActiveOnly,
	}

	if filters.SearchQuery != "" && uc.search != nil {
		// Index hits widen the DB ILIKE match; products that were never
		// indexed are still found by the database.
		ids, err := uc.searchProductIDs(ctx, filters.MerchantID, filters.SearchQuery)
		if err == nil {
			query.SearchIDs = ids
		} else {
			uc.logger.Error("search failed, falling back to DB", zap.Error(err))
		}
	}

	products, _, err := uc.repo.ListProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	sold, err := uc.unitsSold(ctx, filters.MerchantID, ids)
	if err != nil {
		return nil, err
	}

	plans := make([]dto.ProductPlan, len(products))
	for i := range products {
		plans[i] = uc.buildPlan(&products[i], sold[products[i].ID])
	}
	return plans, nil
}

func (uc *inventoryUseCase) searchProductIDs(ctx context.Context, merchantID, text string) ([]string, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"query_string": map[string]interface{}{
							"query":  fmt.Sprintf("*%s*", text),
							"fields": []string{"name^3", "sku", "asin"},
						},
					},
					{
						"term": map[string]interface{}{
							"merchant_id": merchantID,
						},
					},
				},
			},
		},
		"_source": false,
		"size":    1000,
	}

	res, err := uc.search.Search(ctx, planIndex, q)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func (uc *inventoryUseCase) UpdateReorderSettings(ctx context.Context, input *dto.UpdateReorderSettingsInput) (*dto.ProductPlan, error) {
	if err := validateSettings(input); err != nil {
		return nil, err
	}

	p, err := uc.repo.GetProduct(ctx, input.MerchantID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, inventory.ErrProductNotFound
	}

	p.LeadTimeDays = input.LeadTimeDays
	p.SafetyBufferDays = input.SafetyBufferDays
	p.ManualDailySales = input.ManualDailySales
	p.UnitCost = decimal.NullDecimal{}
	if input.UnitCost != nil {
		p.UnitCost = decimal.NewNullDecimal(*input.UnitCost)
	}
	p.UpdatedAt = uc.now()

	if err := uc.repo.UpdateReorderSettings(ctx, p); err != nil {
		return nil, err
	}

	sold, err := uc.unitsSold(ctx, p.MerchantID, []string{p.ID})
	if err != nil {
		return nil, err
	}
	plan := uc.buildPlan(p, sold[p.ID])

	uc.afterChange(ctx, p.MerchantID, plan)
	return &plan, nil
}

func validateSettings(input *dto.UpdateReorderSettingsInput) error {
	switch {
	case input.LeadTimeDays < 0:
		return fmt.Errorf("%w: lead time must not be negative", inventory.ErrInvalidSettings)
	case input.SafetyBufferDays < 0:
		return fmt.Errorf("%w: safety buffer must not be negative", inventory.ErrInvalidSettings)
	case input.ManualDailySales != nil && *input.ManualDailySales < 0:
		return fmt.Errorf("%w: daily sales must not be negative", inventory.ErrInvalidSettings)
	case input.UnitCost != nil && input.UnitCost.IsNegative():
		return fmt.Errorf("%w: unit cost must not be negative", inventory.ErrInvalidSettings)
	}
	return nil
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.ProductPlan, error) {
	channel, err := normalizeChannel(input.Channel)
	if err != nil {
		return nil, err
	}
	if input.QuantityChange == 0 {
		return nil, fmt.Errorf("%w: quantity change must not be zero", inventory.ErrInvalidAdjustment)
	}

	movementType := input.MovementType
	switch movementType {
	case "":
		movementType = model.MovementAdjustment
	case model.MovementAdjustment, model.MovementInbound:
	default:
		// sales go through RecordSale so they reach the sales history
		return nil, fmt.Errorf("%w: movement type %q cannot be recorded manually", inventory.ErrInvalidAdjustment, movementType)
	}

	movement := &model.StockMovement{
		ID:             uuid.New().String(),
		MerchantID:     input.MerchantID,
		ProductID:      input.ProductID,
		Channel:        channel,
		MovementType:   movementType,
		QuantityChange: input.QuantityChange,
		ReferenceType:  optional(input.ReferenceType),
		ReferenceID:    optional(input.ReferenceID),
		Notes:          input.Reason,
		CreatedAt:      uc.now(),
	}
	if input.UserID != "" && input.UserID != "unknown" {
		movement.CreatedBy = &input.UserID
	}

	return uc.changeStock(ctx, input.MerchantID, input.ProductID, func() (*model.Product, error) {
		return uc.repo.AdjustStockWithMovement(ctx, movement)
	})
}

// RecordSale applies one order line: the sales history row, the stock
// deduction and its movement are written together. Redelivered lines are
// skipped.
func (uc *inventoryUseCase) RecordSale(ctx context.Context, input *dto.RecordSaleInput) error {
	if input.Quantity <= 0 {
		return fmt.Errorf("%w: sold quantity must be positive", inventory.ErrInvalidAdjustment)
	}
	channel, err := normalizeChannel(input.Channel)
	if err != nil {
		return err
	}

	productID := input.ProductID
	if productID == "" {
		p, err := uc.repo.GetProductBySKU(ctx, input.MerchantID, input.SKU)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: sku %s", inventory.ErrProductNotFound, input.SKU)
		}
		productID = p.ID
	}

	now := uc.now()
	soldAt := input.SoldAt
	if soldAt.IsZero() {
		soldAt = now
	}

	sale := &model.OrderSale{
		MerchantID: input.MerchantID,
		OrderID:    input.OrderID,
		ProductID:  productID,
		Channel:    channel,
		Quantity:   input.Quantity,
		SoldAt:     soldAt,
	}
	system := "system"
	movement := &model.StockMovement{
		ID:             uuid.New().String(),
		MerchantID:     input.MerchantID,
		ProductID:      productID,
		Channel:        channel,
		MovementType:   model.MovementSale,
		QuantityChange: -input.Quantity,
		ReferenceType:  optional("order"),
		ReferenceID:    optional(input.OrderID),
		Notes:          "Order Sale",
		CreatedBy:      &system,
		CreatedAt:      now,
	}

	_, err = uc.changeStock(ctx, input.MerchantID, productID, func() (*model.Product, error) {
		return uc.repo.RecordSaleWithMovement(ctx, sale, movement)
	})
	if errors.Is(err, inventory.ErrDuplicateSale) {
		uc.logger.Info("Skipping already recorded order line",
			zap.String("order_id", input.OrderID),
			zap.String("product_id", productID),
		)
		return nil
	}
	return err
}

// changeStock runs write while holding the product lock. Cache invalidation,
// re-indexing and alerts run after the lock is released.
func (uc *inventoryUseCase) changeStock(ctx context.Context, merchantID, productID string, write func() (*model.Product, error)) (*dto.ProductPlan, error) {
	release, err := uc.lock(ctx, fmt.Sprintf("lock:inventory:%s:%s", merchantID, productID))
	if err != nil {
		return nil, err
	}
	before, after, err := uc.writeStock(ctx, merchantID, productID, write)
	release()
	if err != nil {
		return nil, err
	}

	uc.afterChange(ctx, merchantID, *after)
	if after.Plan.ReorderStatus == reorder.StatusCritical && before.Plan.ReorderStatus != reorder.StatusCritical {
		uc.publishAlert(ctx, merchantID, *after)
	}
	return after, nil
}

func (uc *inventoryUseCase) writeStock(ctx context.Context, merchantID, productID string, write func() (*model.Product, error)) (*dto.ProductPlan, *dto.ProductPlan, error) {
	p, err := uc.repo.GetProduct(ctx, merchantID, productID)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, inventory.ErrProductNotFound
	}

	sold, err := uc.unitsSold(ctx, merchantID, []string{p.ID})
	if err != nil {
		return nil, nil, err
	}
	before := uc.buildPlan(p, sold[p.ID])

	updated, err := write()
	if err != nil {
		return nil, nil, err
	}

	// a sale changes velocity too
	if fresh, err := uc.unitsSold(ctx, merchantID, []string{p.ID}); err == nil {
		sold = fresh
	} else {
		uc.logger.Warn("failed to reload sales after stock change", zap.String("product_id", p.ID), zap.Error(err))
	}
	after := uc.buildPlan(updated, sold[updated.ID])
	return &before, &after, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

func (uc *inventoryUseCase) ExportReorderPlans(ctx context.Context, merchantID string, w io.Writer) error {
	plans, err := uc.computeAll(ctx, &dto.ProductFilters{MerchantID: merchantID, ActiveOnly: true})
	if err != nil {
		return err
	}
	sortByUrgency(plans)

	rows := make([]export.Row, len(plans))
	for i, p := range plans {
		rows[i] = export.Row{
			SKU:                p.SKU,
			Name:               p.Name,
			FBAStock:           p.FBAStock,
			FBMStock:           p.FBMStock,
			AvgDailySales:      p.AvgDailySales,
			Plan:               p.Plan,
			EstimatedOrderCost: p.EstimatedOrderCost,
		}
	}
	return export.WriteCSV(w, rows)
}

// buildPlan computes the plan for p given units sold in the trailing window.
func (uc *inventoryUseCase) buildPlan(p *model.Product, unitsSold int) dto.ProductPlan {
	velocity := reorder.ResolveDailySales(p.ManualDailySales, reorder.AverageDailySales(unitsSold, uc.window))

	plan := reorder.ComputePlan(reorder.InventorySnapshot{
		FBAStock:         p.FBAStock,
		FBMStock:         p.FBMStock,
		AvgDailySales:    velocity,
		LeadTimeDays:     p.LeadTimeDays,
		SafetyBufferDays: p.SafetyBufferDays,
	}, uc.policy, uc.now())

	var unitCost *decimal.Decimal
	if p.UnitCost.Valid {
		c := p.UnitCost.Decimal
		unitCost = &c
	}

	asin := ""
	if p.ASIN != nil {
		asin = *p.ASIN
	}

	return dto.ProductPlan{
		ProductID:          p.ID,
		SKU:                p.SKU,
		ASIN:               asin,
		Name:               p.Name,
		FBAStock:           p.FBAStock,
		FBMStock:           p.FBMStock,
		AvgDailySales:      velocity,
		LeadTimeDays:       p.LeadTimeDays,
		SafetyBufferDays:   p.SafetyBufferDays,
		UnitCost:           unitCost,
		EstimatedOrderCost: reorder.EstimateOrderCost(plan, unitCost),
		Plan:               plan,
	}
}

// unitsSold sums sales over the trailing window ending today.
func (uc *inventoryUseCase) unitsSold(ctx context.Context, merchantID string, productIDs []string) (map[string]int, error) {
	to := reorder.NewDate(uc.now()).Time
	from := to.AddDate(0, 0, -(uc.window - 1))
	return uc.repo.SumUnitsSold(ctx, merchantID, productIDs, from, to)
}

func (uc *inventoryUseCase) lock(ctx context.Context, key string) (func(), error) {
	if uc.cache == nil {
		return func() {}, nil
	}

	value := uuid.New().String()
	acquired := false
	for i := 0; i < uc.lockTries; i++ {
		ok, err := uc.cache.AcquireLock(ctx, key, value, uc.lockExpiry)
		if err != nil {
			uc.logger.Error("failed to acquire lock redis error", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(uc.lockWait):
		}
	}
	if !acquired {
		return nil, inventory.ErrLockNotAcquired
	}

	return func() {
		if err := uc.cache.ReleaseLock(context.Background(), key, value); err != nil {
			uc.logger.Warn("failed to release lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

// afterChange drops cached lists for the merchant and re-indexes the product.
func (uc *inventoryUseCase) afterChange(ctx context.Context, merchantID string, plan dto.ProductPlan) {
	uc.invalidatePlanCache(ctx, merchantID)
	go uc.syncToSearch(context.Background(), merchantID, plan)
}

func (uc *inventoryUseCase) invalidatePlanCache(ctx context.Context, merchantID string) {
	if uc.cache == nil {
		return
	}
	pattern := fmt.Sprintf("reorder:plans:%s:*", merchantID)
	if err := uc.cache.DeletePattern(ctx, pattern); err != nil {
		uc.logger.Warn("failed to invalidate plan cache", zap.String("merchant_id", merchantID), zap.Error(err))
	}
}

type planDocument struct {
	MerchantID       string         `json:"merchant_id"`
	ProductID        string         `json:"product_id"`
	SKU              string         `json:"sku"`
	ASIN             string         `json:"asin"`
	Name             string         `json:"name"`
	Status           reorder.Status `json:"reorder_status"`
	TotalDaysOfStock *int           `json:"total_days_of_stock"`
	UnitsToOrder     *int           `json:"units_to_order"`
	ReorderDate      string         `json:"reorder_date,omitempty"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (uc *inventoryUseCase) syncToSearch(ctx context.Context, merchantID string, plan dto.ProductPlan) {
	if uc.search == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"merchant_id": { "type": "keyword" },
				"product_id": { "type": "keyword" },
				"sku": { "type": "keyword" },
				"asin": { "type": "keyword" },
				"name": { "type": "text" },
				"reorder_status": { "type": "keyword" },
				"total_days_of_stock": { "type": "integer" },
				"units_to_order": { "type": "integer" },
				"reorder_date": { "type": "date", "format": "yyyy-MM-dd" },
				"updated_at": { "type": "date" }
			}
		}
	}`
	_ = uc.search.CreateIndex(ctx, planIndex, mapping)

	doc := planDocument{
		MerchantID:       merchantID,
		ProductID:        plan.ProductID,
		SKU:              plan.SKU,
		ASIN:             plan.ASIN,
		Name:             plan.Name,
		Status:           plan.Plan.ReorderStatus,
		TotalDaysOfStock: plan.Plan.TotalDaysOfStock,
		UnitsToOrder:     plan.Plan.UnitsToOrder,
		ReorderDate:      plan.Plan.DateString(),
		UpdatedAt:        uc.now(),
	}
	if err := uc.search.Index(ctx, planIndex, plan.ProductID, doc); err != nil {
		uc.logger.Error("failed to index reorder plan", zap.String("product_id", plan.ProductID), zap.Error(err))
	}
}

func (uc *inventoryUseCase) publishAlert(ctx context.Context, merchantID string, plan dto.ProductPlan) {
	if uc.publisher == nil {
		return
	}

	alert := dto.ReorderAlert{
		MerchantID:       merchantID,
		ProductID:        plan.ProductID,
		SKU:              plan.SKU,
		Status:           plan.Plan.ReorderStatus,
		DaysUntilReorder: plan.Plan.DaysUntilReorder,
		UnitsToOrder:     plan.Plan.UnitsToOrder,
		ReorderDate:      plan.Plan.DateString(),
		Recommendation:   plan.Plan.OrderRecommendation,
		CreatedAt:        uc.now(),
	}
	if err := uc.publisher.PublishJSON(ctx, plan.ProductID, alert); err != nil {
		uc.logger.Error("failed to publish reorder alert", zap.String("product_id", plan.ProductID), zap.Error(err))
		return
	}
	uc.logger.Info("Published reorder alert",
		zap.String("merchant_id", merchantID),
		zap.String("sku", plan.SKU),
		zap.String("status", string(plan.Plan.ReorderStatus)),
	)
}

// generateCacheKey scopes the key by merchant and calendar day, since plans
// carry dates relative to today.
func (uc *inventoryUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("reorder:plans:%s:%s:%x", filters.MerchantID, reorder.NewDate(uc.now()), md5.Sum(data)), nil
}

func sortByUrgency(plans []dto.ProductPlan) {
	sort.SliceStable(plans, func(i, j int) bool {
		a, b := plans[i].Plan, plans[j].Plan
		if a.ReorderStatus.Urgency() != b.ReorderStatus.Urgency() {
			return a.ReorderStatus.Urgency() < b.ReorderStatus.Urgency()
		}
		if a.DaysUntilReorder != nil && b.DaysUntilReorder != nil && *a.DaysUntilReorder != *b.DaysUntilReorder {
			return *a.DaysUntilReorder < *b.DaysUntilReorder
		}
		return plans[i].SKU < plans[j].SKU
	})
}

func paginate(plans []dto.ProductPlan, page, pageSize int) []dto.ProductPlan {
	if pageSize <= 0 {
		return plans
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(plans) {
		return []dto.ProductPlan{}
	}
	end := start + pageSize
	if end > len(plans) {
		end = len(plans)
	}
	return plans[start:end]
}

func normalizeChannel(channel string) (string, error) {
	switch strings.ToLower(channel) {
	case "", model.ChannelFBA:
		return model.ChannelFBA, nil
	case model.ChannelFBM:
		return model.ChannelFBM, nil
	}
	return "", inventory.ErrInvalidChannel
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
