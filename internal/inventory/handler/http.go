package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellergenix/inventory-service/internal/auth"
	"github.com/sellergenix/inventory-service/internal/inventory"
	"github.com/sellergenix/inventory-service/internal/reorder"
	"github.com/sellergenix/inventory-service/pkg/api/inventoryv1"
	"github.com/sellergenix/inventory-service/pkg/logger"
	"github.com/sellergenix/inventory-service/pkg/response"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// HTTPHandler is the REST gateway used by the dashboard. It shares request
// mapping and response shapes with the gRPC handler.
type HTTPHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
	now    func() time.Time
}

func NewHTTPHandler(uc inventory.UseCase, log logger.ZapLogger) *HTTPHandler {
	return &HTTPHandler{
		uc:     uc,
		logger: log,
		now:    time.Now,
	}
}

func (h *HTTPHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.POST("/reorder/preview", h.previewPlan)

	merchant := v1.Group("", RequireMerchant())
	{
		merchant.GET("/reorder/plans", h.listPlans)
		merchant.GET("/reorder/plans/export", h.exportPlans)
		merchant.GET("/products/:id/reorder-plan", h.getPlan)
		merchant.PUT("/products/:id/reorder-settings", h.updateSettings)
		merchant.POST("/products/:id/stock-adjustments", h.adjustStock)
		merchant.GET("/products/:id/stock-movements", h.listMovements)
	}
}

// RequireMerchant reads X-Merchant-ID onto the request context.
func RequireMerchant() gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID := c.GetHeader(auth.MerchantHeader)
		if merchantID == "" {
			response.Error(c, response.Unauthorized())
			return
		}
		c.Request = c.Request.WithContext(auth.WithMerchantID(c.Request.Context(), merchantID))
		c.Next()
	}
}

type previewBody struct {
	inventoryv1.Snapshot
	AsOf string `json:"as_of"`
}

func (h *HTTPHandler) previewPlan(c *gin.Context) {
	var body previewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, response.BadRequest(err.Error()))
		return
	}

	input, err := previewInput(&inventoryv1.PreviewReorderPlanRequest{Snapshot: &body.Snapshot, AsOf: body.AsOf})
	if err != nil {
		response.Error(c, apiError(err))
		return
	}

	response.Success(c, mapPlanToAPI(h.uc.PreviewReorderPlan(input)))
}

type listPlansQuery struct {
	Status     string `form:"status"`
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

func (h *HTTPHandler) listPlans(c *gin.Context) {
	var q listPlansQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, response.BadRequest(err.Error()))
		return
	}

	filters, err := planFilters(auth.GetMerchantID(c.Request.Context()), &inventoryv1.ListReorderPlansRequest{
		Status:     q.Status,
		Search:     q.Search,
		ActiveOnly: q.ActiveOnly,
		Page:       q.Page,
		PageSize:   q.PageSize,
	})
	if err != nil {
		response.Error(c, apiError(err))
		return
	}

	plans, total, err := h.uc.ListReorderPlans(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, "failed to list reorder plans", err)
		return
	}

	response.Paged(c, mapProductPlansToAPI(plans), total, filters.Page, filters.PageSize)
}

func (h *HTTPHandler) exportPlans(c *gin.Context) {
	// Buffer so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.uc.ExportReorderPlans(c.Request.Context(), auth.GetMerchantID(c.Request.Context()), &buf); err != nil {
		h.fail(c, "failed to export reorder plans", err)
		return
	}

	filename := fmt.Sprintf("reorder-plans-%s.csv", reorder.NewDate(h.now()))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *HTTPHandler) getPlan(c *gin.Context) {
	if err := checkProductID(c.Param("id")); err != nil {
		response.Error(c, apiError(err))
		return
	}

	p, err := h.uc.GetReorderPlan(c.Request.Context(), auth.GetMerchantID(c.Request.Context()), c.Param("id"))
	if err != nil {
		h.fail(c, "failed to get reorder plan", err)
		return
	}
	response.Success(c, mapProductPlanToAPI(p))
}

type settingsBody struct {
	LeadTimeDays     int              `json:"lead_time_days"`
	SafetyBufferDays int              `json:"safety_buffer_days"`
	ManualDailySales *float64         `json:"manual_daily_sales"`
	UnitCost         *decimal.Decimal `json:"unit_cost"`
}

func (h *HTTPHandler) updateSettings(c *gin.Context) {
	var body settingsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, response.BadRequest(err.Error()))
		return
	}

	req := &inventoryv1.UpdateReorderSettingsRequest{
		ProductID:        c.Param("id"),
		LeadTimeDays:     body.LeadTimeDays,
		SafetyBufferDays: body.SafetyBufferDays,
		ManualDailySales: body.ManualDailySales,
	}
	if body.UnitCost != nil {
		req.UnitCost = body.UnitCost.String()
	}

	input, err := settingsInput(auth.GetMerchantID(c.Request.Context()), req)
	if err != nil {
		response.Error(c, apiError(err))
		return
	}

	p, err := h.uc.UpdateReorderSettings(c.Request.Context(), input)
	if err != nil {
		h.fail(c, "failed to update reorder settings", err)
		return
	}
	response.Success(c, mapProductPlanToAPI(p))
}

type adjustBody struct {
	Channel        string `json:"channel"`
	QuantityChange int    `json:"quantity_change" binding:"required"`
	MovementType   string `json:"movement_type"`
	Reason         string `json:"reason"`
	ReferenceID    string `json:"reference_id"`
	ReferenceType  string `json:"reference_type"`
}

func (h *HTTPHandler) adjustStock(c *gin.Context) {
	var body adjustBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, response.BadRequest(err.Error()))
		return
	}

	input, err := adjustInput(auth.GetMerchantID(c.Request.Context()), &inventoryv1.AdjustStockRequest{
		ProductID:      c.Param("id"),
		Channel:        body.Channel,
		QuantityChange: body.QuantityChange,
		MovementType:   body.MovementType,
		Reason:         body.Reason,
		ReferenceID:    body.ReferenceID,
		ReferenceType:  body.ReferenceType,
		UserID:         c.GetHeader("X-User-ID"),
	})
	if err != nil {
		response.Error(c, apiError(err))
		return
	}

	p, err := h.uc.AdjustStock(c.Request.Context(), input)
	if err != nil {
		h.fail(c, "failed to adjust stock", err)
		return
	}
	response.Success(c, mapProductPlanToAPI(p), http.StatusCreated)
}

type movementsQuery struct {
	Channel      string `form:"channel"`
	MovementType string `form:"movement_type"`
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

func (h *HTTPHandler) listMovements(c *gin.Context) {
	var q movementsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, response.BadRequest(err.Error()))
		return
	}

	filters, err := movementFilters(auth.GetMerchantID(c.Request.Context()), &inventoryv1.ListStockMovementsRequest{
		ProductID:    c.Param("id"),
		Channel:      q.Channel,
		MovementType: q.MovementType,
		StartDate:    q.StartDate,
		EndDate:      q.EndDate,
		Page:         q.Page,
		PageSize:     q.PageSize,
	})
	if err != nil {
		response.Error(c, apiError(err))
		return
	}

	mvs, total, err := h.uc.ListMovements(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, "failed to list stock movements", err)
		return
	}
	response.Paged(c, mapMovementsToAPI(mvs), total, filters.Page, filters.PageSize)
}

func (h *HTTPHandler) fail(c *gin.Context, msg string, err error) {
	apiErr := apiError(err)
	if apiErr.StatusCode == http.StatusInternalServerError {
		h.logger.Error(msg, zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	response.Error(c, apiErr)
}
