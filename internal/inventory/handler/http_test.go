package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellergenix/inventory-service/internal/inventory"
	"github.com/sellergenix/inventory-service/internal/inventory/dto"
	"github.com/sellergenix/inventory-service/internal/model"
	"github.com/sellergenix/inventory-service/internal/reorder"
	"github.com/sellergenix/inventory-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(uc inventory.UseCase) *gin.Engine {
	r := gin.New()
	h := NewHTTPHandler(uc, logger.NewNop())
	h.now = func() time.Time { return asOf }
	h.RegisterRoutes(r)
	return r
}

func do(r http.Handler, method, path, body string, merchant bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if merchant {
		req.Header.Set("X-Merchant-ID", "m1")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Total   int             `json:"total"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestHealth(t *testing.T) {
	w := do(newTestRouter(&fakeUseCase{}), http.MethodGet, "/api/health", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestPreviewEndpoint(t *testing.T) {
	r := newTestRouter(&fakeUseCase{})

	w := do(r, http.MethodPost, "/api/v1/reorder/preview",
		`{"fba_stock":100,"fbm_stock":0,"avg_daily_sales":10,"lead_time_days":30,"safety_buffer_days":14}`, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	assert.True(t, env.Success)
	var plan struct {
		Status           string `json:"reorder_status"`
		DaysUntilReorder int    `json:"days_until_reorder"`
		ReorderDate      string `json:"reorder_date"`
		UnitsToOrder     int    `json:"units_to_order"`
		Recommendation   string `json:"order_recommendation"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &plan))
	assert.Equal(t, "critical", plan.Status)
	assert.Equal(t, -34, plan.DaysUntilReorder)
	assert.Equal(t, "2026-02-04", plan.ReorderDate)
	assert.Equal(t, 950, plan.UnitsToOrder)
	assert.Equal(t, "ORDER NOW! Reorder point passed 34 days ago. Order 950 units immediately.", plan.Recommendation)

	w = do(r, http.MethodPost, "/api/v1/reorder/preview", `{"fba_stock":"lots"}`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", decode(t, w).Code)

	w = do(r, http.MethodPost, "/api/v1/reorder/preview", `{"fba_stock":1,"as_of":"tomorrow"}`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMerchantHeaderRequired(t *testing.T) {
	w := do(newTestRouter(&fakeUseCase{plan: samplePlan()}), http.MethodGet, "/api/v1/products/"+productID+"/reorder-plan", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "UNAUTHORIZED", env.Code)
}

func TestGetPlanEndpoint(t *testing.T) {
	uc := &fakeUseCase{plan: samplePlan()}
	w := do(newTestRouter(uc), http.MethodGet, "/api/v1/products/"+productID+"/reorder-plan", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "m1", uc.lastMerchant)
	assert.Equal(t, productID, uc.lastProduct)

	var got struct {
		SKU  string `json:"sku"`
		Cost string `json:"estimated_order_cost"`
		Plan struct {
			Status string `json:"reorder_status"`
		} `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.Equal(t, "MUG-BLUE", got.SKU)
	assert.Equal(t, "312.50", got.Cost)
	assert.Equal(t, "safe", got.Plan.Status)
}

func TestMalformedProductID(t *testing.T) {
	uc := &fakeUseCase{plan: samplePlan()}
	r := newTestRouter(uc)

	requests := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/v1/products/abc/reorder-plan", ""},
		{http.MethodPut, "/api/v1/products/abc/reorder-settings", `{"lead_time_days":5}`},
		{http.MethodPost, "/api/v1/products/abc/stock-adjustments", `{"quantity_change":1}`},
		{http.MethodGet, "/api/v1/products/abc/stock-movements", ""},
	}
	for _, tc := range requests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := do(r, tc.method, tc.path, tc.body, true)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "BAD_REQUEST", decode(t, w).Code)
		})
	}

	assert.Empty(t, uc.lastProduct)
	assert.Nil(t, uc.lastSettings)
	assert.Nil(t, uc.lastAdjust)
	assert.Nil(t, uc.lastMoves)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{inventory.ErrProductNotFound, http.StatusNotFound, "RESOURCE_NOT_FOUND"},
		{inventory.ErrInvalidChannel, http.StatusBadRequest, "BAD_REQUEST"},
		{inventory.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{inventory.ErrLockNotAcquired, http.StatusServiceUnavailable, "BUSY"},
		{errors.New("dial tcp: refused"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			w := do(newTestRouter(&fakeUseCase{err: tc.err}), http.MethodPost, "/api/v1/products/"+productID+"/stock-adjustments",
				`{"quantity_change":-5}`, true)
			assert.Equal(t, tc.status, w.Code)

			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tc.code, env.Code)
			assert.NotContains(t, env.Error, "dial tcp")
		})
	}
}

func TestListPlansEndpoint(t *testing.T) {
	uc := &fakeUseCase{plans: []dto.ProductPlan{*samplePlan()}, total: 3}
	r := newTestRouter(uc)

	w := do(r, http.MethodGet, "/api/v1/reorder/plans?status=warning&search=mug&page=2&page_size=1&active_only=true", "", true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, reorder.StatusWarning, uc.lastFilters.Status)
	assert.Equal(t, "mug", uc.lastFilters.SearchQuery)
	assert.Equal(t, 2, uc.lastFilters.Page)
	assert.Equal(t, 1, uc.lastFilters.PageSize)
	assert.True(t, uc.lastFilters.ActiveOnly)
	assert.Equal(t, 3, decode(t, w).Total)

	w = do(r, http.MethodGet, "/api/v1/reorder/plans?status=bogus", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportEndpoint(t *testing.T) {
	uc := &fakeUseCase{csv: "sku,name\nMUG-BLUE,Blue mug\n"}
	w := do(newTestRouter(uc), http.MethodGet, "/api/v1/reorder/plans/export", "", true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="reorder-plans-2026-03-10.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, uc.csv, w.Body.String())
	assert.Equal(t, "m1", uc.lastMerchant)

	w = do(newTestRouter(&fakeUseCase{err: errors.New("boom")}), http.MethodGet, "/api/v1/reorder/plans/export", "", true)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL", decode(t, w).Code)
}

func TestUpdateSettingsEndpoint(t *testing.T) {
	uc := &fakeUseCase{plan: samplePlan()}
	r := newTestRouter(uc)

	w := do(r, http.MethodPut, "/api/v1/products/"+productID+"/reorder-settings",
		`{"lead_time_days":21,"safety_buffer_days":7,"manual_daily_sales":4.5,"unit_cost":12.99}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, productID, uc.lastSettings.ProductID)
	assert.Equal(t, 21, uc.lastSettings.LeadTimeDays)
	assert.Equal(t, 7, uc.lastSettings.SafetyBufferDays)
	assert.Equal(t, 4.5, *uc.lastSettings.ManualDailySales)
	assert.Equal(t, "12.99", uc.lastSettings.UnitCost.String())

	w = do(r, http.MethodPut, "/api/v1/products/"+productID+"/reorder-settings", `{"lead_time_days":5,"unit_cost":"3.50"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3.5", uc.lastSettings.UnitCost.String())
	assert.Nil(t, uc.lastSettings.ManualDailySales)
}

func TestAdjustStockEndpoint(t *testing.T) {
	uc := &fakeUseCase{plan: samplePlan()}
	r := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+productID+"/stock-adjustments",
		strings.NewReader(`{"channel":"fba","quantity_change":40,"movement_type":"inbound","reason":"PO-12 received"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Merchant-ID", "m1")
	req.Header.Set("X-User-ID", "user-3")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 40, uc.lastAdjust.QuantityChange)
	assert.Equal(t, model.MovementInbound, uc.lastAdjust.MovementType)
	assert.Equal(t, "user-3", uc.lastAdjust.UserID)
	assert.Equal(t, "m1", uc.lastAdjust.MerchantID)

	w = do(r, http.MethodPost, "/api/v1/products/"+productID+"/stock-adjustments", `{"reason":"nothing"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	uc.lastAdjust = nil
	w = do(r, http.MethodPost, "/api/v1/products/"+productID+"/stock-adjustments", `{"quantity_change":-2,"movement_type":"sale"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, uc.lastAdjust)
}

func TestListMovementsEndpoint(t *testing.T) {
	uc := &fakeUseCase{movements: []model.StockMovement{{ID: "mv1", ProductID: productID, Channel: model.ChannelFBM, CreatedAt: asOf}}}
	w := do(newTestRouter(uc), http.MethodGet, "/api/v1/products/"+productID+"/stock-movements?channel=FBM&start_date=2026-03-01", "", true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, productID, uc.lastMoves.ProductID)
	assert.Equal(t, model.ChannelFBM, uc.lastMoves.Channel)
	require.NotNil(t, uc.lastMoves.StartDate)
	assert.Nil(t, uc.lastMoves.EndDate)

	env := decode(t, w)
	assert.Equal(t, 1, env.Total)
	assert.Contains(t, string(env.Data), `"channel":"fbm"`)
}
