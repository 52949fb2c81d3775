package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sellergenix/inventory-service/internal/reorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PLANNER_POLICY_FILE", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPlanCmd(t *testing.T) {
	out, err := execute(t, "plan", "--fba", "300", "--daily-sales", "5", "--lead-time", "10", "--buffer", "5", "--as-of", "2026-03-10")
	require.NoError(t, err)

	assert.Regexp(t, `Status:\s+safe\n`, out)
	assert.Contains(t, out, "60 (FBA 60, FBM 0)")
	assert.Contains(t, out, "2026-04-24")
	assert.Contains(t, out, "375 units (80% of ideal)")
	assert.Contains(t, out, "Stock OK. Order 125 units by 2026-04-24.")
}

func TestPlanCmdWithoutSales(t *testing.T) {
	out, err := execute(t, "plan", "--fba", "50", "--fbm", "20")
	require.NoError(t, err)

	assert.Contains(t, out, "unknown")
	assert.Regexp(t, `Reorder date:\s+-\n`, out)
	assert.Contains(t, out, "No sales data available.")
}

func TestPlanCmdJSON(t *testing.T) {
	out, err := execute(t, "plan", "--fba", "100", "--daily-sales", "10", "--lead-time", "30", "--buffer", "14", "--as-of", "2026-03-10", "--json")
	require.NoError(t, err)

	var plan reorder.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, reorder.StatusCritical, plan.ReorderStatus)
	assert.Equal(t, -34, *plan.DaysUntilReorder)
	assert.Equal(t, "2026-02-04", plan.DateString())
	assert.Equal(t, 950, *plan.UnitsToOrder)
}

func TestPlanCmdBadDate(t *testing.T) {
	_, err := execute(t, "plan", "--fba", "1", "--as-of", "03/10/2026")
	assert.Error(t, err)
}

func TestPolicyCmd(t *testing.T) {
	out, err := execute(t, "policy")
	require.NoError(t, err)
	assert.Contains(t, out, "ideal_stock_days: 75")
	assert.Contains(t, out, "overstocked_threshold_days: 120")

	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ideal_stock_days: 90\noverstocked_threshold_days: 150\n"), 0o600))

	out, err = execute(t, "policy", "--policy", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ideal_stock_days: 90")
	assert.Contains(t, out, "overstocked_threshold_days: 150")
	assert.Contains(t, out, "minimum_safe_stock_days: 45")

	require.NoError(t, os.WriteFile(path, []byte("critical_window_days: 30\n"), 0o600))
	_, err = execute(t, "policy", "--policy", path)
	assert.ErrorIs(t, err, reorder.ErrInvalidPolicy)
}

func TestExportRequiresMerchant(t *testing.T) {
	_, err := execute(t, "export")
	assert.Error(t, err)
}
