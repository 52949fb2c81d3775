package reorder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPolicy(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		p, err := LoadPolicy("")
		require.NoError(t, err)
		assert.Equal(t, DefaultPolicy(), p)
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		p, err := LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultPolicy(), p)
	})

	t.Run("partial file overrides named fields", func(t *testing.T) {
		path := writePolicy(t, "ideal_stock_days: 90\noverstocked_threshold_days: 150\n")

		p, err := LoadPolicy(path)
		require.NoError(t, err)
		assert.Equal(t, 90, p.IdealStockDays)
		assert.Equal(t, 150, p.OverstockedThresholdDays)
		assert.Equal(t, DefaultMinimumSafeStockDays, p.MinimumSafeStockDays)
		assert.Equal(t, DefaultCriticalWindowDays, p.CriticalWindowDays)
	})

	t.Run("inconsistent tiers are rejected", func(t *testing.T) {
		path := writePolicy(t, "ideal_stock_days: 130\n")

		_, err := LoadPolicy(path)
		assert.ErrorIs(t, err, ErrInvalidPolicy)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := writePolicy(t, "ideal_stock_days: [")

		_, err := LoadPolicy(path)
		assert.Error(t, err)
	})
}

func TestPolicyValidate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())
	assert.NoError(t, Policy{}.Validate())

	assert.ErrorIs(t, Policy{IdealStockDays: -1}.Validate(), ErrInvalidPolicy)
	assert.ErrorIs(t, Policy{CriticalWindowDays: 20}.Validate(), ErrInvalidPolicy)
	assert.ErrorIs(t, Policy{MinimumSafeStockDays: 80}.Validate(), ErrInvalidPolicy)
}

func TestPolicyYAMLRoundTrip(t *testing.T) {
	data, err := Policy{IdealStockDays: 80}.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "ideal_stock_days: 80")
	assert.Contains(t, string(data), "warning_window_days: 14")
}

func writePolicy(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
