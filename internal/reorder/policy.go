package reorder

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy holds the thresholds the planner classifies against. A zero field
// takes its default, so Policy{} behaves like DefaultPolicy().
type Policy struct {
	// IdealStockDays is the target cover, 2.5 months of sales.
	IdealStockDays int `yaml:"ideal_stock_days" json:"ideal_stock_days"`
	// MinimumSafeStockDays is the cover below which stock is flagged even when
	// the reorder date is still far away.
	MinimumSafeStockDays int `yaml:"minimum_safe_stock_days" json:"minimum_safe_stock_days"`
	// OverstockedThresholdDays marks cover that is too high, 4 months.
	OverstockedThresholdDays int `yaml:"overstocked_threshold_days" json:"overstocked_threshold_days"`
	// CriticalWindowDays and WarningWindowDays bound daysUntilReorder for the
	// critical and warning tiers.
	CriticalWindowDays int `yaml:"critical_window_days" json:"critical_window_days"`
	WarningWindowDays  int `yaml:"warning_window_days" json:"warning_window_days"`
}

const (
	DefaultIdealStockDays           = 75
	DefaultMinimumSafeStockDays     = 45
	DefaultOverstockedThresholdDays = 120
	DefaultCriticalWindowDays       = 7
	DefaultWarningWindowDays        = 14
)

var ErrInvalidPolicy = errors.New("invalid reorder policy")

func DefaultPolicy() Policy {
	return Policy{
		IdealStockDays:           DefaultIdealStockDays,
		MinimumSafeStockDays:     DefaultMinimumSafeStockDays,
		OverstockedThresholdDays: DefaultOverstockedThresholdDays,
		CriticalWindowDays:       DefaultCriticalWindowDays,
		WarningWindowDays:        DefaultWarningWindowDays,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()
	if p.IdealStockDays <= 0 {
		p.IdealStockDays = d.IdealStockDays
	}
	if p.MinimumSafeStockDays <= 0 {
		p.MinimumSafeStockDays = d.MinimumSafeStockDays
	}
	if p.OverstockedThresholdDays <= 0 {
		p.OverstockedThresholdDays = d.OverstockedThresholdDays
	}
	if p.CriticalWindowDays <= 0 {
		p.CriticalWindowDays = d.CriticalWindowDays
	}
	if p.WarningWindowDays <= 0 {
		p.WarningWindowDays = d.WarningWindowDays
	}
	return p
}

// Validate checks that the tiers nest: critical window inside the warning
// window, and minimum <= ideal < overstocked.
func (p Policy) Validate() error {
	if p.IdealStockDays < 0 || p.MinimumSafeStockDays < 0 || p.OverstockedThresholdDays < 0 ||
		p.CriticalWindowDays < 0 || p.WarningWindowDays < 0 {
		return fmt.Errorf("%w: thresholds must not be negative", ErrInvalidPolicy)
	}

	n := p.normalized()
	if n.CriticalWindowDays > n.WarningWindowDays {
		return fmt.Errorf("%w: critical window (%d) exceeds warning window (%d)",
			ErrInvalidPolicy, n.CriticalWindowDays, n.WarningWindowDays)
	}
	if n.MinimumSafeStockDays > n.IdealStockDays {
		return fmt.Errorf("%w: minimum safe stock (%d days) exceeds ideal stock (%d days)",
			ErrInvalidPolicy, n.MinimumSafeStockDays, n.IdealStockDays)
	}
	if n.IdealStockDays >= n.OverstockedThresholdDays {
		return fmt.Errorf("%w: ideal stock (%d days) must be below the overstocked threshold (%d days)",
			ErrInvalidPolicy, n.IdealStockDays, n.OverstockedThresholdDays)
	}
	return nil
}

// LoadPolicy reads a YAML policy file on top of the defaults. An empty path or
// a missing file yields DefaultPolicy.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return policy, nil
		}
		return Policy{}, fmt.Errorf("read policy file: %w", err)
	}

	if err := yaml.Unmarshal(data, &policy); err != nil {
		return Policy{}, fmt.Errorf("parse policy file %s: %w", path, err)
	}
	if err := policy.Validate(); err != nil {
		return Policy{}, err
	}
	return policy.normalized(), nil
}

func (p Policy) YAML() ([]byte, error) {
	return yaml.Marshal(p.normalized())
}
