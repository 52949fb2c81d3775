package inventory

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient inventory")
	ErrInvalidSettings   = errors.New("invalid reorder settings")
	ErrInvalidAdjustment = errors.New("invalid stock adjustment")
	ErrInvalidChannel    = errors.New("invalid fulfillment channel, must be 'fba' or 'fbm'")
	ErrLockNotAcquired   = errors.New("system busy, please try again later (lock)")
	ErrDuplicateSale     = errors.New("order line already recorded")
)
