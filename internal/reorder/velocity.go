package reorder

// DefaultSalesWindowDays is the trailing window average daily sales is taken over.
const DefaultSalesWindowDays = 30

// AverageDailySales is unitsSold spread over windowDays. It returns nil when
// there is nothing to average, which the planner reports as unknown.
func AverageDailySales(unitsSold, windowDays int) *float64 {
	if windowDays <= 0 || unitsSold <= 0 {
		return nil
	}
	avg := float64(unitsSold) / float64(windowDays)
	return &avg
}

// ResolveDailySales prefers a positive figure the seller entered by hand over
// the computed trailing average.
func ResolveDailySales(manual, computed *float64) *float64 {
	if manual != nil && *manual > 0 {
		v := *manual
		return &v
	}
	if computed != nil && *computed > 0 {
		v := *computed
		return &v
	}
	return nil
}
