package models

import "math"

const (
	// MaxAmount caps a single ingredient amount read from a record
	MaxAmount = 1_000_000
	// MaxPendingQuantity caps the batches queued for one recipe
	MaxPendingQuantity = 10_000
)

// AddQuantity sums two non-negative quantities, saturating at math.MaxInt
func AddQuantity(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// ScaleQuantity multiplies two non-negative quantities, saturating at
// math.MaxInt
func ScaleQuantity(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}
