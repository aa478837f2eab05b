package record

import "math"

// IntSentinel marks an integer target field as unassigned. Never use a
// pointer or an optional wrapper for target numeric fields (see Design
// Notes on sentinels vs. optional).
const IntSentinel = -1

// FloatSentinel marks a floating-point target field as unassigned.
func FloatSentinel() float64 {
	return math.NaN()
}
