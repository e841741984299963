package util

import "golang.org/x/exp/constraints"

// Clamp limits value to the closed range [minValue, maxValue]
func Clamp[T constraints.Integer | constraints.Float](value, minValue, maxValue T) T {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}

// Percent returns value as a percentage of maxValue, 0 if maxValue is 0
func Percent(value int, maxValue int) float64 {
	if maxValue == 0 {
		return 0
	}
	return 100.0 * float64(value) / float64(maxValue)
}
