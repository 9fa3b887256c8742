// Package mapper holds small generic helpers for converting between layers.
package mapper

// MapSlice applies mapFunc to each element. A nil input yields an empty,
// non-nil slice so JSON encodes it as [] rather than null.
func MapSlice[T any, R any](items []T, mapFunc func(T) R) []R {
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, mapFunc(item))
	}
	return result
}

// Filter keeps the elements for which keep returns true.
func Filter[T any](items []T, keep func(T) bool) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}
