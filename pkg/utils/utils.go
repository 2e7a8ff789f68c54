package utils

// Contains returns true if elems contains v
func Contains[T comparable](elems []T, v T) bool {
	for _, s := range elems {
		if v == s {
			return true
		}
	}
	return false
}

// Ptr converts any value to a pointer to that value
func Ptr[T any](item T) *T {
	return &item
}
