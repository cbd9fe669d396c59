package utils

import "fmt"

// Format renders *ptr with %v, or "" for nil.
func Format[T any](ptr *T) string {
	if ptr == nil {
		return ""
	}
	return fmt.Sprintf("%v", *ptr)
}
