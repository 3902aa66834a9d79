package pure_utils

// Map returns a new slice with the values of src transformed by f. A nil src gives a nil slice.
func Map[T, U any](src []T, f func(T) U) []U {
	if src == nil {
		return nil
	}
	us := make([]U, len(src))
	for i := range src {
		us[i] = f(src[i])
	}
	return us
}
