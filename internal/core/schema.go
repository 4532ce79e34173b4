package core

// Equal reports whether a and b have the same column names in the same
// order. Comparison is exact: no case folding, no trimming.
func Equal(a, b Header) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
