package cmp

// SliceEq returns true when a and b have the same length
// and each pair of elements at the same index are equal.
func SliceEq[T comparable](a []T, b []T) bool {
	return SliceEqWith(a, b, func(a T, b T) bool { return a == b })
}

// SliceEqWith compares two slices element-wise with eq.
func SliceEqWith[T any, U any](a []T, b []U, eq func(T, U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for nth := range a {
		if !eq(a[nth], b[nth]) {
			return false
		}
	}
	return true
}

// SliceContentEq returns true when a and b hold the same elements,
// ignoring order and multiplicity of duplicates.
func SliceContentEq[T comparable](a []T, b []T) bool {
	inA := map[T]struct{}{}
	for _, v := range a {
		inA[v] = struct{}{}
	}
	inB := map[T]struct{}{}
	for _, v := range b {
		if _, ok := inA[v]; !ok {
			return false
		}
		inB[v] = struct{}{}
	}
	return len(inA) == len(inB)
}
