package cmp

// MapEq returns true when a and b have the same key set
// and equal values for each key.
func MapEq[K comparable, V comparable](a map[K]V, b map[K]V) bool {
	return MapEqWith(a, b, func(a V, b V) bool { return a == b })
}

// MapEqWith compares two maps key-by-key with eq over values.
func MapEqWith[K comparable, V any, W any](a map[K]V, b map[K]W, eq func(V, W) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !eq(va, vb) {
			return false
		}
	}
	return true
}
