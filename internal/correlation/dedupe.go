package correlation

// CanonicalKey maps an unordered pair of entry ids to a single key, so a
// link A->B and its mirror B->A collapse to the same identity.
func CanonicalKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "::" + b
}
