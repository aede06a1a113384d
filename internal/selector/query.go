package selector

// SelectBestMatch returns the candidate matching pred with the highest (desc) or lowest key.
//
// Ties keep catalog order: the earliest matching candidate wins. A nil key returns
// the first match.
func SelectBestMatch[T any](candidates []T, pred func(T) bool, key func(T) int, desc bool) (T, bool) {
	var (
		best    T
		bestKey int
		found   bool
	)

	for _, c := range candidates {
		if pred != nil && !pred(c) {
			continue
		}
		if key == nil {
			return c, true
		}

		k := key(c)
		if !found || (desc && k > bestKey) || (!desc && k < bestKey) {
			best, bestKey, found = c, k, true
		}
	}
	return best, found
}
