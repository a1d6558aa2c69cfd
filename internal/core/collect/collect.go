// Package collect accumulates deduplicated trend candidates under a cap.
package collect

// Add returns pool extended with the candidates it does not already hold,
// stopping once the result reaches limit. Dedup is exact and case-sensitive.
// Empty strings are never added. The result never exceeds limit and holds no
// duplicates, even when pool itself does. The input slices are not modified.
func Add(pool, candidates []string, limit int) []string {
	limit = max(limit, 0)
	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)

	for _, batch := range [][]string{pool, candidates} {
		for _, c := range batch {
			if len(out) >= limit {
				return out
			}
			if c == "" {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether pool holds s exactly.
func Contains(pool []string, s string) bool {
	for _, p := range pool {
		if p == s {
			return true
		}
	}
	return false
}
