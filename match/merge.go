package match

// MergeLinks merges newly found URLs into a previously recorded list.
// Previously recorded URLs keep their order and are never removed; new
// URLs append in discovery order. Deduplication compares exact tokens,
// so a new URL that happens to be a substring of a recorded one is still
// appended. Merging the same found set twice yields the same result as
// merging it once.
func MergeLinks(existing, found []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(found))
	out := make([]string, 0, len(existing)+len(found))

	for _, url := range existing {
		seen[url] = struct{}{}
		out = append(out, url)
	}
	for _, url := range found {
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, url)
	}
	return out
}
