// Package match implements the entity-matching core: an all-pairs
// whole-word search between reference-table entity names and fetched
// citation content, folding matches into each row's accumulated links.
package match

import (
	"regexp"

	"github.com/seaward/citetrack"
)

// NormalizeFunc rewrites an entity name before matching.
type NormalizeFunc func(string) string

// Result summarizes one table scan.
type Result struct {
	Rows    int // rows scanned
	Skipped int // rows skipped for empty names
	Matched int // rows that gained at least one new link
	Links   int // new links recorded across the table
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithNormalizer sets a name normalizer applied before matching.
// Used by the plants table to strip legal-entity suffixes.
func WithNormalizer(fn NormalizeFunc) Option {
	return func(m *Matcher) {
		m.normalize = fn
	}
}

// WithAliases sets alternative search terms per entity name. A citation
// matches the entity if the name or any alias occurs as a whole word.
// Aliases are keyed by the raw table name, before normalization.
func WithAliases(aliases map[string][]string) Option {
	return func(m *Matcher) {
		m.aliases = aliases
	}
}

// Matcher scans citation content for whole-word occurrences of entity
// names. The zero configuration matches names verbatim.
type Matcher struct {
	normalize NormalizeFunc
	aliases   map[string][]string
}

// New creates a Matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MatchTable scans every citation for each entity in the table and merges
// the matching citation URLs into the table's links column. Rows with
// empty names are skipped entirely. Citations whose content is a
// fetch-error marker contribute no matches. The scan is O(rows ×
// citations × content length), acceptable because both dimensions stay
// in the tens to low thousands.
func (m *Matcher) MatchTable(table *citetrack.Table, citations []*citetrack.Citation) (*Result, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}
	for i := 0; i < table.Len(); i++ {
		res.Rows++

		terms := m.terms(table.Name(i))
		if len(terms) == 0 {
			res.Skipped++
			continue
		}

		patterns := make([]*regexp.Regexp, len(terms))
		for j, term := range terms {
			patterns[j] = WholeWord(term)
		}

		var found []string
		for _, citation := range citations {
			if citation.Failed() {
				continue
			}
			for _, pattern := range patterns {
				if pattern.MatchString(citation.Content) {
					found = append(found, citation.URL)
					break
				}
			}
		}
		if len(found) == 0 {
			continue
		}

		existing := table.Links(i)
		merged := MergeLinks(existing, found)
		if added := len(merged) - len(existing); added > 0 {
			res.Matched++
			res.Links += added
		}
		table.SetLinks(i, merged)
	}

	return res, nil
}

// terms returns the search terms for a raw table name: the (optionally
// normalized) name plus any configured aliases.
func (m *Matcher) terms(raw string) []string {
	name := raw
	if m.normalize != nil {
		name = m.normalize(name)
	}

	var terms []string
	if name != "" {
		terms = append(terms, name)
	}
	for _, alias := range m.aliases[raw] {
		if alias != "" {
			terms = append(terms, alias)
		}
	}
	return terms
}

// WholeWord compiles a case-insensitive pattern matching name as a whole
// word: bounded by non-word characters or string edges on both sides.
// The boundaries are spelled out with Unicode classes because \b in RE2
// only recognizes ASCII word characters, so names that start or end with
// an accented letter would never match at a \b edge.
func WholeWord(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(name) + `(?:[^\p{L}\p{N}_]|$)`)
}
