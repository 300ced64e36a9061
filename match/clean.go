package match

import (
	"regexp"
	"strings"
)

// wordEdge matches one character that cannot be part of a word, with
// word defined over Unicode letters and digits. RE2's \b only knows
// ASCII word characters, so suffix boundaries are spelled out to hold
// next to accented words.
const wordEdge = `[^\p{L}\p{N}_]`

// suffixPattern compiles a legal-suffix pattern bounded by non-word
// characters or string edges. The boundary characters are captured so
// replacement can keep them in place.
func suffixPattern(suffix string) *regexp.Regexp {
	return regexp.MustCompile(`(^|` + wordEdge + `)` + suffix + `(` + wordEdge + `|$)`)
}

// legalSuffixes strips common Latin-American legal-entity suffixes from
// lowercased company names. Order matters: longer compound forms come
// before their prefixes, and suffix stripping runs before parenthetical
// and quote removal.
var legalSuffixes = []*regexp.Regexp{
	suffixPattern(`s\.a\.p\.i\. de c\.v\.?`),
	suffixPattern(`s\.a\. de c\.v\.?`),
	suffixPattern(`s\. de r\.l\. de c\.v\.?`),
	suffixPattern(`s\.a\.c\.?`),
	suffixPattern(`s\.a\.?`),
	suffixPattern(`s\.r\.l\.?`),
	suffixPattern(`cia\. ltda\.?`),
	suffixPattern(`ltda\.?`),
	suffixPattern(`sa de cv`),
}

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

var quoteStripper = strings.NewReplacer(`"`, "", `'`, "")

// CleanCompanyName lowercases a company name and strips legal-entity
// suffixes, parenthetical asides, quote characters, and surrounding
// separators. Cleaning an already-cleaned name returns it unchanged.
func CleanCompanyName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	for _, re := range legalSuffixes {
		name = re.ReplaceAllString(name, "$1$2")
	}

	name = parenthetical.ReplaceAllString(name, "")
	name = quoteStripper.Replace(name)
	name = spaceRun.ReplaceAllString(name, " ")

	return strings.Trim(name, ", .")
}
