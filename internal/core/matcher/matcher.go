package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Score levels.
const (
	ScoreExact      = 100
	ScorePrefix     = 80
	ScoreWordPrefix = 70
	ScoreNone       = 0

	cjkSubstringBase  = 65
	cjkSubstringFloor = 30
	substringBase     = 60
	substringFloor    = 10

	// minSubstringRunes is the shortest non-CJK query allowed to match mid-name.
	minSubstringRunes = 3
)

// fold normalizes s for comparison. A cases.Caser is not safe for concurrent use,
// so one is made per call.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// collapse trims s and joins its whitespace-separated fields with single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsCJK reports whether s contains any Han codepoint.
func IsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// Matches reports whether name is a candidate for query.
func Matches(name, query string) bool {
	n, q := fold(name), fold(query)
	if q == "" {
		return false
	}
	if n == q || strings.HasPrefix(n, q) {
		return true
	}

	cn, cq := collapse(n), collapse(q)
	if cq == "" {
		return false
	}
	if cn == cq || strings.HasPrefix(cn, cq) {
		return true
	}
	if hasWordPrefix(n, q) {
		return true
	}

	if IsCJK(q) {
		return strings.Contains(n, q)
	}
	return utf8.RuneCountInString(q) >= minSubstringRunes && strings.Contains(n, q)
}

// Score rates name against query in [0,100].
func Score(name, query string) int {
	n, q := fold(name), fold(query)
	if q == "" {
		return ScoreNone
	}
	cn, cq := collapse(n), collapse(q)
	if n == q || (cq != "" && cn == cq) {
		return ScoreExact
	}
	if strings.HasPrefix(n, q) || (cq != "" && strings.HasPrefix(cn, cq)) {
		return ScorePrefix
	}
	if hasWordPrefix(n, q) {
		return ScoreWordPrefix
	}

	idx := strings.Index(n, q)
	if idx < 0 {
		return ScoreNone
	}
	d := utf8.RuneCountInString(n[:idx])
	if IsCJK(q) {
		return max(cjkSubstringFloor, cjkSubstringBase-d)
	}
	return max(substringFloor, substringBase-2*d)
}

// BestScore returns the highest Score of query over names.
func BestScore(query string, names ...string) int {
	best := ScoreNone
	for _, n := range names {
		if s := Score(n, query); s > best {
			best = s
		}
	}
	return best
}

// MatchesAny reports whether any of names matches query.
func MatchesAny(query string, names ...string) bool {
	for _, n := range names {
		if Matches(n, query) {
			return true
		}
	}
	return false
}

// hasWordPrefix reports whether some whitespace-delimited word of name starts with query.
func hasWordPrefix(name, query string) bool {
	q := collapse(query)
	if q == "" {
		return false
	}
	words := strings.Fields(name)
	for i := range words {
		if strings.HasPrefix(strings.Join(words[i:], " "), q) {
			return true
		}
	}
	return false
}
