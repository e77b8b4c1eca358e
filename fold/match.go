package fold

import "strings"

// minOverlap is the token-overlap ratio below which two identifiers are
// considered unrelated.
const minOverlap = 0.6

// Match resolves name against candidates and returns the matching
// candidate in its original spelling. The stages run strictest first:
//
//	exact -> case-insensitive -> normalized -> substring -> token overlap
//
// Later stages are deliberately more permissive fallbacks; reordering them
// changes which variable wins when several are close.
func Match(name string, candidates []string) (string, bool) {
	for _, c := range candidates {
		if c == name {
			return c, true
		}
	}
	for _, c := range candidates {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	n := Normalize(name)
	if n == "" {
		return "", false
	}
	for _, c := range candidates {
		if Normalize(c) == n {
			return c, true
		}
	}
	for _, c := range candidates {
		nc := Normalize(c)
		if nc != "" && (strings.Contains(nc, n) || strings.Contains(n, nc)) {
			return c, true
		}
	}
	best, bestScore := "", 0.0
	for _, c := range candidates {
		if score := TokenOverlap(n, Normalize(c)); score >= minOverlap && score > bestScore {
			best, bestScore = c, score
		}
	}
	if best != "" {
		return best, true
	}
	return "", false
}

// TokenOverlap scores how many normalized tokens two identifiers share,
// as a fraction of the larger token set. Tokens shorter than three runes
// are ignored; they are mostly units and connectives.
func TokenOverlap(a, b string) float64 {
	ta, tb := tokens(a), tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(ta))
	for _, t := range ta {
		seen[t] = true
	}
	shared := 0
	for _, t := range tb {
		if seen[t] {
			shared++
		}
	}
	den := len(ta)
	if len(tb) > den {
		den = len(tb)
	}
	return float64(shared) / float64(den)
}

func tokens(s string) []string {
	var out []string
	for _, f := range strings.Fields(Normalize(s)) {
		if len([]rune(f)) >= 3 {
			out = append(out, f)
		}
	}
	return out
}
