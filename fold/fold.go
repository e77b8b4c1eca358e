// Package fold normalizes and fuzzily matches variable identifiers.
// Table data and formula text are frequently typed by different people,
// so "Toplam Azot ," and "toplam azot" must resolve to the same variable.
package fold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// turkish maps the Turkish letters that do not fold to ASCII under
// Unicode decomposition. Dotless ı in particular has no combining form.
var turkish = strings.NewReplacer(
	"ı", "i", "İ", "i",
	"ğ", "g", "Ğ", "g",
	"ü", "u", "Ü", "u",
	"ş", "s", "Ş", "s",
	"ö", "o", "Ö", "o",
	"ç", "c", "Ç", "c",
)

// Normalize folds an identifier for fuzzy comparison: Turkish letters to
// ASCII, lowercase, combining accents stripped, whitespace collapsed,
// trailing commas removed. Pure; never fails.
func Normalize(name string) string {
	s := turkish.Replace(name)
	s = strings.ToLower(s)
	s = stripAccents(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimRight(s, ",")
	return strings.TrimSpace(s)
}

// stripAccents removes combining marks left over after the Turkish fold,
// so "café" and "cafe" compare equal. The transformer chain is built per
// call: transform.Transformer values carry state and are not safe to share.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
