package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeLanguageCode validates an original-language filter and returns
// the lowercase ISO 639-1 code the catalog expects. Region subtags are
// dropped ("pt-BR" -> "pt").
func NormalizeLanguageCode(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, confidence := tag.Base()
	if confidence != language.Exact {
		return "", false
	}
	iso := base.String()
	if len(iso) != 2 {
		return "", false
	}
	return iso, true
}

// FoldText lowercases s, strips diacritics and collapses whitespace.
// Used for free-text mood input before it is matched or sent upstream.
func FoldText(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
