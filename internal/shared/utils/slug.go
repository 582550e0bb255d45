package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	multiHyphen  = regexp.MustCompile(`-+`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// GenerateSlug: "Nguyễn Nhật Ánh" → "nguyen-nhat-anh"
func GenerateSlug(input string) string {
	lower := strings.ToLower(RemoveDiacritics(input))
	hyphenated := strings.Join(strings.Fields(lower), "-")
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")
	normalized := multiHyphen.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}

// IsValidSlug reports whether s is lowercase ASCII words joined by single hyphens.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// RemoveDiacritics strips combining marks after NFD decomposition.
// đ/Đ are not decomposable and are mapped explicitly.
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		out = input
	}
	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
}
