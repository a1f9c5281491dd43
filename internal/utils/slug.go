package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"
)

// Slugify derives a URL-safe slug from a title: lower-cased, runs of
// non-alphanumeric characters collapsed to a single hyphen, plus a random
// numeric suffix so two articles with the same title never collide.
func Slugify(title string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			hyphen = false
		} else if !hyphen {
			b.WriteByte('-')
			hyphen = true
		}
	}
	stem := strings.Trim(b.String(), "-")
	if stem == "" {
		stem = "article"
	}
	return fmt.Sprintf("%s-%d", stem, rand.Intn(1_000_000_000))
}
