package parser

import (
	"regexp"
	"strings"
)

var (
	leadingJunkRe   = regexp.MustCompile(`^[^A-Za-z]+`)
	trailingPriceRe = regexp.MustCompile(`\s+\d+\.\d+\s*$`)
	trailingRatioRe = regexp.MustCompile(`\s+\d+/\d+\s*$`)
	trailingPunctRe = regexp.MustCompile(`[)\]\[(,.:;=\-"'/~«»©—]+\s*$`)
	trailingNoiseRe = regexp.MustCompile(`(?i)\s+(ff|fi|fai|ef|ee|bie|ba|fg|es|jar|br|be|fe|gi|re|sss)$`)
	trailingQtyRe   = regexp.MustCompile(`\s+\d{1,3}$`)
	innerSpaceRe    = regexp.MustCompile(`\s+`)
)

// CleanName normalizes a raw extracted product name: leading codes and
// symbols are removed, trailing OCR artifacts and stray price fragments are
// stripped, whitespace is collapsed and every word is capitalized.
// CleanName is idempotent.
func CleanName(name string) string {
	cleaned := strings.TrimSpace(name)

	cleaned = leadingJunkRe.ReplaceAllString(cleaned, "")

	// Trailing artifacts can stack (a price fragment behind a punctuation
	// run behind a noise suffix), so strip until nothing changes.
	for {
		before := cleaned
		cleaned = trailingPriceRe.ReplaceAllString(cleaned, "")
		cleaned = trailingRatioRe.ReplaceAllString(cleaned, "")
		cleaned = trailingQtyRe.ReplaceAllString(cleaned, "")
		cleaned = trailingPunctRe.ReplaceAllString(cleaned, "")
		cleaned = trailingNoiseRe.ReplaceAllString(cleaned, "")
		cleaned = strings.TrimSpace(cleaned)
		if cleaned == before {
			break
		}
	}

	cleaned = innerSpaceRe.ReplaceAllString(cleaned, " ")

	words := strings.Fields(cleaned)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
