// Package keyword tokenizes post text into keywords for subscription
// matching. The tokenizer is deliberately simple: unicode word splitting,
// lowercasing, and de-duplication.
package keyword

import (
	"strings"
	"unicode"
)

// minKeywordLength filters out single-character noise tokens.
const minKeywordLength = 2

// Extract returns the distinct lowercase word tokens found in the given
// texts, in first-seen order.
func Extract(texts ...string) []string {
	seen := make(map[string]struct{})
	var keywords []string

	for _, text := range texts {
		tokens := strings.FieldsFunc(text, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		for _, token := range tokens {
			token = strings.ToLower(token)
			if len([]rune(token)) < minKeywordLength {
				continue
			}
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			keywords = append(keywords, token)
		}
	}

	return keywords
}
