// Package parsing provides text tokenization and normalization shared by the scoring and search packages.
package parsing

import (
	"regexp"
	"strings"
)

// tokenPattern defines a word: lowercase letters, digits and '+', so "c++" survives as one token.
var tokenPattern = regexp.MustCompile(`[a-z0-9+]+`)

// minKeywordLength is the shortest token kept as a job-description keyword.
const minKeywordLength = 4

// Tokenize lowercases text and returns its tokens in order of appearance.
// The result is deterministic and may contain duplicates.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// UniqueTokens returns the distinct tokens of text, keeping first-occurrence order.
func UniqueTokens(text string) []string {
	return dedupe(Tokenize(text), 0)
}

// Keywords returns the deduplicated keyword set of a job description: tokens longer
// than three characters, in first-occurrence order.
func Keywords(text string) []string {
	return dedupe(Tokenize(text), minKeywordLength)
}

func dedupe(tokens []string, minLen int) []string {
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) < minLen {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
