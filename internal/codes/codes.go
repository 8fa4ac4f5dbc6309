// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package codes recognizes three-letter billing codes in extracted page
// text and accumulates them into a tally.
//
// Two recognition rules are supported. The "word" rule scans every line
// for tokens of exactly three uppercase ASCII letters bounded by
// non-letters or line edges; uppercase is required so ordinary words
// ("the", "and") are not tallied. The "stamp" rule examines only the
// last non-empty line of a page and expects the billing stamp layout
// `XXX M/D/YY CCCC` (code, date, four-letter clerk initials); there the
// code may contain digits. Matches are normalized to uppercase.
package codes

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/charge-batch/pkg/types"
)

// Rule selects a code recognition rule.
type Rule string

const (
	// RuleWord matches isolated three-letter uppercase tokens anywhere on a page.
	RuleWord Rule = "word"

	// RuleStamp matches the billing stamp on the last line of a page.
	RuleStamp Rule = "stamp"
)

// ParseRule validates a rule name from config or flags.
func ParseRule(s string) (Rule, error) {
	switch Rule(s) {
	case RuleWord, RuleStamp:
		return Rule(s), nil
	default:
		return "", fmt.Errorf("unknown code rule %q (want %q or %q)", s, RuleWord, RuleStamp)
	}
}

// stampPattern is the billing stamp layout: code, date, clerk initials.
var stampPattern = regexp.MustCompile(`^([A-Za-z0-9]{3})\s+\d{1,2}/\d{1,2}/\d{2,4}\s+[A-Za-z]{4}$`)

// Extractor scans page text for codes under a fixed rule.
type Extractor struct {
	rule Rule
}

// NewExtractor returns an extractor bound to rule.
func NewExtractor(rule Rule) *Extractor {
	return &Extractor{rule: rule}
}

// Rule returns the rule the extractor was built with.
func (e *Extractor) Rule() Rule {
	return e.rule
}

// FromLines returns the codes found in one page's lines, uppercased, in
// order of appearance.
func (e *Extractor) FromLines(lines []string) []string {
	if e.rule == RuleStamp {
		return stampCode(lines)
	}
	var found []string
	for _, line := range lines {
		found = append(found, wordCodes(line)...)
	}
	return found
}

// Count accumulates the page's codes into tally and returns how many
// matches were added.
func (e *Extractor) Count(tally types.Tally, lines []string) int {
	found := e.FromLines(lines)
	for _, code := range found {
		tally.Add(code)
	}
	return len(found)
}

// wordCodes finds isolated uppercase three-letter tokens in line.
// A token is a maximal run of ASCII letters; only runs of exactly three
// uppercase letters qualify.
func wordCodes(line string) []string {
	var found []string
	start := -1
	upper := true
	for i := 0; i <= len(line); i++ {
		if i < len(line) && isLetter(line[i]) {
			if start < 0 {
				start = i
				upper = true
			}
			if line[i] < 'A' || line[i] > 'Z' {
				upper = false
			}
			continue
		}
		if start >= 0 && upper && i-start == 3 {
			found = append(found, line[start:i])
		}
		start = -1
	}
	return found
}

// stampCode matches the last non-empty line against the stamp layout.
func stampCode(lines []string) []string {
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if m := stampPattern.FindStringSubmatch(line); m != nil {
			return []string{strings.ToUpper(m[1])}
		}
		return nil
	}
	return nil
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
