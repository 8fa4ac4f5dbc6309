// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the charge-batch pipeline.
package types

import "sort"

// Tally maps a normalized three-letter code to its occurrence count.
// Codes are stored uppercase; counts only ever increase during a run.
type Tally map[string]int

// NewTally returns an empty tally.
func NewTally() Tally {
	return make(Tally)
}

// Add increments the count for code by one.
func (t Tally) Add(code string) {
	t[code]++
}

// Merge adds every count from other into t.
func (t Tally) Merge(other Tally) {
	for code, n := range other {
		t[code] += n
	}
}

// Codes returns the distinct codes in alphabetical order.
func (t Tally) Codes() []string {
	codes := make([]string, 0, len(t))
	for code := range t {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ByFrequency returns the distinct codes ordered by descending count,
// ties broken alphabetically.
func (t Tally) ByFrequency() []string {
	codes := t.Codes()
	sort.SliceStable(codes, func(i, j int) bool {
		return t[codes[i]] > t[codes[j]]
	})
	return codes
}

// Total returns the sum of all counts.
func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}
