// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge classifies input PDFs and assembles the print-ready
// output folder. Single-page documents are combined into one sorted PDF;
// multi-page documents are carried over whole.
package merge

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/charge-batch/pkg/types"
)

// SortRule orders the pages of the combined output.
type SortRule string

const (
	// SortFilename orders pages by source filename, then page number.
	SortFilename SortRule = "filename"

	// SortFirstLine orders pages by their first non-empty text line,
	// case-insensitive.
	SortFirstLine SortRule = "firstline"

	// SortCode puts pages whose code occurs exactly once in the batch
	// first, then the rest, each group ordered by code.
	SortCode SortRule = "code"
)

// GroupRule controls what happens to multi-page inputs.
type GroupRule string

const (
	// GroupSeparate copies each multi-page input into the output folder.
	GroupSeparate GroupRule = "separate"

	// GroupTogether merges all multi-page inputs into one combined file.
	GroupTogether GroupRule = "together"
)

// ParseSort validates a sort rule name from config or flags.
func ParseSort(s string) (SortRule, error) {
	switch SortRule(s) {
	case SortFilename, SortFirstLine, SortCode:
		return SortRule(s), nil
	default:
		return "", fmt.Errorf("unknown sort rule %q (want %q, %q, or %q)",
			s, SortFilename, SortFirstLine, SortCode)
	}
}

// ParseGroup validates a grouping rule name from config or flags.
func ParseGroup(s string) (GroupRule, error) {
	switch GroupRule(s) {
	case GroupSeparate, GroupTogether:
		return GroupRule(s), nil
	default:
		return "", fmt.Errorf("unknown grouping rule %q (want %q or %q)",
			s, GroupSeparate, GroupTogether)
	}
}

// Options configures plan building and execution.
type Options struct {
	Sort         SortRule
	Group        GroupRule
	CombinedName string

	// MultiName is the output filename under GroupTogether.
	MultiName string
}

// PageMeta describes one page of an input for planning purposes.
type PageMeta struct {
	// Number is the 1-based page number within the source file.
	Number int

	// FirstLine is the first non-empty text line of the page.
	FirstLine string

	// Code is the page's extracted billing code, "" if none.
	Code string
}

// Input is one classified source PDF.
type Input struct {
	Path      string
	PageCount int
	Pages     []PageMeta
}

// PageRef identifies a single page of a source file, with the sort keys
// computed during planning.
type PageRef struct {
	Source string
	Page   int

	group int
	key   string
}

// Plan is the work order for building the output folder.
type Plan struct {
	// Combined lists the pages of the merged single-page output, in
	// final order. Empty when no single-page inputs exist.
	Combined []PageRef

	// Copies lists multi-page inputs carried into the output folder.
	Copies []string
}

// IsMultiPage reports whether an input is treated as multi-page: either
// by actual page count or by the legacy "multi-page" filename marker.
func IsMultiPage(path string, pageCount int) bool {
	if pageCount > 1 {
		return true
	}
	return strings.Contains(strings.ToLower(filepath.Base(path)), "multi-page")
}

// BuildPlan classifies inputs and orders the combined pages per opts.
// Inputs are expected in lexicographic filename order; the plan preserves
// that order wherever the sort rule does not dictate otherwise.
func BuildPlan(inputs []Input, tally types.Tally, opts Options) Plan {
	var plan Plan

	for _, in := range inputs {
		if IsMultiPage(in.Path, in.PageCount) {
			plan.Copies = append(plan.Copies, in.Path)
			continue
		}
		for _, pg := range in.Pages {
			plan.Combined = append(plan.Combined, PageRef{
				Source: in.Path,
				Page:   pg.Number,
				group:  sortGroup(pg, tally, opts.Sort),
				key:    sortKey(in.Path, pg, opts.Sort),
			})
		}
	}

	sort.SliceStable(plan.Combined, func(i, j int) bool {
		a, b := plan.Combined[i], plan.Combined[j]
		if a.group != b.group {
			return a.group < b.group
		}
		return a.key < b.key
	})

	return plan
}

// sortGroup splits pages into a leading and trailing group. Only the
// code rule uses it: codes seen exactly once in the batch print first.
func sortGroup(pg PageMeta, tally types.Tally, rule SortRule) int {
	if rule != SortCode {
		return 0
	}
	if pg.Code != "" && tally[pg.Code] == 1 {
		return 0
	}
	return 1
}

func sortKey(path string, pg PageMeta, rule SortRule) string {
	switch rule {
	case SortFirstLine:
		return strings.ToLower(pg.FirstLine)
	case SortCode:
		return strings.ToLower(pg.Code)
	default:
		return fmt.Sprintf("%s\x00%06d", strings.ToLower(filepath.Base(path)), pg.Number)
	}
}
