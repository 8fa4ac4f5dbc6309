// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"testing"

	"github.com/pdiddy/charge-batch/pkg/types"
)

func single(path, firstLine, code string) Input {
	return Input{
		Path:      path,
		PageCount: 1,
		Pages:     []PageMeta{{Number: 1, FirstLine: firstLine, Code: code}},
	}
}

func combinedOrder(p Plan) []string {
	var order []string
	for _, ref := range p.Combined {
		order = append(order, ref.Source)
	}
	return order
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestIsMultiPage(t *testing.T) {
	tests := []struct {
		path  string
		pages int
		want  bool
	}{
		{"invoice.pdf", 1, false},
		{"invoice.pdf", 2, true},
		{"report multi-page.pdf", 1, true},
		{"Report MULTI-PAGE scan.pdf", 1, true},
		{"multipage.pdf", 1, false},
	}
	for _, tt := range tests {
		if got := IsMultiPage(tt.path, tt.pages); got != tt.want {
			t.Errorf("IsMultiPage(%q, %d) = %v, want %v", tt.path, tt.pages, got, tt.want)
		}
	}
}

func TestBuildPlanFilenameSort(t *testing.T) {
	inputs := []Input{
		single("b.pdf", "Baker", "BBB"),
		single("a.pdf", "Adams", "AAA"),
		single("c.pdf", "Clark", "CCC"),
	}

	plan := BuildPlan(inputs, types.NewTally(), Options{Sort: SortFilename})

	want := []string{"a.pdf", "b.pdf", "c.pdf"}
	if got := combinedOrder(plan); !equalStrings(got, want) {
		t.Errorf("combined order = %v, want %v", got, want)
	}
	if len(plan.Copies) != 0 {
		t.Errorf("copies = %v, want none", plan.Copies)
	}
}

func TestBuildPlanFirstLineSort(t *testing.T) {
	inputs := []Input{
		single("a.pdf", "zimmer, paul", "ZZZ"),
		single("b.pdf", "Adams, Jane", "AAA"),
		single("c.pdf", "miller, kim", "MMM"),
	}

	plan := BuildPlan(inputs, types.NewTally(), Options{Sort: SortFirstLine})

	// Case-insensitive by first line: Adams, miller, zimmer.
	want := []string{"b.pdf", "c.pdf", "a.pdf"}
	if got := combinedOrder(plan); !equalStrings(got, want) {
		t.Errorf("combined order = %v, want %v", got, want)
	}
}

func TestBuildPlanCodeSort(t *testing.T) {
	// XYZ occurs once in the batch, ABC twice, one page has no code.
	tally := types.Tally{"XYZ": 1, "ABC": 2}
	inputs := []Input{
		single("a.pdf", "", "ABC"),
		single("b.pdf", "", "XYZ"),
		single("c.pdf", "", "ABC"),
		single("d.pdf", "", ""),
	}

	plan := BuildPlan(inputs, tally, Options{Sort: SortCode})

	// Single-occurrence codes lead; codeless pages and repeated codes
	// follow, ordered by code with "" first.
	want := []string{"b.pdf", "d.pdf", "a.pdf", "c.pdf"}
	if got := combinedOrder(plan); !equalStrings(got, want) {
		t.Errorf("combined order = %v, want %v", got, want)
	}
}

func TestBuildPlanClassifiesMultiPage(t *testing.T) {
	inputs := []Input{
		single("a.pdf", "Adams", "AAA"),
		{
			Path:      "big multi-page.pdf",
			PageCount: 1,
			Pages:     []PageMeta{{Number: 1}},
		},
		{
			Path:      "scan.pdf",
			PageCount: 3,
			Pages: []PageMeta{
				{Number: 1}, {Number: 2}, {Number: 3},
			},
		},
	}

	plan := BuildPlan(inputs, types.NewTally(), Options{Sort: SortFilename})

	if len(plan.Combined) != 1 || plan.Combined[0].Source != "a.pdf" {
		t.Errorf("combined = %v, want just a.pdf", plan.Combined)
	}
	want := []string{"big multi-page.pdf", "scan.pdf"}
	if !equalStrings(plan.Copies, want) {
		t.Errorf("copies = %v, want %v", plan.Copies, want)
	}
}

func TestBuildPlanStableWithinEqualKeys(t *testing.T) {
	// Equal sort keys keep input (filename) order.
	tally := types.Tally{"ABC": 3}
	inputs := []Input{
		single("a.pdf", "same", "ABC"),
		single("b.pdf", "same", "ABC"),
		single("c.pdf", "same", "ABC"),
	}

	for _, rule := range []SortRule{SortFirstLine, SortCode} {
		plan := BuildPlan(inputs, tally, Options{Sort: rule})
		want := []string{"a.pdf", "b.pdf", "c.pdf"}
		if got := combinedOrder(plan); !equalStrings(got, want) {
			t.Errorf("rule %q: combined order = %v, want %v", rule, got, want)
		}
	}
}

func TestParseSortAndGroup(t *testing.T) {
	for _, s := range []string{"filename", "firstline", "code"} {
		if _, err := ParseSort(s); err != nil {
			t.Errorf("ParseSort(%q) error: %v", s, err)
		}
	}
	if _, err := ParseSort("random"); err == nil {
		t.Error("ParseSort(random) should fail")
	}

	for _, s := range []string{"separate", "together"} {
		if _, err := ParseGroup(s); err != nil {
			t.Errorf("ParseGroup(%q) error: %v", s, err)
		}
	}
	if _, err := ParseGroup("none"); err == nil {
		t.Error("ParseGroup(none) should fail")
	}
}
