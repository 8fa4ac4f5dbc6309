// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestExecuteRecreatesOutputFolder(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "Print these")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatalf("seeding output folder: %v", err)
	}
	stale := filepath.Join(outDir, "leftover.pdf")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("seeding stale file: %v", err)
	}

	src := writeSource(t, dir, "report multi-page.pdf", "pages")
	plan := Plan{Copies: []string{src}}
	opts := Options{Sort: SortFilename, Group: GroupSeparate, CombinedName: "combined.pdf"}

	var buf bytes.Buffer
	outputs, pages, err := Execute(plan, outDir, opts, &buf)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if pages != 0 {
		t.Errorf("pages = %d, want 0", pages)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale file survived the rebuild")
	}
	want := []string{filepath.Join(outDir, "report multi-page.pdf")}
	if !equalStrings(outputs, want) {
		t.Errorf("outputs = %v, want %v", outputs, want)
	}
	got, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatalf("reading copy: %v", err)
	}
	if string(got) != "pages" {
		t.Errorf("copy content = %q, want %q", got, "pages")
	}
}

func TestExecuteCarriesOverAllCopies(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "alpha multi-page.pdf", "a")
	b := writeSource(t, dir, "beta multi-page.pdf", "b")
	outDir := filepath.Join(dir, "out")

	var buf bytes.Buffer
	outputs, _, err := Execute(Plan{Copies: []string{a, b}}, outDir,
		Options{Sort: SortFilename, Group: GroupSeparate, CombinedName: "combined.pdf"}, &buf)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := []string{
		filepath.Join(outDir, "alpha multi-page.pdf"),
		filepath.Join(outDir, "beta multi-page.pdf"),
	}
	if !equalStrings(outputs, want) {
		t.Errorf("outputs = %v, want %v", outputs, want)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected warnings: %q", buf.String())
	}
}

func TestExecuteSkipsUnreadableCopies(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "gone multi-page.pdf")
	good := writeSource(t, dir, "kept multi-page.pdf", "ok")
	outDir := filepath.Join(dir, "out")

	var buf bytes.Buffer
	outputs, _, err := Execute(Plan{Copies: []string{missing, good}}, outDir,
		Options{Sort: SortFilename, Group: GroupSeparate, CombinedName: "combined.pdf"}, &buf)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := []string{filepath.Join(outDir, "kept multi-page.pdf")}
	if !equalStrings(outputs, want) {
		t.Errorf("outputs = %v, want %v", outputs, want)
	}
	if !strings.Contains(buf.String(), "skipping gone multi-page.pdf") {
		t.Errorf("missing skip notice, got %q", buf.String())
	}
}
