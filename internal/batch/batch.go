// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch drives the pipeline over a folder of PDFs: scan, tally
// codes, write the spreadsheet, and build the print-ready output folder.
//
// Per-file read failures are recorded and the run continues; an empty
// input folder or a failed output write aborts the run.
package batch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/charge-batch/internal/codes"
	"github.com/pdiddy/charge-batch/internal/merge"
	"github.com/pdiddy/charge-batch/internal/pdfread"
	"github.com/pdiddy/charge-batch/internal/sheet"
	"github.com/pdiddy/charge-batch/pkg/types"
)

// ErrNoInput marks a target folder with no PDF files in it.
var ErrNoInput = errors.New("no PDF files found")

// Document is the part of pdfread.Document the orchestrator needs.
// Tests substitute fakes.
type Document interface {
	Close() error
	PageCount() int
	Pages() []pdfread.PageText
}

// Orchestrator runs the batch pipeline with a fixed configuration.
type Orchestrator struct {
	cfg types.PipelineConfig

	openDoc      func(path string) (Document, error)
	writeSheet   func(path string, t types.Tally) error
	updateSheet  func(path string, t types.Tally) error
	executeMerge func(plan merge.Plan, outDir string, opts merge.Options, w io.Writer) ([]string, int, error)
}

// New returns an orchestrator wired to the real reader, spreadsheet
// writer, and merger.
func New(cfg types.PipelineConfig) *Orchestrator {
	return &Orchestrator{
		cfg: cfg,
		openDoc: func(path string) (Document, error) {
			return pdfread.Open(path)
		},
		writeSheet:   sheet.Write,
		updateSheet:  sheet.Update,
		executeMerge: merge.Execute,
	}
}

// ScanFolder returns the PDF files directly inside folder, sorted by
// filename. The scan is non-recursive and the extension match is
// case-insensitive.
func ScanFolder(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", folder, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			files = append(files, filepath.Join(folder, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run executes the full pipeline on folder, streaming per-file status
// lines to w. The returned BatchResult is valid even when err is
// non-nil, so callers can report what did happen.
func (o *Orchestrator) Run(folder string, w io.Writer) (*types.BatchResult, error) {
	extractor, mergeOpts, err := o.stages()
	if err != nil {
		return &types.BatchResult{Folder: folder}, err
	}

	files, err := ScanFolder(folder)
	if err != nil {
		return &types.BatchResult{Folder: folder}, err
	}
	if len(files) == 0 {
		return &types.BatchResult{Folder: folder}, fmt.Errorf("%w in %s", ErrNoInput, folder)
	}
	fmt.Fprintf(w, "Found %d PDF file(s)\n", len(files))

	result, inputs := o.collect(folder, files, extractor, w)
	if result.Processed() == 0 {
		return result, fmt.Errorf("all %d file(s) failed to read", len(files))
	}

	if err := o.writeTally(folder, result, w); err != nil {
		return result, err
	}

	if err := o.buildOutputFolder(folder, inputs, result, mergeOpts, w); err != nil {
		return result, err
	}

	if o.cfg.Batch.ReportPath != "" {
		if err := WriteReport(o.cfg.Batch.ReportPath, result); err != nil {
			return result, err
		}
		result.Outputs = append(result.Outputs, o.cfg.Batch.ReportPath)
	}

	o.summarize(result, w)
	return result, nil
}

// Combine runs only the classify/merge stage: scan, read page metadata,
// and build the output folder. The spreadsheet is not touched.
func (o *Orchestrator) Combine(folder string, w io.Writer) (*types.BatchResult, error) {
	extractor, mergeOpts, err := o.stages()
	if err != nil {
		return &types.BatchResult{Folder: folder}, err
	}

	files, err := ScanFolder(folder)
	if err != nil {
		return &types.BatchResult{Folder: folder}, err
	}
	if len(files) == 0 {
		return &types.BatchResult{Folder: folder}, fmt.Errorf("%w in %s", ErrNoInput, folder)
	}
	fmt.Fprintf(w, "Found %d PDF file(s)\n", len(files))

	result, inputs := o.collect(folder, files, extractor, w)
	if result.Processed() == 0 {
		return result, fmt.Errorf("all %d file(s) failed to read", len(files))
	}

	if err := o.buildOutputFolder(folder, inputs, result, mergeOpts, w); err != nil {
		return result, err
	}

	o.summarize(result, w)
	return result, nil
}

// Count tallies codes for a single PDF or a whole folder without
// producing any output files.
func (o *Orchestrator) Count(path string, w io.Writer) (types.Tally, error) {
	extractor, _, err := o.stages()
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	files := []string{path}
	if info.IsDir() {
		files, err = ScanFolder(path)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("%w in %s", ErrNoInput, path)
		}
	}

	tally := types.NewTally()
	failed := 0
	for _, file := range files {
		doc, err := o.openDoc(file)
		if err != nil {
			failed++
			fmt.Fprintf(w, "failed:    %s (%v)\n", filepath.Base(file), err)
			continue
		}
		matched := 0
		pages := doc.Pages()
		for _, page := range pages {
			matched += extractor.Count(tally, page.Lines)
		}
		doc.Close()
		if o.cfg.Batch.Verbose {
			fmt.Fprintf(w, "processed: %s (%d page(s), %d code(s))\n", filepath.Base(file), len(pages), matched)
		}
	}
	if failed == len(files) {
		return nil, fmt.Errorf("all %d file(s) failed to read", len(files))
	}
	return tally, nil
}

// stages validates the configured rule names and builds the stage inputs.
func (o *Orchestrator) stages() (*codes.Extractor, merge.Options, error) {
	rule, err := codes.ParseRule(o.cfg.Codes.Rule)
	if err != nil {
		return nil, merge.Options{}, err
	}
	sortRule, err := merge.ParseSort(o.cfg.Merge.Sort)
	if err != nil {
		return nil, merge.Options{}, err
	}
	group, err := merge.ParseGroup(o.cfg.Merge.Group)
	if err != nil {
		return nil, merge.Options{}, err
	}
	opts := merge.Options{
		Sort:         sortRule,
		Group:        group,
		CombinedName: o.cfg.Merge.CombinedName,
		MultiName:    o.cfg.Merge.MultiName,
	}
	return codes.NewExtractor(rule), opts, nil
}

// collect reads every file once, feeding both the tally and the merge
// plan from the same pass.
func (o *Orchestrator) collect(folder string, files []string, extractor *codes.Extractor, w io.Writer) (*types.BatchResult, []merge.Input) {
	result := &types.BatchResult{
		Folder: folder,
		Tally:  types.NewTally(),
	}
	var inputs []merge.Input

	for _, file := range files {
		name := filepath.Base(file)

		doc, err := o.openDoc(file)
		if err != nil {
			result.Files = append(result.Files, types.FileResult{Name: name, Error: err.Error()})
			fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
			continue
		}

		pages := doc.Pages()
		doc.Close()

		in := merge.Input{Path: file, PageCount: len(pages)}
		matched := 0
		for _, page := range pages {
			found := extractor.FromLines(page.Lines)
			for _, code := range found {
				result.Tally.Add(code)
			}
			matched += len(found)

			// The page's first code stands in for the page when the
			// combined output is sorted by code.
			pageCode := ""
			if len(found) > 0 {
				pageCode = found[0]
			}
			in.Pages = append(in.Pages, merge.PageMeta{
				Number:    page.Number,
				FirstLine: page.FirstLine(),
				Code:      pageCode,
			})

			if o.cfg.Batch.Verbose {
				fmt.Fprintf(w, "  page %d: %d code(s)\n", page.Number, len(found))
			}
		}

		inputs = append(inputs, in)
		result.Files = append(result.Files, types.FileResult{Name: name, Pages: len(pages), Codes: matched})
		fmt.Fprintf(w, "processed: %s (%d page(s), %d code(s))\n", name, len(pages), matched)
	}

	return result, inputs
}

func (o *Orchestrator) writeTally(folder string, result *types.BatchResult, w io.Writer) error {
	if o.cfg.Sheet.UpdatePath != "" {
		if err := o.updateSheet(o.cfg.Sheet.UpdatePath, result.Tally); err != nil {
			return err
		}
		result.Outputs = append(result.Outputs, o.cfg.Sheet.UpdatePath)
		fmt.Fprintf(w, "updated spreadsheet: %s\n", o.cfg.Sheet.UpdatePath)
		return nil
	}

	path := filepath.Join(folder, o.cfg.Sheet.Filename)
	if err := o.writeSheet(path, result.Tally); err != nil {
		return err
	}
	result.Outputs = append(result.Outputs, path)
	fmt.Fprintf(w, "wrote spreadsheet: %s\n", path)
	return nil
}

func (o *Orchestrator) buildOutputFolder(folder string, inputs []merge.Input, result *types.BatchResult, opts merge.Options, w io.Writer) error {
	plan := merge.BuildPlan(inputs, result.Tally, opts)
	outDir := filepath.Join(folder, o.cfg.Merge.OutputDir)

	outputs, pages, err := o.executeMerge(plan, outDir, opts, w)
	if err != nil {
		return err
	}
	result.Outputs = append(result.Outputs, outputs...)
	result.CombinedPages = pages
	return nil
}

func (o *Orchestrator) summarize(result *types.BatchResult, w io.Writer) {
	fmt.Fprintf(w, "\nBatch summary: %d processed, %d failed, %d code(s) (%d unique), status %s\n",
		result.Processed(), result.FailedFiles(), result.Tally.Total(), len(result.Tally), result.Status())
	for _, out := range result.Outputs {
		fmt.Fprintf(w, "  output: %s\n", out)
	}
}
