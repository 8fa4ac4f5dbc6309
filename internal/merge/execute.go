// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrMerge marks a failure to assemble the output folder.
var ErrMerge = errors.New("merge failed")

// relaxedConf returns a pdfcpu configuration tolerant of the slightly
// out-of-spec PDFs that office scanners produce.
func relaxedConf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Execute builds the output folder from the plan. The folder is removed
// and recreated, planned pages are merged into opts.CombinedName, and
// multi-page inputs are copied or merged per opts.Group. A page that
// cannot be extracted from its source is reported to w and skipped; a
// failure to write a final output is fatal.
//
// Execute returns the paths written and the page count of the combined
// single-page output.
func Execute(plan Plan, outDir string, opts Options, w io.Writer) ([]string, int, error) {
	if err := os.RemoveAll(outDir); err != nil {
		return nil, 0, fmt.Errorf("%w: clearing %s: %v", ErrMerge, outDir, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, 0, fmt.Errorf("%w: creating %s: %v", ErrMerge, outDir, err)
	}

	var outputs []string
	conf := relaxedConf()

	pages, err := writeCombined(plan.Combined, outDir, opts, conf, w)
	if err != nil {
		return nil, 0, err
	}
	if pages > 0 {
		outputs = append(outputs, filepath.Join(outDir, opts.CombinedName))
	}

	copied, err := carryOver(plan.Copies, outDir, opts, conf, w)
	if err != nil {
		return nil, 0, err
	}
	outputs = append(outputs, copied...)

	return outputs, pages, nil
}

// writeCombined extracts each planned page into a temporary single-page
// PDF and merges them, in plan order, into the combined output. Returns
// the number of pages merged.
func writeCombined(refs []PageRef, outDir string, opts Options, conf *model.Configuration, w io.Writer) (int, error) {
	if len(refs) == 0 {
		return 0, nil
	}

	tmpDir, err := os.MkdirTemp("", "charge-batch-pages-")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMerge, err)
	}
	defer os.RemoveAll(tmpDir)

	var parts []string
	for i, ref := range refs {
		part := filepath.Join(tmpDir, fmt.Sprintf("page-%05d.pdf", i))
		if err := api.TrimFile(ref.Source, part, []string{strconv.Itoa(ref.Page)}, conf); err != nil {
			fmt.Fprintf(w, "skipping page %d of %s: %v\n", ref.Page, filepath.Base(ref.Source), err)
			continue
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return 0, nil
	}

	combined := filepath.Join(outDir, opts.CombinedName)
	if err := api.MergeCreateFile(parts, combined, false, conf); err != nil {
		return 0, fmt.Errorf("%w: writing %s: %v", ErrMerge, opts.CombinedName, err)
	}
	return len(parts), nil
}

// carryOver places multi-page inputs into the output folder.
func carryOver(copies []string, outDir string, opts Options, conf *model.Configuration, w io.Writer) ([]string, error) {
	if len(copies) == 0 {
		return nil, nil
	}

	if opts.Group == GroupTogether {
		name := opts.MultiName
		if name == "" {
			name = "combined_multi_page.pdf"
		}
		out := filepath.Join(outDir, name)
		if err := api.MergeCreateFile(copies, out, false, conf); err != nil {
			return nil, fmt.Errorf("%w: writing %s: %v", ErrMerge, name, err)
		}
		return []string{out}, nil
	}

	var outputs []string
	for _, src := range copies {
		dst := filepath.Join(outDir, filepath.Base(src))
		if err := copyFile(src, dst); err != nil {
			fmt.Fprintf(w, "skipping %s: %v\n", filepath.Base(src), err)
			continue
		}
		outputs = append(outputs, dst)
	}
	return outputs, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
