// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CodesConfig holds settings for the code extraction stage.
type CodesConfig struct {
	// Rule selects the recognition rule: "word" (isolated uppercase
	// three-letter tokens anywhere on a page) or "stamp" (the billing
	// stamp on the last line of a page: code, date, clerk initials).
	Rule string `json:"rule" yaml:"rule"`
}

// SheetConfig holds settings for the spreadsheet stage.
type SheetConfig struct {
	// Filename is the spreadsheet written into the target folder.
	Filename string `json:"filename" yaml:"filename"`

	// UpdatePath, when set, points at an existing workbook whose second
	// sheet is updated in place instead of writing Filename fresh.
	UpdatePath string `json:"update_path,omitempty" yaml:"update_path,omitempty"`
}

// MergeConfig holds settings for the classify/merge stage.
type MergeConfig struct {
	// OutputDir is the subfolder of the target folder that receives the
	// merged and copied PDFs. Recreated on every run.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// CombinedName is the filename of the merged single-page output.
	CombinedName string `json:"combined_name" yaml:"combined_name"`

	// Sort orders the pages of the combined output: "filename",
	// "firstline", or "code".
	Sort string `json:"sort" yaml:"sort"`

	// Group controls multi-page inputs: "separate" copies each into the
	// output folder, "together" merges them into one combined file.
	Group string `json:"group" yaml:"group"`

	// MultiName is the filename of the merged multi-page output when
	// Group is "together".
	MultiName string `json:"multi_name" yaml:"multi_name"`
}

// BatchConfig holds settings for the batch orchestrator.
type BatchConfig struct {
	// Verbose enables per-page detail in the progress output.
	Verbose bool `json:"verbose" yaml:"verbose"`

	// ReportPath, when set, receives a YAML run report.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Codes CodesConfig `json:"codes" yaml:"codes"`
	Sheet SheetConfig `json:"sheet" yaml:"sheet"`
	Merge MergeConfig `json:"merge" yaml:"merge"`
	Batch BatchConfig `json:"batch" yaml:"batch"`
}

// DefaultConfig returns the pipeline configuration with all defaults applied.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		Codes: CodesConfig{Rule: "word"},
		Sheet: SheetConfig{Filename: "add to service charges.xlsx"},
		Merge: MergeConfig{
			OutputDir:    "Print these",
			CombinedName: "combined_single_page(print).pdf",
			Sort:         "filename",
			Group:        "separate",
			MultiName:    "combined_multi_page.pdf",
		},
	}
}
