// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/charge-batch/internal/batch"
)

var combineCmd = &cobra.Command{
	Use:   "combine <folder>",
	Short: "Rebuild the print-ready output folder only",
	Long: `Combine classifies the folder's PDFs and rebuilds the "Print these"
output folder: single-page documents are merged into one sorted PDF and
multi-page documents are carried over whole. The tally spreadsheet is
not touched, though codes are still read when the sort rule needs them.`,
	Args: cobra.ExactArgs(1),
	RunE: runCombine,
}

func runCombine(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	_, err := batch.New(cfg).Combine(args[0], os.Stdout)
	return err
}

func init() {
	combineCmd.Flags().String("rule", "", "code recognition rule: word or stamp")
	combineCmd.Flags().String("sort", "", "combined page order: filename, firstline, or code")
	combineCmd.Flags().String("group", "", "multi-page handling: separate or together")
	combineCmd.Flags().Bool("verbose", false, "show per-page processing detail")

	rootCmd.AddCommand(combineCmd)
}
