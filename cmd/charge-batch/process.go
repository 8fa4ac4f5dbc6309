// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/charge-batch/internal/batch"
)

var processCmd = &cobra.Command{
	Use:   "process <folder>",
	Short: "Run the full pipeline over a folder of PDFs",
	Long: `Process scans the folder for PDF files, tallies billing codes across
every page, writes the tally spreadsheet into the folder, and rebuilds
the "Print these" output folder with the combined and carried-over PDFs.

Files that cannot be read are reported and skipped; the run only fails
outright when no file could be processed or an output could not be
written.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	result, err := batch.New(cfg).Run(args[0], os.Stdout)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	}

	// The launcher sees only the exit code.
	if code := result.Status().ExitCode(); code != 0 {
		os.Exit(code)
	}
	return nil
}

func init() {
	processCmd.Flags().String("rule", "", "code recognition rule: word or stamp")
	processCmd.Flags().String("sort", "", "combined page order: filename, firstline, or code")
	processCmd.Flags().String("group", "", "multi-page handling: separate or together")
	processCmd.Flags().String("update-xlsx", "", "update this existing workbook instead of writing a fresh spreadsheet")
	processCmd.Flags().String("report", "", "write a YAML run report to this path")
	processCmd.Flags().Bool("verbose", false, "show per-page processing detail")
	processCmd.Flags().Bool("json", false, "print the run result as JSON")

	rootCmd.AddCommand(processCmd)
}
