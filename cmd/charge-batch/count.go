// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/charge-batch/internal/batch"
	"github.com/pdiddy/charge-batch/pkg/types"
)

var countCmd = &cobra.Command{
	Use:   "count <folder|file.pdf>",
	Short: "Tally billing codes without writing any output files",
	Long: `Count reads a single PDF or every PDF in a folder and prints the code
tally, both by frequency and alphabetically. Nothing is written to disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runCount,
}

func runCount(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	tally, err := batch.New(cfg).Count(args[0], os.Stderr)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tally)
	}

	printTally(tally)
	return nil
}

func printTally(tally types.Tally) {
	if len(tally) == 0 {
		fmt.Println("No codes found.")
		return
	}

	fmt.Printf("Total unique codes: %d\n", len(tally))
	fmt.Printf("Total occurrences:  %d\n", tally.Total())

	fmt.Println("\nBy frequency:")
	for _, code := range tally.ByFrequency() {
		fmt.Printf("  %s: %d\n", code, tally[code])
	}

	fmt.Println("\nAlphabetical:")
	for _, code := range tally.Codes() {
		fmt.Printf("  %s: %d\n", code, tally[code])
	}
}

func init() {
	countCmd.Flags().String("rule", "", "code recognition rule: word or stamp")
	countCmd.Flags().Bool("verbose", false, "show per-file detail")
	countCmd.Flags().Bool("json", false, "print the tally as JSON")

	rootCmd.AddCommand(countCmd)
}
