// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/charge-batch/internal/pdfread"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Dump the text lines extracted from a PDF",
	Long: `Inspect prints every text line of every page, the way the code
extractor sees them. Useful for checking why a page's code was or was
not recognized.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	doc, err := pdfread.Open(args[0])
	if err != nil {
		return err
	}
	defer doc.Close()

	fmt.Printf("Total pages: %d\n", doc.PageCount())
	for _, page := range doc.Pages() {
		fmt.Printf("\n--- page %d ---\n", page.Number)
		if len(page.Lines) == 0 {
			fmt.Println("(no text found on this page)")
			continue
		}
		for i, line := range page.Lines {
			fmt.Printf("%3d: %s\n", i+1, line)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
