// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet writes code tallies into Excel workbooks.
//
// The layout mirrors the service-charges workbook the billing team uses:
// codes live in column A and counts in column D, with a bold centered
// header row. Write creates a fresh workbook; Update merges counts into
// the second sheet of an existing one.
package sheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/charge-batch/pkg/types"
)

// ErrWrite marks a spreadsheet that could not be created or updated.
var ErrWrite = errors.New("spreadsheet write failed")

// SheetName is the sheet created in fresh workbooks.
const SheetName = "Code Counts"

const (
	codeColumn  = "A"
	countColumn = "D"
)

// Write creates a new workbook at path holding the tally, one row per
// code in alphabetical order. An existing file at path is overwritten.
func Write(path string, tally types.Tally) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if err := writeHeader(f); err != nil {
		return err
	}

	row := 2
	for _, code := range tally.Codes() {
		if err := setRow(f, SheetName, row, code, tally[code]); err != nil {
			return err
		}
		row++
	}

	if err := f.SetColWidth(SheetName, codeColumn, codeColumn, 15); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := f.SetColWidth(SheetName, countColumn, countColumn, 12); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: saving %s: %v", ErrWrite, path, err)
	}
	return nil
}

// Update opens the workbook at path and merges the tally into its second
// sheet: rows whose column A matches a code get the new count in column D,
// unseen codes are appended after the last used row. The workbook layout
// (styling, other sheets, other columns) is left alone.
func Update(path string, tally types.Tally) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrWrite, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) < 2 {
		return fmt.Errorf("%w: %s needs at least two sheets, has %d", ErrWrite, path, len(sheets))
	}
	target := sheets[1]

	rows, err := f.GetRows(target)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrWrite, target, err)
	}

	// Map existing codes in column A to their 1-based row.
	existing := make(map[string]int)
	lastUsed := 0
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(row[0]))
		if code == "" {
			continue
		}
		lastUsed = i + 1
		if len(code) == 3 {
			existing[code] = i + 1
		}
	}

	next := lastUsed + 1
	for _, code := range tally.Codes() {
		row, ok := existing[code]
		if !ok {
			row = next
			next++
			if err := f.SetCellValue(target, cell(codeColumn, row), code); err != nil {
				return fmt.Errorf("%w: %v", ErrWrite, err)
			}
		}
		if err := f.SetCellValue(target, cell(countColumn, row), tally[code]); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("%w: saving %s: %v", ErrWrite, path, err)
	}
	return nil
}

func writeHeader(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	for col, title := range map[string]string{codeColumn: "Code", countColumn: "Count"} {
		c := cell(col, 1)
		if err := f.SetCellValue(SheetName, c, title); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
		if err := f.SetCellStyle(SheetName, c, c, style); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, code string, count int) error {
	if err := f.SetCellValue(sheet, cell(codeColumn, row), code); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := f.SetCellValue(sheet, cell(countColumn, row), count); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
