// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"keyscan/internal/scanner"
)

// WriteDetailedXLSX writes a spreadsheet mirror of the detailed report next
// to the given CSV path, swapping the extension for .xlsx. Count lands as a
// numeric cell so the sheet sums and filters without casting.
func (w *Writer) WriteDetailedXLSX(csvPath string, rows []scanner.Row) (string, error) {
	path := strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + ".xlsx"

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := setRow(f, sheet, 1, toCells(DetailedHeader)); err != nil {
		return "", err
	}
	for i, row := range rows {
		cells := []interface{}{row.Group, row.SubGroup, row.Filename, row.Category, row.Keyword, row.Count}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return path, nil
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to fill spreadsheet row %d: %w", row, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
