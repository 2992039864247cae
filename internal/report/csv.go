// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package report writes the scan artifacts: the detailed per-keyword CSV, the
// two year-bucketed aggregate CSVs, the summary and log files, and the
// optional spreadsheet mirror. All CSVs are semicolon-delimited UTF-8.
// Generated file names carry a timestamp from an injectable clock.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"keyscan/internal/aggregate"
	"keyscan/internal/scanner"
)

// DetailedHeader is the column header of the detailed report.
var DetailedHeader = []string{"main_folder", "sub_folder", "filename", "category", "keyword", "count"}

// Writer emits all artifacts of one run into a single directory.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter returns a Writer targeting dir. A nil clock means time.Now.
func NewWriter(dir string, now func() time.Time) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{dir: dir, now: now}
}

func (w *Writer) timestamp() string {
	return w.now().Format("2006-01-02_1504")
}

func (w *Writer) writeCSV(name string, header []string, records [][]string) (string, error) {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	cw.Comma = ';'
	if err := cw.Write(header); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

// WriteDetailed writes report_<folder>_<timestamp>.csv with one record per
// (document, keyword) row, in scan order, and returns its path.
func (w *Writer) WriteDetailed(folderName string, rows []scanner.Row) (string, error) {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Group, row.SubGroup, row.Filename, row.Category, row.Keyword,
			strconv.Itoa(row.Count),
		})
	}
	name := fmt.Sprintf("report_%s_%s.csv", folderName, w.timestamp())
	return w.writeCSV(name, DetailedHeader, records)
}

func yearHeader(prefix []string) []string {
	header := append([]string{}, prefix...)
	for _, y := range aggregate.Years() {
		header = append(header, strconv.Itoa(y))
	}
	return header
}

func yearCells(counts map[int]int) []string {
	cells := make([]string, 0, len(counts))
	for _, y := range aggregate.Years() {
		cells = append(cells, strconv.Itoa(counts[y]))
	}
	return cells
}

// WriteKeywordAggregate writes variable_report_<timestamp>.csv.
func (w *Writer) WriteKeywordAggregate(totals []aggregate.KeywordTotals) (string, error) {
	records := make([][]string, 0, len(totals))
	for _, t := range totals {
		record := []string{t.Group, t.SubGroup, t.Category, t.Keyword}
		records = append(records, append(record, yearCells(t.Counts)...))
	}
	name := fmt.Sprintf("variable_report_%s.csv", w.timestamp())
	return w.writeCSV(name, yearHeader([]string{"Country", "Company Name", "Category", "Keyword"}), records)
}

// WriteGroupAggregate writes report_by_company_<timestamp>.csv.
func (w *Writer) WriteGroupAggregate(totals []aggregate.GroupTotals) (string, error) {
	records := make([][]string, 0, len(totals))
	for _, t := range totals {
		record := []string{t.Group, t.SubGroup}
		records = append(records, append(record, yearCells(t.Counts)...))
	}
	name := fmt.Sprintf("report_by_company_%s.csv", w.timestamp())
	return w.writeCSV(name, yearHeader([]string{"Country", "Company Name"}), records)
}

// WriteSummary writes summary.txt containing the count of distinct filenames
// scanned.
func (w *Writer) WriteSummary(filesScanned int) (string, error) {
	path := filepath.Join(w.dir, "summary.txt")
	if err := os.WriteFile(path, []byte(strconv.Itoa(filesScanned)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}
	return path, nil
}

// WriteLog writes log_<folder>_<timestamp>.txt with one status line per
// document.
func (w *Writer) WriteLog(folderName string, lines []string) (string, error) {
	name := fmt.Sprintf("log_%s_%s.txt", folderName, w.timestamp())
	path := filepath.Join(w.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return "", fmt.Errorf("failed to write log file: %w", err)
		}
	}
	return path, nil
}
