// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package scanner walks a folder of PDF documents, runs the extraction chain
// and compiled keyword patterns over each one, and collects the per-document
// match rows and status log lines.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"keyscan/internal/matcher"
	"keyscan/internal/textnorm"
)

// Row is one (document, pattern) result. Every scanned document emits exactly
// one row per compiled pattern, in pattern order, even when extraction fails
// (count 0).
type Row struct {
	Group    string // top-level folder label ("country"), parenthesized suffix stripped
	SubGroup string // immediate parent folder label ("company"), stripped the same way
	Filename string
	Category string
	Keyword  string
	Count    int
}

// Result is everything one scan produces.
type Result struct {
	Rows     []Row
	LogLines []string
	// FilesScanned counts distinct filenames enumerated, including documents
	// whose extraction failed.
	FilesScanned int
}

// Extractor is satisfied by *extract.Chain.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Progress is called after each document, with the extraction error if any.
type Progress func(filename string, err error)

// Scanner processes documents strictly one at a time, in lexicographic path
// order.
type Scanner struct {
	extractor Extractor
	patterns  []matcher.Pattern
	log       zerolog.Logger
	progress  Progress
}

// New builds a Scanner. A nil progress callback disables per-file reporting.
func New(extractor Extractor, patterns []matcher.Pattern, log zerolog.Logger, progress Progress) *Scanner {
	return &Scanner{
		extractor: extractor,
		patterns:  patterns,
		log:       log,
		progress:  progress,
	}
}

// Discover returns every .pdf file (case-insensitive extension) under root,
// sorted lexicographically by full path.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// Scan processes every PDF under root. Per-document extraction failures are
// recorded (zero counts, Error log line) and never abort the batch. An empty
// folder yields an empty result, not an error.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	files, err := Discover(root)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	seen := make(map[string]bool)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.scanDocument(ctx, root, path, result, seen)
	}

	result.FilesScanned = len(seen)
	return result, nil
}

// scanDocument appends this document's rows and log line to result.
func (s *Scanner) scanDocument(ctx context.Context, root, path string, result *Result, seen map[string]bool) {
	filename := filepath.Base(path)
	group, subGroup := Labels(root, path)
	seen[filename] = true

	raw, err := s.extractor.Extract(ctx, path)
	if err != nil {
		reason := strings.ReplaceAll(strings.TrimSpace(err.Error()), "\n", " ")
		for i := range s.patterns {
			p := &s.patterns[i]
			result.Rows = append(result.Rows, Row{
				Group:    group,
				SubGroup: subGroup,
				Filename: filename,
				Category: p.Category,
				Keyword:  p.Keyword,
			})
		}
		result.LogLines = append(result.LogLines, fmt.Sprintf(
			"%s_%s_%s_status : Error ; 0 ; Reason: %s", group, subGroup, filename, reason))
		s.log.Warn().Str("file", path).Err(err).Msg("extraction failed")
		if s.progress != nil {
			s.progress(filename, err)
		}
		return
	}

	normalized := textnorm.Normalize(raw)

	// The Done line reports the sum of all match counts for the document.
	totalFound := 0
	for i := range s.patterns {
		p := &s.patterns[i]
		count := p.Count(normalized)
		result.Rows = append(result.Rows, Row{
			Group:    group,
			SubGroup: subGroup,
			Filename: filename,
			Category: p.Category,
			Keyword:  p.Keyword,
			Count:    count,
		})
		totalFound += count
	}

	result.LogLines = append(result.LogLines, fmt.Sprintf(
		"%s_%s_%s_status : Done ; %d", group, subGroup, filename, totalFound))
	if s.progress != nil {
		s.progress(filename, nil)
	}
}

// Labels derives the (group, sub-group) labels for a document from its
// location under root. The group is the top path segment of the document's
// parent relative to root; documents sitting directly at the root use the
// root's own name. The sub-group is the immediate parent folder name. Both
// have any parenthesized suffix and surrounding whitespace stripped.
func Labels(root, path string) (group, subGroup string) {
	parent := filepath.Dir(path)
	subGroup = StripParen(filepath.Base(parent))

	rel, err := filepath.Rel(root, parent)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		group = StripParen(filepath.Base(filepath.Clean(root)))
		return group, subGroup
	}

	segments := strings.Split(filepath.ToSlash(rel), "/")
	group = StripParen(segments[0])
	return group, subGroup
}

// StripParen cuts a label at its first "(" and trims surrounding whitespace,
// so "Acme Corp (Ltd)" becomes "Acme Corp".
func StripParen(s string) string {
	if i := strings.Index(s, "("); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
