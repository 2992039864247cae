// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyscan/internal/matcher"
	"keyscan/internal/taxonomy"
)

// fakeExtractor serves canned text per base filename.
type fakeExtractor struct {
	texts map[string]string // filename -> raw text
	errs  map[string]error  // filename -> extraction error
}

func (f *fakeExtractor) Extract(ctx context.Context, path string) (string, error) {
	name := filepath.Base(path)
	if err, ok := f.errs[name]; ok {
		return "", err
	}
	return f.texts[name], nil
}

func touch(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testPatterns(t *testing.T) []matcher.Pattern {
	t.Helper()
	tax := &taxonomy.Taxonomy{Categories: []taxonomy.Category{
		{Name: "Cat1", Keywords: []string{"Foo", "Bar"}},
	}}
	return matcher.Compile(tax, matcher.ModeWhole)
}

func TestDiscoverFindsAndSortsPDFs(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b", "two.pdf"), "x")
	touch(t, filepath.Join(root, "a", "one.PDF"), "x")
	touch(t, filepath.Join(root, "a", "skip.txt"), "x")
	touch(t, filepath.Join(root, "a", "one.pdf_decrypted"), "x")

	files, err := Discover(root)
	require.NoError(t, err)
	require.Len(t, files, 2)

	// Lexicographic by full path; decrypted copies and non-PDFs excluded.
	assert.Equal(t, filepath.Join(root, "a", "one.PDF"), files[0])
	assert.Equal(t, filepath.Join(root, "b", "two.pdf"), files[1])
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestScanEmptyFolder(t *testing.T) {
	s := New(&fakeExtractor{}, testPatterns(t), zerolog.Nop(), nil)
	result, err := s.Scan(context.Background(), t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, result.Rows)
	assert.Empty(t, result.LogLines)
	assert.Zero(t, result.FilesScanned)
}

func TestScanEndToEnd(t *testing.T) {
	root := t.TempDir()
	docPath := filepath.Join(root, "G", "S", "Doc_2020.pdf")
	touch(t, docPath, "placeholder")

	ext := &fakeExtractor{texts: map[string]string{"Doc_2020.pdf": "foo bar bar"}}
	s := New(ext, testPatterns(t), zerolog.Nop(), nil)

	result, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, Row{Group: "G", SubGroup: "S", Filename: "Doc_2020.pdf",
		Category: "Cat1", Keyword: "Foo", Count: 1}, result.Rows[0])
	assert.Equal(t, Row{Group: "G", SubGroup: "S", Filename: "Doc_2020.pdf",
		Category: "Cat1", Keyword: "Bar", Count: 2}, result.Rows[1])

	assert.Equal(t, 1, result.FilesScanned)
	require.Len(t, result.LogLines, 1)
	assert.Equal(t, "G_S_Doc_2020.pdf_status : Done ; 3", result.LogLines[0])
}

func TestScanExtractionFailure(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "G", "S", "broken_2021.pdf"), "x")

	ext := &fakeExtractor{errs: map[string]error{
		"broken_2021.pdf": errors.New("file has not been decrypted\nsecond line"),
	}}
	s := New(ext, testPatterns(t), zerolog.Nop(), nil)

	result, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	// One zero-count row per pattern, still counted in the summary.
	require.Len(t, result.Rows, 2)
	for _, row := range result.Rows {
		assert.Zero(t, row.Count)
	}
	assert.Equal(t, 1, result.FilesScanned)

	require.Len(t, result.LogLines, 1)
	assert.Equal(t,
		"G_S_broken_2021.pdf_status : Error ; 0 ; Reason: file has not been decrypted second line",
		result.LogLines[0])
}

func TestScanFailureDoesNotAbortBatch(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "G", "S", "a_2020.pdf"), "x")
	touch(t, filepath.Join(root, "G", "S", "b_2020.pdf"), "x")

	ext := &fakeExtractor{
		texts: map[string]string{"b_2020.pdf": "foo"},
		errs:  map[string]error{"a_2020.pdf": errors.New("boom")},
	}
	s := New(ext, testPatterns(t), zerolog.Nop(), nil)

	result, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesScanned)
	require.Len(t, result.Rows, 4)
	// The failed document comes first (lexicographic order) with zero counts.
	assert.Zero(t, result.Rows[0].Count)
	assert.Equal(t, 1, result.Rows[2].Count) // b_2020.pdf, Foo
}

func TestScanProgressCallback(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "ok_2020.pdf"), "x")
	touch(t, filepath.Join(root, "sad_2020.pdf"), "x")

	ext := &fakeExtractor{
		texts: map[string]string{"ok_2020.pdf": "foo"},
		errs:  map[string]error{"sad_2020.pdf": errors.New("boom")},
	}

	var lines []string
	progress := func(filename string, err error) {
		if err != nil {
			lines = append(lines, fmt.Sprintf("%s error", filename))
		} else {
			lines = append(lines, fmt.Sprintf("%s done", filename))
		}
	}

	s := New(ext, testPatterns(t), zerolog.Nop(), progress)
	_, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{"ok_2020.pdf done", "sad_2020.pdf error"}, lines)
}

func TestLabels(t *testing.T) {
	root := filepath.Join("/data", "Reports (2024)")
	cases := []struct {
		name      string
		path      string
		wantGroup string
		wantSub   string
	}{
		{
			name:      "nested country and company",
			path:      filepath.Join(root, "Germany", "Acme Corp (Ltd)", "r_2020.pdf"),
			wantGroup: "Germany",
			wantSub:   "Acme Corp",
		},
		{
			name:      "group keeps top segment for deep nesting",
			path:      filepath.Join(root, "France (EU)", "x", "Bank SA", "r_2021.pdf"),
			wantGroup: "France",
			wantSub:   "Bank SA",
		},
		{
			name:      "document directly at scan root",
			path:      filepath.Join(root, "r_2022.pdf"),
			wantGroup: "Reports",
			wantSub:   "Reports",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			group, sub := Labels(root, tc.path)
			assert.Equal(t, tc.wantGroup, group)
			assert.Equal(t, tc.wantSub, sub)
		})
	}
}

func TestStripParen(t *testing.T) {
	assert.Equal(t, "Acme Corp", StripParen("Acme Corp (Ltd)"))
	assert.Equal(t, "Plain", StripParen("Plain"))
	assert.Equal(t, "", StripParen("(only parens)"))
	assert.Equal(t, "Trailing", StripParen("  Trailing  (x) (y)"))
}
