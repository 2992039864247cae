// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package textnorm collapses raw extracted PDF text into a single lowercase
// string suitable for keyword matching.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	// hyphenBreak matches a hyphen at a line wrap, e.g. "bio-\nmetric".
	hyphenBreak = regexp.MustCompile(`-\s*\n\s*`)

	// lineBreak matches a line break together with surrounding whitespace.
	lineBreak = regexp.MustCompile(`\s*\n\s*`)

	// spaceRun matches any remaining run of whitespace.
	spaceRun = regexp.MustCompile(`\s+`)
)

// Normalize rejoins words hyphenated across line wraps, flattens all line
// breaks to single spaces, collapses whitespace runs, trims, and lowercases.
// The result contains no newlines and no run of two or more spaces. Empty
// input yields an empty string.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	text := hyphenBreak.ReplaceAllString(raw, "")
	text = lineBreak.ReplaceAllString(text, " ")
	text = spaceRun.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}
