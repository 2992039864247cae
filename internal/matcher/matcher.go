// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package matcher compiles a taxonomy into keyword patterns and counts their
// occurrences in normalized document text.
package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"keyscan/internal/taxonomy"
)

// Mode selects how keyword phrases are matched against document text.
type Mode string

const (
	// ModeWhole matches a keyword only as a whole word or phrase, bounded by
	// word boundaries at both ends.
	ModeWhole Mode = "whole"

	// ModeSubstring matches every literal occurrence of a keyword anywhere in
	// the text, counting overlapping occurrences.
	ModeSubstring Mode = "substring"
)

// ParseMode validates a user-supplied match mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeWhole:
		return ModeWhole, nil
	case ModeSubstring:
		return ModeSubstring, nil
	default:
		return "", fmt.Errorf("invalid match mode %q (want %q or %q)", s, ModeWhole, ModeSubstring)
	}
}

// Pattern is one compiled (category, keyword) matcher. Counting is pure and
// safe to apply to many documents independently.
type Pattern struct {
	Category string
	Keyword  string // original keyword text, trimmed

	mode   Mode
	re     *regexp.Regexp // whole mode
	needle string         // substring mode, lowercased
}

// Compile flattens a taxonomy into an ordered pattern list, preserving
// category and within-category keyword declaration order. Keywords are
// trimmed; keywords empty after trimming are skipped. Regex metacharacters in
// keyword text are treated literally.
func Compile(tax *taxonomy.Taxonomy, mode Mode) []Pattern {
	var patterns []Pattern
	for _, cat := range tax.Categories {
		for _, kw := range cat.Keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			p := Pattern{
				Category: cat.Name,
				Keyword:  kw,
				mode:     mode,
			}
			switch mode {
			case ModeSubstring:
				p.needle = strings.ToLower(kw)
			default:
				p.re = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
			}
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// Count returns the number of occurrences of the pattern's keyword in text,
// per the pattern's mode semantics. Matching is case-insensitive. Empty text
// yields 0.
func (p *Pattern) Count(text string) int {
	if text == "" {
		return 0
	}
	if p.mode == ModeSubstring {
		return countOverlapping(strings.ToLower(text), p.needle)
	}
	return len(p.re.FindAllStringIndex(text, -1))
}

// countOverlapping counts literal occurrences of needle in text, advancing
// one character past each hit so overlapping occurrences are all counted
// ("aa" in "aaaa" yields 3).
func countOverlapping(text, needle string) int {
	if needle == "" {
		return 0
	}
	count := 0
	off := 0
	for {
		i := strings.Index(text[off:], needle)
		if i < 0 {
			return count
		}
		count++
		off += i + 1
	}
}
