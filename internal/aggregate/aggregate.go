// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package aggregate folds per-document match rows into year-bucketed summary
// tables. Both folds are pure: the same rows always produce the same tables.
package aggregate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"keyscan/internal/scanner"
)

// Aggregates bucket filing years 2019 through 2024; rows whose filename
// yields no year in this range are excluded.
const (
	YearMin = 2019
	YearMax = 2024
)

var yearRe = regexp.MustCompile(`(19|20)\d{2}`)

// Year extracts the filing year from a filename: the first 4-digit substring
// starting 19 or 20. Returns ok=false when no such substring exists or the
// year is outside [YearMin, YearMax].
func Year(filename string) (int, bool) {
	m := yearRe.FindString(filename)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil || y < YearMin || y > YearMax {
		return 0, false
	}
	return y, true
}

// Years lists the aggregation years in order, for report headers and
// deterministic iteration.
func Years() []int {
	years := make([]int, 0, YearMax-YearMin+1)
	for y := YearMin; y <= YearMax; y++ {
		years = append(years, y)
	}
	return years
}

// KeywordTotals is one row of the category/keyword aggregate: year-bucketed
// counts for a (group, sub-group, category, keyword) key. Every aggregation
// year is present in Counts, defaulting to 0.
type KeywordTotals struct {
	Group    string
	SubGroup string
	Category string
	Keyword  string
	Counts   map[int]int
}

// GroupTotals is one row of the group aggregate: year-bucketed counts summed
// over all categories and keywords of a (group, sub-group) key.
type GroupTotals struct {
	Group    string
	SubGroup string
	Counts   map[int]int
}

func emptyCounts() map[int]int {
	counts := make(map[int]int, YearMax-YearMin+1)
	for y := YearMin; y <= YearMax; y++ {
		counts[y] = 0
	}
	return counts
}

// ByKeyword folds rows into the category/keyword aggregate, keeping only
// rows with an in-range filing year. Output is sorted case-insensitively by
// (group, sub-group), then category and keyword.
func ByKeyword(rows []scanner.Row) []KeywordTotals {
	type key struct{ group, subGroup, category, keyword string }

	agg := make(map[key]map[int]int)
	for _, row := range rows {
		year, ok := Year(row.Filename)
		if !ok {
			continue
		}
		k := key{row.Group, row.SubGroup, row.Category, row.Keyword}
		if agg[k] == nil {
			agg[k] = emptyCounts()
		}
		agg[k][year] += row.Count
	}

	totals := make([]KeywordTotals, 0, len(agg))
	for k, counts := range agg {
		totals = append(totals, KeywordTotals{
			Group:    k.group,
			SubGroup: k.subGroup,
			Category: k.category,
			Keyword:  k.keyword,
			Counts:   counts,
		})
	}

	sort.Slice(totals, func(i, j int) bool {
		a, b := totals[i], totals[j]
		if c := compareFold(a.Group, b.Group); c != 0 {
			return c < 0
		}
		if c := compareFold(a.SubGroup, b.SubGroup); c != 0 {
			return c < 0
		}
		if c := compareFold(a.Category, b.Category); c != 0 {
			return c < 0
		}
		return compareFold(a.Keyword, b.Keyword) < 0
	})
	return totals
}

// ByGroup folds rows into the per-group aggregate, summing across all
// categories and keywords. Same year filtering and ordering rules as
// ByKeyword.
func ByGroup(rows []scanner.Row) []GroupTotals {
	type key struct{ group, subGroup string }

	agg := make(map[key]map[int]int)
	for _, row := range rows {
		year, ok := Year(row.Filename)
		if !ok {
			continue
		}
		k := key{row.Group, row.SubGroup}
		if agg[k] == nil {
			agg[k] = emptyCounts()
		}
		agg[k][year] += row.Count
	}

	totals := make([]GroupTotals, 0, len(agg))
	for k, counts := range agg {
		totals = append(totals, GroupTotals{
			Group:    k.group,
			SubGroup: k.subGroup,
			Counts:   counts,
		})
	}

	sort.Slice(totals, func(i, j int) bool {
		a, b := totals[i], totals[j]
		if c := compareFold(a.Group, b.Group); c != 0 {
			return c < 0
		}
		return compareFold(a.SubGroup, b.SubGroup) < 0
	})
	return totals
}

// compareFold orders strings case-insensitively, falling back to the raw
// comparison so ordering stays total and deterministic.
func compareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
