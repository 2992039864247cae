// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyscan/internal/taxonomy"
	"keyscan/internal/textnorm"
)

func singlePattern(t *testing.T, keyword string, mode Mode) *Pattern {
	t.Helper()
	tax := &taxonomy.Taxonomy{Categories: []taxonomy.Category{
		{Name: "Test", Keywords: []string{keyword}},
	}}
	patterns := Compile(tax, mode)
	require.Len(t, patterns, 1)
	return &patterns[0]
}

func TestParseMode(t *testing.T) {
	for input, want := range map[string]Mode{
		"whole":     ModeWhole,
		"substring": ModeSubstring,
		" Whole ":   ModeWhole,
		"SUBSTRING": ModeSubstring,
	} {
		got, err := ParseMode(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseMode("fuzzy")
	assert.Error(t, err)
}

func TestCompilePreservesOrderAndSkipsEmpties(t *testing.T) {
	tax := &taxonomy.Taxonomy{Categories: []taxonomy.Category{
		{Name: "Cat1", Keywords: []string{"Foo", "  ", "Bar"}},
		{Name: "Cat2", Keywords: []string{"  Baz  "}},
	}}
	patterns := Compile(tax, ModeWhole)
	require.Len(t, patterns, 3)

	assert.Equal(t, "Cat1", patterns[0].Category)
	assert.Equal(t, "Foo", patterns[0].Keyword)
	assert.Equal(t, "Bar", patterns[1].Keyword)
	assert.Equal(t, "Cat2", patterns[2].Category)
	assert.Equal(t, "Baz", patterns[2].Keyword)
}

func TestWholeWordCounting(t *testing.T) {
	p := singlePattern(t, "AI", ModeWhole)
	assert.Equal(t, 2, p.Count("the ai team uses ai tools"))
	// "brain" and "aid" must not match a whole-word "ai".
	assert.Equal(t, 0, p.Count("the brain aids understanding"))
}

func TestWholePhraseCounting(t *testing.T) {
	p := singlePattern(t, "artificial intelligence", ModeWhole)

	text := textnorm.Normalize("We invest in artificial intelligence but " +
		"not artificial-intelligence-like slogans.")
	assert.Equal(t, 1, p.Count(text))

	// A hyphenated line wrap fuses during normalization and then matches.
	fused := textnorm.Normalize("artificial in-\ntelligence")
	assert.Equal(t, 1, p.Count(fused))
}

func TestWholeModeCaseInsensitive(t *testing.T) {
	p := singlePattern(t, "Fintech", ModeWhole)
	assert.Equal(t, 3, p.Count("FINTECH fintech FinTech"))
}

func TestSubstringOverlap(t *testing.T) {
	p := singlePattern(t, "aa", ModeSubstring)
	assert.Equal(t, 3, p.Count("aaaa"))
	assert.Equal(t, 2, p.Count("aaa"))
	assert.Equal(t, 0, p.Count("ab"))
}

func TestSubstringMatchesInsideWords(t *testing.T) {
	p := singlePattern(t, "bank", ModeSubstring)
	assert.Equal(t, 3, p.Count("bank banking interbank"))
}

func TestRegexMetacharactersAreLiteral(t *testing.T) {
	// Hyphens and dots are regex-significant but must match literally.
	whole := singlePattern(t, "peer-to-peer lending", ModeWhole)
	assert.Equal(t, 1, whole.Count("growth of peer-to-peer lending in 2021"))
	assert.Equal(t, 0, whole.Count("growth of peerXtoXpeer lending in 2021"))

	sub := singlePattern(t, "C++ (advanced)", ModeSubstring)
	assert.Equal(t, 1, sub.Count("we teach c++ (advanced) here"))
	assert.Equal(t, 0, sub.Count("we teach c advanced here"))
}

func TestCountEmptyText(t *testing.T) {
	for _, mode := range []Mode{ModeWhole, ModeSubstring} {
		p := singlePattern(t, "anything", mode)
		assert.Equal(t, 0, p.Count(""))
	}
}
