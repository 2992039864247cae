// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package taxonomy loads the category-to-keywords mapping that drives a scan.
// The mapping is ordered: report rows follow taxonomy declaration order, so
// YAML decoding goes through yaml.Node rather than a Go map.
package taxonomy

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_taxonomy.yaml
var defaultTaxonomyYAML []byte

// Category is a named group of related keyword phrases.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy is an ordered list of categories. Duplicate keywords across
// categories are permitted and counted independently per category.
type Taxonomy struct {
	Categories []Category
}

// UnmarshalYAML decodes a YAML mapping of category name to keyword list while
// preserving the document's declaration order.
func (t *Taxonomy) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("taxonomy must be a mapping of category to keyword list (line %d)", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		var keywords []string
		if err := valNode.Decode(&keywords); err != nil {
			return fmt.Errorf("category %q: %w", keyNode.Value, err)
		}
		t.Categories = append(t.Categories, Category{
			Name:     keyNode.Value,
			Keywords: keywords,
		})
	}
	return nil
}

// Parse decodes a taxonomy from YAML bytes.
func Parse(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	if len(t.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy contains no categories")
	}
	return &t, nil
}

// Load reads and parses a taxonomy YAML file.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Default returns the built-in digital-technology taxonomy shipped with the
// binary, used when no taxonomy file is configured.
func Default() *Taxonomy {
	t, err := Parse(defaultTaxonomyYAML)
	if err != nil {
		// The embedded file is fixed at build time; failing to parse it is a
		// programming error, not a runtime condition.
		panic(fmt.Sprintf("embedded taxonomy is invalid: %v", err))
	}
	return t
}

// KeywordCount returns the total number of keyword entries across all
// categories, counting duplicates.
func (t *Taxonomy) KeywordCount() int {
	n := 0
	for _, c := range t.Categories {
		n += len(c.Keywords)
	}
	return n
}
