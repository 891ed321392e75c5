// Package taxonomy maps free-text category names onto fixed buckets
// (construction phases and floor-plan zones) using one ordered keyword table.
package taxonomy

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTable []byte

// Bucket is one classification target and the substrings that select it
type Bucket struct {
	Key      string   `yaml:"key" json:"key"`
	Label    string   `yaml:"label" json:"label"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

// Taxonomy classifies names against ordered buckets. The first bucket with a
// pattern contained in the lower-cased name wins; otherwise Fallback is returned.
type Taxonomy struct {
	Buckets       []Bucket `yaml:"buckets"`
	Fallback      string   `yaml:"fallback"`
	FallbackLabel string   `yaml:"fallback_label"`
}

// Table is the on-disk shape of the keyword table
type Table struct {
	Phases Taxonomy `yaml:"phases"`
	Zones  Taxonomy `yaml:"zones"`
}

// Parse decodes a keyword table and lower-cases every pattern
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	for _, tx := range []*Taxonomy{&t.Phases, &t.Zones} {
		if tx.Fallback == "" {
			return nil, fmt.Errorf("taxonomy is missing a fallback bucket")
		}
		for i := range tx.Buckets {
			for j, p := range tx.Buckets[i].Patterns {
				tx.Buckets[i].Patterns[j] = strings.ToLower(p)
			}
		}
	}
	return &t, nil
}

// Classify returns the key of the first bucket matching name
func (t *Taxonomy) Classify(name string) string {
	lower := strings.ToLower(name)
	for _, b := range t.Buckets {
		for _, p := range b.Patterns {
			if p != "" && strings.Contains(lower, p) {
				return b.Key
			}
		}
	}
	return t.Fallback
}

// Keys lists bucket keys in evaluation order followed by the fallback
func (t *Taxonomy) Keys() []string {
	keys := make([]string, 0, len(t.Buckets)+1)
	for _, b := range t.Buckets {
		keys = append(keys, b.Key)
	}
	return append(keys, t.Fallback)
}

// Label returns the display label of a bucket key
func (t *Taxonomy) Label(key string) string {
	for _, b := range t.Buckets {
		if b.Key == key {
			return b.Label
		}
	}
	if key == t.Fallback {
		return t.FallbackLabel
	}
	return key
}

var defaults = mustParse(defaultTable)

func mustParse(data []byte) *Table {
	t, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the built-in keyword table
func Default() *Table {
	return defaults
}
