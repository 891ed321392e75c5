// Package seed holds the standard renovation book inserted for new properties.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/promphitak-p/praweena/internal/models"
)

//go:embed catalogue.yaml
var catalogueData []byte

// Task is one seeded todo
type Task struct {
	Title    string          `yaml:"title"`
	Priority models.Priority `yaml:"priority"`
}

// Category is one seeded category with its todos in display order
type Category struct {
	Name  string `yaml:"name"`
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
	Tasks []Task `yaml:"tasks"`
}

// Catalogue is the full seed set
type Catalogue struct {
	Categories []Category `yaml:"categories"`
}

// TaskCount returns the number of seeded todos across all categories
func (c *Catalogue) TaskCount() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Tasks)
	}
	return n
}

// Parse decodes and validates a catalogue
func Parse(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalogue: %w", err)
	}
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("seed category without a name")
		}
		for _, t := range cat.Tasks {
			if t.Title == "" {
				return nil, fmt.Errorf("seed task without a title in %q", cat.Name)
			}
			if !t.Priority.Valid() {
				return nil, fmt.Errorf("seed task %q has invalid priority %q", t.Title, t.Priority)
			}
		}
	}
	return &c, nil
}

var defaultCatalogue *Catalogue

func init() {
	c, err := Parse(catalogueData)
	if err != nil {
		panic(err)
	}
	defaultCatalogue = c
}

// Default returns the built-in catalogue
func Default() *Catalogue {
	return defaultCatalogue
}
