// Package catalog holds the fixed set of prayers and rosary guides.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// ErrNotFound is returned for an unknown prayer or rosary id.
var ErrNotFound = errors.New("not found")

// Prayer is a single prayer text.
type Prayer struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	Category     string `yaml:"category"`
	Content      string `yaml:"content"`
	Explanation  string `yaml:"explanation"`
	LatinVersion string `yaml:"latin,omitempty"`
}

// Step is one stage of a rosary.
type Step struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Prayer      string `yaml:"prayer,omitempty"`
}

// Rosary is a guided chaplet.
type Rosary struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Steps       []Step `yaml:"steps"`
}

// Catalog is a read-only collection of prayers and rosaries.
type Catalog struct {
	prayers    []Prayer
	rosaries   []Rosary
	categories []string
}

type document struct {
	Prayers  []Prayer `yaml:"prayers"`
	Rosaries []Rosary `yaml:"rosaries"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded data is invalid: %v", err))
	}
	return c
}

// Parse reads a catalog from YAML. Ids must be unique within prayers and
// within rosaries.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{prayers: doc.Prayers, rosaries: doc.Rosaries}

	seen := make(map[string]bool)
	for _, p := range doc.Prayers {
		if p.ID == "" || seen[p.ID] {
			return nil, fmt.Errorf("invalid or duplicate prayer id %q", p.ID)
		}
		seen[p.ID] = true
		if !contains(c.categories, p.Category) {
			c.categories = append(c.categories, p.Category)
		}
	}

	seen = make(map[string]bool)
	for _, r := range doc.Rosaries {
		if r.ID == "" || seen[r.ID] {
			return nil, fmt.Errorf("invalid or duplicate rosary id %q", r.ID)
		}
		seen[r.ID] = true
	}

	return c, nil
}

// Prayers returns every prayer in catalog order.
func (c *Catalog) Prayers() []Prayer {
	return append([]Prayer(nil), c.prayers...)
}

// Rosaries returns every rosary in catalog order.
func (c *Catalog) Rosaries() []Rosary {
	return append([]Rosary(nil), c.rosaries...)
}

// Categories returns prayer categories in order of first appearance.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// ByCategory returns the prayers of one category.
func (c *Catalog) ByCategory(category string) []Prayer {
	var out []Prayer
	for _, p := range c.prayers {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Prayer looks a prayer up by id.
func (c *Catalog) Prayer(id string) (Prayer, error) {
	for _, p := range c.prayers {
		if p.ID == id {
			return p, nil
		}
	}
	return Prayer{}, fmt.Errorf("prayer %q: %w", id, ErrNotFound)
}

// Rosary looks a rosary up by id.
func (c *Catalog) Rosary(id string) (Rosary, error) {
	for _, r := range c.rosaries {
		if r.ID == id {
			return r, nil
		}
	}
	return Rosary{}, fmt.Errorf("rosary %q: %w", id, ErrNotFound)
}

// Search fuzzy-matches query against prayer titles and categories, best
// match first. An empty query returns every prayer.
func (c *Catalog) Search(query string) []Prayer {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.Prayers()
	}

	targets := make([]string, len(c.prayers))
	for i, p := range c.prayers {
		targets[i] = p.Title + " " + p.Category
	}

	matches := fuzzy.Find(query, targets)
	sort.Stable(matches)

	out := make([]Prayer, 0, len(matches))
	for _, m := range matches {
		out = append(out, c.prayers[m.Index])
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
