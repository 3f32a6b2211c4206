package event

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sen-dwh/aid-etl/internal/normalize"
)

//go:embed data/events.yaml
var eventsYAML []byte

// keywordRule maps label substrings to a category. Rules are ordered;
// the first hit wins.
type keywordRule struct {
	Contains []string `yaml:"contains"`
	Event    string   `yaml:"event"`
}

type eventsFile struct {
	Variants map[string]string `yaml:"variants"`
	Keywords []keywordRule     `yaml:"keywords"`
}

// Categorizer maps raw event labels onto the canonical taxonomy.
type Categorizer struct {
	variants map[string]string
	keywords []keywordRule
}

// NewCategorizer parses the embedded event dictionary, or the file at
// path when non-empty.
func NewCategorizer(path string) (*Categorizer, error) {
	data := eventsYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read events file %s: %w", path, err)
		}
		data = b
	}

	var f eventsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse events dictionary: %w", err)
	}

	c := &Categorizer{
		variants: make(map[string]string, len(f.Variants)),
		keywords: f.Keywords,
	}
	for k, v := range f.Variants {
		c.variants[normalize.Key(k)] = v
	}
	for i := range c.keywords {
		for j, kw := range c.keywords[i].Contains {
			c.keywords[i].Contains[j] = normalize.Key(kw)
		}
	}
	return c, nil
}

// Categorize maps a raw label to its canonical category, the Discard
// sentinel for stock movements, or NoEvent when nothing matches (the
// inferencer takes over from there).
func (c *Categorizer) Categorize(raw string) string {
	clean := normalize.CleanText(raw)
	if normalize.IsUnspecified(clean) {
		return NoEvent
	}
	key := normalize.Key(clean)

	if ev, ok := c.variants[key]; ok {
		return ev
	}

	for _, rule := range c.keywords {
		for _, kw := range rule.Contains {
			if strings.Contains(key, kw) {
				return rule.Event
			}
		}
	}

	return NoEvent
}
