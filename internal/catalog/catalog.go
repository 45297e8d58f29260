// Package catalog exposes the curriculum content: which programming
// languages exist and which topics each one offers. The content itself is
// static JSON compiled into the binary; the rest of the system only ever
// consumes it as an enumerable list of topic identifiers.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed curriculum.json
var curriculumJSON []byte

// Topic is one teachable unit within a language curriculum.
type Topic struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// Catalog is the parsed curriculum, keyed by programming language id.
type Catalog struct {
	languages map[string][]Topic
}

// Load parses the embedded curriculum.
func Load() (*Catalog, error) {
	var raw map[string][]Topic
	if err := json.Unmarshal(curriculumJSON, &raw); err != nil {
		return nil, fmt.Errorf("catalog: parse curriculum: %w", err)
	}
	return &Catalog{languages: raw}, nil
}

// Languages lists the available programming language ids, sorted.
func (c *Catalog) Languages() []string {
	langs := make([]string, 0, len(c.languages))
	for id := range c.languages {
		langs = append(langs, id)
	}
	sort.Strings(langs)
	return langs
}

// HasLanguage reports whether the curriculum covers a language.
func (c *Catalog) HasLanguage(languageID string) bool {
	_, ok := c.languages[languageID]
	return ok
}

// Topics returns the topics of a language; unknown languages yield nil.
func (c *Catalog) Topics(languageID string) []Topic {
	return c.languages[languageID]
}

// TopicIDs returns just the identifiers of a language's topics.
func (c *Catalog) TopicIDs(languageID string) []string {
	topics := c.languages[languageID]
	ids := make([]string, len(topics))
	for i, t := range topics {
		ids[i] = t.ID
	}
	return ids
}

// IsTopic reports whether a topic exists in a language's curriculum.
func (c *Catalog) IsTopic(languageID, topicID string) bool {
	for _, t := range c.languages[languageID] {
		if t.ID == topicID {
			return true
		}
	}
	return false
}
