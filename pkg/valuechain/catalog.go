package valuechain

import (
	"encoding/json"
	"os"
	"sort"
)

// Catalog holds the predefined value-chain documents keyed by industry or
// business-function key.
type Catalog struct {
	docs map[string]*Document
}

// LoadCatalog reads the static catalog file. Any failure degrades to an
// empty catalog so the explorer still works in custom-only mode; the
// caller decides whether to log the reason.
func LoadCatalog(path string) (*Catalog, error) {
	catalog := &Catalog{docs: map[string]*Document{}}

	data, err := os.ReadFile(path)
	if err != nil {
		return catalog, err
	}

	var docs map[string]*Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return catalog, err
	}

	for key, doc := range docs {
		if doc == nil {
			continue
		}
		if doc.Kind == "" {
			doc.Kind = KindPredefined
		}
		catalog.docs[key] = doc
	}
	return catalog, nil
}

func NewCatalog(docs map[string]*Document) *Catalog {
	if docs == nil {
		docs = map[string]*Document{}
	}
	return &Catalog{docs: docs}
}

func (c *Catalog) Get(key string) (*Document, bool) {
	doc, ok := c.docs[key]
	return doc, ok
}

func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.docs))
	for key := range c.docs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
