package valuechain

import (
	"encoding/json"
	"strings"
)

const (
	KindPredefined = "predefined"
	KindCustom     = "custom"
)

// Document is one value chain: an ordered sequence of process steps with
// AI use cases attached to each step. Predefined documents come from the
// static catalog; custom ones are generated on demand.
type Document struct {
	Name     string             `json:"name"`
	Kind     string             `json:"type,omitempty"`
	Steps    []string           `json:"valueChain"`
	UseCases map[string][]Entry `json:"useCases"`
}

// Entry is one use case attached to a step. Catalog files exist in two
// shapes: a bare label string, or an object carrying an optional
// precomputed explanation. Both are accepted on read; the object shape is
// always written.
type Entry struct {
	Label       string `json:"label"`
	Explanation string `json:"explanation,omitempty"`
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		e.Label = label
		e.Explanation = ""
		return nil
	}

	var obj struct {
		Label       string `json:"label"`
		Name        string `json:"name"`
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Label = obj.Label
	if e.Label == "" {
		e.Label = obj.Name
	}
	e.Explanation = obj.Explanation
	return nil
}

// StepIndex returns the position of a step label, or -1 when the step is
// not part of this document.
func (d *Document) StepIndex(step string) int {
	for i, s := range d.Steps {
		if s == step {
			return i
		}
	}
	return -1
}

// EntriesFor returns the use cases attached to a step. A step with no use
// cases yields an empty list, never an error.
func (d *Document) EntriesFor(step string) []Entry {
	if d.UseCases == nil {
		return nil
	}
	return d.UseCases[step]
}

// EntryAt resolves a use case by step label and position index.
func (d *Document) EntryAt(step string, index int) (Entry, bool) {
	entries := d.EntriesFor(step)
	if index < 0 || index >= len(entries) {
		return Entry{}, false
	}
	return entries[index], true
}

// ExportFilename derives the download name from the document name:
// lowercase, spaces replaced with hyphens, suffixed "-use-cases.json".
func (d *Document) ExportFilename() string {
	name := strings.ToLower(d.Name)
	name = strings.Join(strings.Fields(name), "-")
	return name + "-use-cases.json"
}
