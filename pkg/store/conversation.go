package store

import "ai-usecase-explorer-be/pkg/llm"

// Conversation is the in-memory chat state attached to one use-case box.
// Once created, Messages is never empty: the first entry is always an
// assistant message (a cached explanation, a loading placeholder later
// replaced, or a generated explanation).
type Conversation struct {
	Key      string        `json:"-"` // use-case identity key, e.g. "2-1"
	Status   string        `json:"-"` // LOADING | READY
	Messages []llm.Message `json:"messages"`
}

const (
	StatusLoading = "LOADING"
	StatusReady   = "READY"
)
