package explorer

import (
	"sync"

	"ai-usecase-explorer-be/internal/repository/memory"
	"ai-usecase-explorer-be/pkg/llm"
	"ai-usecase-explorer-be/pkg/store"
	"ai-usecase-explorer-be/pkg/valuechain"
)

// State owns the active value-chain document and the session mapping
// scoped to its lifetime. There is exactly one State per process; every
// operation goes through it explicitly instead of module-level globals.
//
// The epoch counter is the race guard: it increments whenever the active
// document changes, and every async generation carries the epoch it was
// issued under. A response arriving after the user navigated away is
// discarded instead of corrupting an unrelated session.
type State struct {
	mu       sync.Mutex
	doc      *valuechain.Document
	epoch    uint64
	sessions *memory.SessionRepository
}

func NewState(sessions *memory.SessionRepository) *State {
	return &State{sessions: sessions}
}

// SetDocument activates a freshly resolved document, clearing any
// sessions that belonged to the previous one.
func (s *State) SetDocument(doc *valuechain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.sessions.Flush()
	s.doc = doc
}

// Reset clears the active document and all sessions (navigate-back).
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.sessions.Flush()
	s.doc = nil
}

// Hydrate replaces the whole state from an imported configuration.
// Imported conversations are ready by definition; entries with no
// messages are dropped to keep the never-empty invariant.
func (s *State) Hydrate(doc *valuechain.Document, sessions map[string][]llm.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.sessions.Flush()
	s.doc = doc
	for key, messages := range sessions {
		if len(messages) == 0 {
			continue
		}
		s.sessions.Save(&store.Conversation{
			Key:      key,
			Status:   store.StatusReady,
			Messages: messages,
		})
	}
}

// Document returns the active document, or nil when the user is still on
// the selection screen.
func (s *State) Document() *valuechain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Snapshot captures the document plus the session mapping for export.
// Message slices are copied so the export blob is unaffected by chat
// turns that land afterwards.
func (s *State) Snapshot() (*valuechain.Document, map[string][]llm.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, nil
	}

	sessions := map[string][]llm.Message{}
	for key, conv := range s.sessions.All() {
		messages := make([]llm.Message, len(conv.Messages))
		copy(messages, conv.Messages)
		sessions[key] = messages
	}
	return s.doc, sessions
}
