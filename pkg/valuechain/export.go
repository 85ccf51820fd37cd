package valuechain

import (
	"encoding/json"

	"ai-usecase-explorer-be/pkg/apperror"
	"ai-usecase-explorer-be/pkg/llm"
)

// exportFile is the on-disk shape: all document fields spread at the top
// level plus the chat sessions keyed by use-case identity. Older export
// files used a "sessions" field; both are accepted on import.
type exportFile struct {
	Document
	ChatSessions map[string][]llm.Message `json:"chatSessions,omitempty"`
	Sessions     map[string][]llm.Message `json:"sessions,omitempty"`
}

// Export merges the document with the session mapping into one JSON blob.
// Field order is not significant; round-trip fidelity is.
func Export(doc *Document, sessions map[string][]llm.Message) ([]byte, error) {
	out := exportFile{
		Document:     *doc,
		ChatSessions: sessions,
	}
	return json.MarshalIndent(out, "", "  ")
}

// Import parses an export blob back into a document and its session
// mapping. Invalid JSON is an ImportParseError; the caller keeps its
// prior state untouched in that case.
func Import(blob []byte) (*Document, map[string][]llm.Message, error) {
	var in exportFile
	if err := json.Unmarshal(blob, &in); err != nil {
		return nil, nil, apperror.NewImportParse("error importing configuration file: %v", err)
	}

	doc := in.Document
	if doc.UseCases == nil {
		doc.UseCases = map[string][]Entry{}
	}

	sessions := in.ChatSessions
	if sessions == nil {
		sessions = in.Sessions
	}
	if sessions == nil {
		sessions = map[string][]llm.Message{}
	}

	return &doc, sessions, nil
}
