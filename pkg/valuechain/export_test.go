package valuechain

import (
	"testing"

	"ai-usecase-explorer-be/pkg/apperror"
	"ai-usecase-explorer-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportFixture() (*Document, map[string][]llm.Message) {
	doc := &Document{
		Name:  "Procurement",
		Kind:  KindCustom,
		Steps: []string{"Sourcing", "Contracting"},
		UseCases: map[string][]Entry{
			"Sourcing":    {{Label: "RFP drafting"}, {Label: "Bid summaries", Explanation: "Summarizes bids."}},
			"Contracting": {{Label: "Clause review"}},
		},
	}
	sessions := map[string][]llm.Message{
		"0-1": {
			{Role: llm.RoleAssistant, Content: "Summarizes bids."},
			{Role: llm.RoleUser, Content: "How does it handle PDFs?"},
			{Role: llm.RoleAssistant, Content: "Via a conversion step."},
		},
	}
	return doc, sessions
}

func TestExportImportRoundTrip(t *testing.T) {
	doc, sessions := exportFixture()

	blob, err := Export(doc, sessions)
	require.NoError(t, err)

	gotDoc, gotSessions, err := Import(blob)
	require.NoError(t, err)

	assert.Equal(t, doc.Name, gotDoc.Name)
	assert.Equal(t, doc.Kind, gotDoc.Kind)
	assert.Equal(t, doc.Steps, gotDoc.Steps)
	assert.Equal(t, doc.UseCases, gotDoc.UseCases)
	assert.Equal(t, sessions, gotSessions)
}

func TestImportAcceptsLegacySessionsField(t *testing.T) {
	blob := []byte(`{
		"name": "Procurement",
		"valueChain": ["Sourcing"],
		"useCases": {"Sourcing": ["RFP drafting"]},
		"sessions": {"0-0": [{"role": "assistant", "content": "Hello"}]}
	}`)

	doc, sessions, err := Import(blob)
	require.NoError(t, err)

	assert.Equal(t, "Procurement", doc.Name)
	require.Contains(t, sessions, "0-0")
	assert.Equal(t, "Hello", sessions["0-0"][0].Content)
}

func TestImportDefaultsMissingSessions(t *testing.T) {
	blob := []byte(`{"name": "Procurement", "valueChain": ["Sourcing"], "useCases": {}}`)

	_, sessions, err := Import(blob)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.NotNil(t, sessions)
}

func TestImportRejectsInvalidJSON(t *testing.T) {
	_, _, err := Import([]byte("{not json"))

	var importErr *apperror.ImportParseError
	require.ErrorAs(t, err, &importErr)
}
