package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"ai-usecase-explorer-be/internal/repository/memory"
	"ai-usecase-explorer-be/pkg/apperror"
	"ai-usecase-explorer-be/pkg/events"
	"ai-usecase-explorer-be/pkg/llm"
	"ai-usecase-explorer-be/pkg/store"
	"ai-usecase-explorer-be/pkg/valuechain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu         sync.Mutex
	calls      int
	lastSystem string
	lastUser   string
	response   string
	err        error
	gate       chan struct{} // when set, Chat blocks until the gate closes
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.mu.Lock()
	f.calls++
	if len(history) == 2 {
		f.lastSystem = history[0].Content
		f.lastUser = history[1].Content
	}
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

func testDocument() *valuechain.Document {
	return &valuechain.Document{
		Name:  "Procurement",
		Kind:  valuechain.KindCustom,
		Steps: []string{"Sourcing", "Contracting"},
		UseCases: map[string][]valuechain.Entry{
			"Sourcing": {
				{Label: "RFP drafting"},
				{Label: "Bid summaries", Explanation: "Summarizes supplier bids."},
			},
			"Contracting": {
				{Label: "Clause review"},
			},
		},
	}
}

func newTestManager(provider *fakeProvider) (*Manager, *State, *fakePublisher) {
	state := NewState(memory.NewSessionRepository())
	publisher := &fakePublisher{}
	manager := NewManager(state, provider, publisher, nil)
	return manager, state, publisher
}

func waitReady(t *testing.T, state *State, key string) *store.Conversation {
	t.Helper()
	var conv *store.Conversation
	require.Eventually(t, func() bool {
		state.mu.Lock()
		defer state.mu.Unlock()
		c, found := state.sessions.Get(key)
		if found && c.Status == store.StatusReady {
			conv = c
			return true
		}
		return false
	}, time.Second, 5*time.Millisecond)
	return conv
}

func TestOpenWithPrecomputedExplanationMakesNoRequest(t *testing.T) {
	provider := &fakeProvider{response: "should not be used"}
	manager, state, _ := newTestManager(provider)
	state.SetDocument(testDocument())

	messages, status, err := manager.Open(UseCaseID{Step: "Sourcing", Label: "Bid summaries", Index: 1})
	require.NoError(t, err)

	assert.Equal(t, store.StatusReady, status)
	require.Len(t, messages, 1)
	assert.Equal(t, llm.RoleAssistant, messages[0].Role)
	assert.Equal(t, "Summarizes supplier bids.", messages[0].Content)
	assert.Equal(t, 0, provider.callCount())
}

func TestOpenGeneratesExplanationExactlyOnce(t *testing.T) {
	provider := &fakeProvider{response: "Generated explanation."}
	manager, state, publisher := newTestManager(provider)
	state.SetDocument(testDocument())

	id := UseCaseID{Step: "Sourcing", Label: "RFP drafting", Index: 0}
	messages, status, err := manager.Open(id)
	require.NoError(t, err)

	// The caller can render immediately: a one-message placeholder.
	assert.Equal(t, store.StatusLoading, status)
	require.Len(t, messages, 1)
	assert.Equal(t, placeholderExplanation, messages[0].Content)

	conv := waitReady(t, state, "0-0")
	assert.Equal(t, "Generated explanation.", conv.Messages[0].Content)
	assert.Equal(t, 1, provider.callCount())
	assert.Contains(t, publisher.types(), events.TypeExplanationReady)

	// Reopening returns the session unchanged without another request.
	messages, status, err = manager.Open(id)
	require.NoError(t, err)
	assert.Equal(t, store.StatusReady, status)
	assert.Equal(t, "Generated explanation.", messages[0].Content)
	assert.Equal(t, 1, provider.callCount())
}

func TestOpenGenerationFailureAppliesFallback(t *testing.T) {
	provider := &fakeProvider{err: errors.New("backend down")}
	manager, state, _ := newTestManager(provider)
	state.SetDocument(testDocument())

	_, status, err := manager.Open(UseCaseID{Step: "Sourcing", Label: "RFP drafting", Index: 0})
	require.NoError(t, err)
	assert.Equal(t, store.StatusLoading, status)

	conv := waitReady(t, state, "0-0")
	want := fmt.Sprintf(fallbackIntroTemplate, "RFP drafting", "Sourcing")
	assert.Equal(t, want, conv.Messages[0].Content)
}

func TestStaleGenerationIsDiscarded(t *testing.T) {
	gate := make(chan struct{})
	provider := &fakeProvider{response: "Late explanation.", gate: gate}
	manager, state, _ := newTestManager(provider)
	state.SetDocument(testDocument())

	_, _, err := manager.Open(UseCaseID{Step: "Sourcing", Label: "RFP drafting", Index: 0})
	require.NoError(t, err)

	// The user switches to a different document while the request is in
	// flight.
	state.SetDocument(&valuechain.Document{
		Name:  "Logistics",
		Steps: []string{"Inbound"},
		UseCases: map[string][]valuechain.Entry{
			"Inbound": {{Label: "ASN parsing"}},
		},
	})

	close(gate)

	require.Eventually(t, func() bool {
		return provider.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	require.Never(t, func() bool {
		state.mu.Lock()
		defer state.mu.Unlock()
		_, found := state.sessions.Get("0-0")
		return found
	}, 200*time.Millisecond, 10*time.Millisecond, "late result must not seed a session on the new document")
}

func TestCompleteGenerationWithStaleEpochIsNoOp(t *testing.T) {
	provider := &fakeProvider{}
	manager, state, _ := newTestManager(provider)
	state.SetDocument(testDocument())

	state.mu.Lock()
	staleEpoch := state.epoch - 1
	state.sessions.Save(&store.Conversation{
		Key:      "0-0",
		Status:   store.StatusLoading,
		Messages: []llm.Message{{Role: llm.RoleAssistant, Content: placeholderExplanation}},
	})
	state.mu.Unlock()

	manager.CompleteGeneration("0-0", staleEpoch, "stale text")

	state.mu.Lock()
	defer state.mu.Unlock()
	conv, found := state.sessions.Get("0-0")
	require.True(t, found)
	assert.Equal(t, store.StatusLoading, conv.Status)
	assert.Equal(t, placeholderExplanation, conv.Messages[0].Content)
}

func TestSendTurnAppendsUserThenReply(t *testing.T) {
	provider := &fakeProvider{response: "Here is how it works."}
	manager, state, publisher := newTestManager(provider)
	state.SetDocument(testDocument())

	id := UseCaseID{Step: "Sourcing", Label: "Bid summaries", Index: 1}
	_, _, err := manager.Open(id)
	require.NoError(t, err)

	reply, err := manager.SendTurn(context.Background(), id, "How does it work?")
	require.NoError(t, err)
	assert.Equal(t, llm.RoleAssistant, reply.Role)
	assert.Equal(t, "Here is how it works.", reply.Content)

	state.mu.Lock()
	conv, found := state.sessions.Get("0-1")
	state.mu.Unlock()
	require.True(t, found)
	require.Len(t, conv.Messages, 3)
	assert.Equal(t, llm.RoleUser, conv.Messages[1].Role)
	assert.Equal(t, "How does it work?", conv.Messages[1].Content)
	assert.Equal(t, "Here is how it works.", conv.Messages[2].Content)

	assert.Contains(t, provider.lastSystem, "AI expert")
	assert.Contains(t, provider.lastUser, "Context: ")
	assert.Contains(t, provider.lastUser, "User question: How does it work?")
	assert.Contains(t, publisher.types(), events.TypeReplyAppended)
}

func TestSendTurnContextWindowIsCapped(t *testing.T) {
	provider := &fakeProvider{response: "ok"}
	manager, state, _ := newTestManager(provider)
	state.SetDocument(testDocument())

	id := UseCaseID{Step: "Sourcing", Label: "Bid summaries", Index: 1}
	_, _, err := manager.Open(id)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := manager.SendTurn(context.Background(), id, fmt.Sprintf("question %d", i))
		require.NoError(t, err)
	}

	// conversation now holds 1 + 4*2 = 9 messages; the context folded into
	// the last request must carry no more than 5 of them.
	contextPart := provider.lastUser
	contextPart = strings.TrimPrefix(contextPart, "Context: ")
	if idx := strings.Index(contextPart, "\n\nUser question:"); idx >= 0 {
		contextPart = contextPart[:idx]
	}
	assert.Len(t, strings.Split(contextPart, "\n"), contextWindowSize)
}

func TestSendTurnFailureAppendsApology(t *testing.T) {
	provider := &fakeProvider{err: errors.New("backend down")}
	manager, state, _ := newTestManager(provider)
	state.SetDocument(testDocument())

	id := UseCaseID{Step: "Sourcing", Label: "Bid summaries", Index: 1}
	_, _, err := manager.Open(id)
	require.NoError(t, err)

	reply, err := manager.SendTurn(context.Background(), id, "hello")
	require.NoError(t, err)
	assert.Equal(t, apologyReply, reply.Content)

	state.mu.Lock()
	defer state.mu.Unlock()
	conv, _ := state.sessions.Get("0-1")
	require.Len(t, conv.Messages, 3)
	assert.Equal(t, apologyReply, conv.Messages[2].Content)
}

func TestSendTurnRequiresOpenSession(t *testing.T) {
	provider := &fakeProvider{}
	manager, state, _ := newTestManager(provider)
	state.SetDocument(testDocument())

	_, err := manager.SendTurn(context.Background(), UseCaseID{Step: "Sourcing", Label: "RFP drafting", Index: 0}, "hi")
	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, provider.callCount())
}

func TestOpenWithoutDocumentFails(t *testing.T) {
	provider := &fakeProvider{}
	manager, _, _ := newTestManager(provider)

	_, _, err := manager.Open(UseCaseID{Step: "Sourcing", Label: "RFP drafting", Index: 0})
	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestResetClearsDocumentAndSessions(t *testing.T) {
	provider := &fakeProvider{}
	manager, state, _ := newTestManager(provider)
	state.SetDocument(testDocument())

	_, _, err := manager.Open(UseCaseID{Step: "Sourcing", Label: "Bid summaries", Index: 1})
	require.NoError(t, err)

	state.Reset()

	assert.Nil(t, state.Document())
	doc, sessions := state.Snapshot()
	assert.Nil(t, doc)
	assert.Nil(t, sessions)
}

func TestHydrateSeedsReadySessions(t *testing.T) {
	provider := &fakeProvider{}
	manager, state, _ := newTestManager(provider)

	doc := testDocument()
	state.Hydrate(doc, map[string][]llm.Message{
		"0-0": {{Role: llm.RoleAssistant, Content: "Imported explanation."}},
		"1-0": {},
	})

	messages, status, err := manager.Open(UseCaseID{Step: "Sourcing", Label: "RFP drafting", Index: 0})
	require.NoError(t, err)
	assert.Equal(t, store.StatusReady, status)
	assert.Equal(t, "Imported explanation.", messages[0].Content)
	assert.Equal(t, 0, provider.callCount())

	// Empty imported entries are dropped, so opening that use case starts
	// a fresh session.
	_, sessions := state.Snapshot()
	assert.NotContains(t, sessions, "1-0")
}

func TestSnapshotCopiesMessages(t *testing.T) {
	provider := &fakeProvider{response: "reply"}
	manager, state, _ := newTestManager(provider)
	state.SetDocument(testDocument())

	id := UseCaseID{Step: "Sourcing", Label: "Bid summaries", Index: 1}
	_, _, err := manager.Open(id)
	require.NoError(t, err)

	_, snapshot := state.Snapshot()
	require.Len(t, snapshot["0-1"], 1)

	_, err = manager.SendTurn(context.Background(), id, "mutate after snapshot")
	require.NoError(t, err)

	assert.Len(t, snapshot["0-1"], 1, "snapshot must be unaffected by later turns")
}
