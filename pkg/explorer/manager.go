package explorer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-usecase-explorer-be/pkg/apperror"
	"ai-usecase-explorer-be/pkg/events"
	"ai-usecase-explorer-be/pkg/llm"
	"ai-usecase-explorer-be/pkg/store"
)

// Manager maps use-case identities to conversations: it lazily seeds the
// first assistant message (cached explanation or async generation) and
// extends conversations with bounded-context chat turns.
//
// Rapid repeated sends to the same open conversation are not serialized;
// the UI is expected to disable input while a request is in flight. The
// only mandated race guard is the epoch check on async generation.
type Manager struct {
	state     *State
	provider  llm.Provider
	publisher events.Publisher
	logger    *log.Logger
}

func NewManager(state *State, provider llm.Provider, publisher events.Publisher, logger *log.Logger) *Manager {
	return &Manager{
		state:     state,
		provider:  provider,
		publisher: publisher,
		logger:    logger,
	}
}

// Open returns the conversation for a use case, creating it on first
// interaction. When the document carries a precomputed explanation the
// session is ready immediately and no completion request is issued.
// Otherwise the caller gets a loading placeholder right away and the
// explanation is requested in the background.
func (m *Manager) Open(id UseCaseID) ([]llm.Message, string, error) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	doc := m.state.doc
	if doc == nil {
		return nil, "", apperror.NewValidation("no active value chain")
	}

	stepIndex := doc.StepIndex(id.Step)
	if stepIndex < 0 {
		return nil, "", apperror.NewValidation("unknown value chain step: %s", id.Step)
	}
	key := id.key(stepIndex)

	if conv, found := m.state.sessions.Get(key); found {
		return copyMessages(conv.Messages), conv.Status, nil
	}

	entry, ok := doc.EntryAt(id.Step, id.Index)
	if !ok {
		return nil, "", apperror.NewValidation("unknown use case at %s[%d]", id.Step, id.Index)
	}

	if entry.Explanation != "" {
		conv := &store.Conversation{
			Key:    key,
			Status: store.StatusReady,
			Messages: []llm.Message{
				{Role: llm.RoleAssistant, Content: entry.Explanation},
			},
		}
		m.state.sessions.Save(conv)
		return copyMessages(conv.Messages), conv.Status, nil
	}

	conv := &store.Conversation{
		Key:    key,
		Status: store.StatusLoading,
		Messages: []llm.Message{
			{Role: llm.RoleAssistant, Content: placeholderExplanation},
		},
	}
	m.state.sessions.Save(conv)

	epoch := m.state.epoch
	go m.generateExplanation(key, epoch, doc.Name, id)

	return copyMessages(conv.Messages), conv.Status, nil
}

func (m *Manager) generateExplanation(key string, epoch uint64, docName string, id UseCaseID) {
	userMessage := fmt.Sprintf(explanationUserTemplate, id.Label, id.Step, docName)

	text, err := llm.Complete(context.Background(), m.provider, explanationSystemPrompt, userMessage)
	if err != nil {
		if m.logger != nil {
			m.logger.Printf("explanation generation failed for %s: %v", key, err)
		}
		text = fmt.Sprintf(fallbackIntroTemplate, id.Label, id.Step)
	}

	m.CompleteGeneration(key, epoch, text)
}

// CompleteGeneration replaces the loading placeholder with the generated
// explanation. A stale result (the active document changed while the
// request was in flight) is discarded.
func (m *Manager) CompleteGeneration(key string, epoch uint64, text string) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	if epoch != m.state.epoch {
		return
	}

	conv, found := m.state.sessions.Get(key)
	if !found || conv.Status != store.StatusLoading {
		return
	}

	conv.Messages[0] = llm.Message{Role: llm.RoleAssistant, Content: text}
	conv.Status = store.StatusReady
	m.state.sessions.Save(conv)

	if m.publisher != nil {
		_ = m.publisher.Publish(events.NewExplanationReady(key, text))
	}
}

// SendTurn appends the user message synchronously, then requests a reply
// built from the chat system prompt plus a window of at most the last
// five messages. On failure a fixed apology is appended instead; a broken
// conversation message is preferable to an unusable dialog.
func (m *Manager) SendTurn(ctx context.Context, id UseCaseID, userText string) (llm.Message, error) {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return llm.Message{}, apperror.NewValidation("message must not be empty")
	}

	m.state.mu.Lock()

	doc := m.state.doc
	if doc == nil {
		m.state.mu.Unlock()
		return llm.Message{}, apperror.NewValidation("no active value chain")
	}
	stepIndex := doc.StepIndex(id.Step)
	if stepIndex < 0 {
		m.state.mu.Unlock()
		return llm.Message{}, apperror.NewValidation("unknown value chain step: %s", id.Step)
	}
	key := id.key(stepIndex)

	conv, found := m.state.sessions.Get(key)
	if !found {
		m.state.mu.Unlock()
		return llm.Message{}, apperror.NewValidation("open the use case before chatting")
	}

	conv.Messages = append(conv.Messages, llm.Message{Role: llm.RoleUser, Content: userText})
	m.state.sessions.Save(conv)

	window := contextWindow(conv.Messages)
	epoch := m.state.epoch
	m.state.mu.Unlock()

	userMessage := fmt.Sprintf("Context: %s\n\nUser question: %s", window, userText)

	var reply llm.Message
	text, err := llm.Complete(ctx, m.provider, chatSystemPrompt, userMessage)
	if err != nil {
		if m.logger != nil {
			m.logger.Printf("chat turn failed for %s: %v", key, err)
		}
		reply = llm.Message{Role: llm.RoleAssistant, Content: apologyReply}
	} else {
		reply = llm.Message{Role: llm.RoleAssistant, Content: text}
	}

	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	// The caller still gets the reply; only the stored session mutation is
	// skipped once the document changed underneath the request.
	if epoch == m.state.epoch {
		if conv, found := m.state.sessions.Get(key); found {
			conv.Messages = append(conv.Messages, reply)
			m.state.sessions.Save(conv)
			if m.publisher != nil {
				_ = m.publisher.Publish(events.NewReplyAppended(key))
			}
		}
	}

	return reply, nil
}

// contextWindow folds the trailing messages into a role-prefixed,
// newline-joined transcript, capped at contextWindowSize entries.
func contextWindow(messages []llm.Message) string {
	start := 0
	if len(messages) > contextWindowSize {
		start = len(messages) - contextWindowSize
	}

	lines := make([]string, 0, contextWindowSize)
	for _, msg := range messages[start:] {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	return strings.Join(lines, "\n")
}

func copyMessages(messages []llm.Message) []llm.Message {
	out := make([]llm.Message, len(messages))
	copy(out, messages)
	return out
}
