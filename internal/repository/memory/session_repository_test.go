package memory

import (
	"testing"

	"ai-usecase-explorer-be/pkg/llm"
	"ai-usecase-explorer-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndGet(t *testing.T) {
	repo := NewSessionRepository()

	repo.Save(&store.Conversation{
		Key:      "0-1",
		Status:   store.StatusReady,
		Messages: []llm.Message{{Role: llm.RoleAssistant, Content: "hi"}},
	})

	conv, found := repo.Get("0-1")
	require.True(t, found)
	assert.Equal(t, store.StatusReady, conv.Status)
	require.Len(t, conv.Messages, 1)

	_, found = repo.Get("9-9")
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	repo := NewSessionRepository()
	repo.Save(&store.Conversation{Key: "0-0", Status: store.StatusLoading})

	repo.Delete("0-0")

	_, found := repo.Get("0-0")
	assert.False(t, found)
}

func TestAllAndFlush(t *testing.T) {
	repo := NewSessionRepository()
	repo.Save(&store.Conversation{Key: "0-0", Status: store.StatusReady})
	repo.Save(&store.Conversation{Key: "1-2", Status: store.StatusReady})

	all := repo.All()
	assert.Len(t, all, 2)
	assert.Contains(t, all, "0-0")
	assert.Contains(t, all, "1-2")

	repo.Flush()
	assert.Empty(t, repo.All())
}
