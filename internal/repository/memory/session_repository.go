package memory

import (
	"ai-usecase-explorer-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps the per-use-case conversations for the active
// document. Entries never expire on their own; they live until the user
// navigates back or imports a different configuration.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(cache.NoExpiration, 0)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(conv *store.Conversation) {
	r.cache.Set(conv.Key, conv, cache.NoExpiration)
}

func (r *SessionRepository) Get(key string) (*store.Conversation, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(*store.Conversation), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(key string) {
	r.cache.Delete(key)
}

// All returns every live conversation keyed by use-case identity.
func (r *SessionRepository) All() map[string]*store.Conversation {
	items := r.cache.Items()
	out := make(map[string]*store.Conversation, len(items))
	for key, item := range items {
		out[key] = item.Object.(*store.Conversation)
	}
	return out
}

func (r *SessionRepository) Flush() {
	r.cache.Flush()
}
