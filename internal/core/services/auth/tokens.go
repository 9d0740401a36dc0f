package auth

import "sync"

// MemoryTokens is a process-local TokenStore.
type MemoryTokens struct {
	mu    sync.RWMutex
	token string
}

func (t *MemoryTokens) Token() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

func (t *MemoryTokens) SetToken(token string) {
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}

func (t *MemoryTokens) ClearToken() {
	t.SetToken("")
}
