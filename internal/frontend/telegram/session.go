package telegram

import (
	"sync"

	"github.com/cinescout/cinescout/internal/search"
)

// sessionManager manages per-chat search sessions and access control.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[int64]*search.Session
	allowed  map[int64]bool // nil or empty = allow all
}

// newSessionManager creates a session manager.
// If allowedChatIDs is empty, all chats are allowed.
func newSessionManager(allowedChatIDs []int64) *sessionManager {
	allowed := make(map[int64]bool, len(allowedChatIDs))
	for _, id := range allowedChatIDs {
		allowed[id] = true
	}
	return &sessionManager{
		sessions: make(map[int64]*search.Session),
		allowed:  allowed,
	}
}

// isAllowed checks if a chat is authorized to use the bot.
func (sm *sessionManager) isAllowed(chatID int64) bool {
	if len(sm.allowed) == 0 {
		return true
	}
	return sm.allowed[chatID]
}

// getOrCreate returns an existing session or creates a fresh one. The second
// return value reports whether the session was just created, so the caller
// can populate its genre cache once.
func (sm *sessionManager) getOrCreate(chatID int64, factory func() *search.Session) (*search.Session, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if s, ok := sm.sessions[chatID]; ok {
		return s, false
	}
	s := factory()
	sm.sessions[chatID] = s
	return s, true
}
