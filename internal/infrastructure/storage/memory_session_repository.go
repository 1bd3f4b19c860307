package storage

import (
	"context"
	"sync"

	"puzzle-bot/internal/domain/entity"
	"puzzle-bot/internal/domain/port"
)

// MemorySessionRepository in-memory хранилище сессий
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[int64]*entity.Session
}

// NewMemorySessionRepository создаёт новое in-memory хранилище
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[int64]*entity.Session),
	}
}

// Get возвращает сессию чата, создаёт новую если не найдена
func (r *MemorySessionRepository) Get(ctx context.Context, chatID int64) (*entity.Session, error) {
	r.mu.RLock()
	session, exists := r.sessions[chatID]
	r.mu.RUnlock()

	if exists {
		return session, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Пока ждали блокировку, сессию мог создать другой вызов
	if session, exists := r.sessions[chatID]; exists {
		return session, nil
	}

	session = entity.NewSession(chatID)
	r.sessions[chatID] = session

	return session, nil
}

// Save сохраняет состояние сессии
func (r *MemorySessionRepository) Save(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	r.sessions[session.ChatID] = session
	r.mu.Unlock()

	return nil
}

// Проверка реализации интерфейса
var _ port.SessionRepository = (*MemorySessionRepository)(nil)
