package app

import (
	"context"
	"errors"
	"sync"

	"puzzle-bot/internal/domain/port"
)

// WorkflowService держит по одному контроллеру на чат
type WorkflowService struct {
	deps        Deps
	mu          sync.Mutex
	controllers map[int64]*Controller
}

// NewWorkflowService создаёт сервис рабочих процессов
func NewWorkflowService(deps Deps) *WorkflowService {
	return &WorkflowService{
		deps:        deps,
		controllers: make(map[int64]*Controller),
	}
}

// Controller возвращает контроллер чата, создаёт его при первом обращении.
// view используется только при создании.
func (s *WorkflowService) Controller(ctx context.Context, chatID int64, view port.View) (*Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.controllers[chatID]; ok {
		return c, nil
	}

	session, err := s.deps.Sessions.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	c := NewController(session, view, s.deps)
	s.controllers[chatID] = c
	return c, nil
}

// Wait ждёт завершения всех запущенных анализов
func (s *WorkflowService) Wait() {
	for _, c := range s.snapshot() {
		c.Wait()
	}
}

// Close освобождает камеры всех чатов
func (s *WorkflowService) Close() error {
	var errs []error
	for _, c := range s.snapshot() {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *WorkflowService) snapshot() []*Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Controller, 0, len(s.controllers))
	for _, c := range s.controllers {
		out = append(out, c)
	}
	return out
}
