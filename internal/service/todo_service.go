package service

import (
	"context"
	"errors"
	"strings"

	dom "github.com/Akshay-Unavane/To-Do-App/internal/domain"
	"github.com/Akshay-Unavane/To-Do-App/internal/repo"
)

var ErrEmptyText = errors.New("text required")

// TodoService holds todo rules. Every call takes the verified caller's user
// id; the repo filters on it, so the service never sees another user's rows.
type TodoService struct {
	repo repo.TodoRepo
}

func NewTodoService(r repo.TodoRepo) *TodoService {
	return &TodoService{repo: r}
}

// List returns the caller's todos newest first. Always a fresh query.
func (s *TodoService) List(ctx context.Context, userID int64) ([]dom.Todo, error) {
	return s.repo.List(ctx, userID)
}

// Create adds a todo for the caller. Text is trimmed; empty or
// whitespace-only text fails with ErrEmptyText. userName is stored as a
// snapshot of the caller's name at creation time.
func (s *TodoService) Create(ctx context.Context, userID int64, userName, text string) (dom.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return dom.Todo{}, ErrEmptyText
	}
	return s.repo.Create(ctx, dom.Todo{
		UserID:   userID,
		UserName: userName,
		Text:     text,
	})
}

// Update patches text and/or completed on the caller's todo and returns how
// many rows matched (0 or 1). A todo that does not exist and one owned by
// another user both report 0. A body with neither field is a no-op.
func (s *TodoService) Update(ctx context.Context, userID, id int64, text *string, completed *bool) (int64, error) {
	if text != nil {
		trimmed := strings.TrimSpace(*text)
		if trimmed == "" {
			return 0, ErrEmptyText
		}
		text = &trimmed
	}
	if text == nil && completed == nil {
		return 0, nil
	}
	return s.repo.Update(ctx, userID, id, text, completed)
}

// Delete removes the caller's todo and returns how many rows went away
// (0 or 1). Deleting twice reports 1 then 0.
func (s *TodoService) Delete(ctx context.Context, userID, id int64) (int64, error) {
	return s.repo.Delete(ctx, userID, id)
}
