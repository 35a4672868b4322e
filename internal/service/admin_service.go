package service

import (
	"context"

	dom "github.com/Akshay-Unavane/To-Do-App/internal/domain"
	"github.com/Akshay-Unavane/To-Do-App/internal/repo"

	"golang.org/x/sync/singleflight"
)

// Dump is everything the debug endpoint exposes. Users carry no password
// hash by the time they reach the handler.
type Dump struct {
	Users []dom.User
	Todos []dom.Todo
}

// AdminService produces the full-table dump behind /admin/debug. Concurrent
// dumps collapse into a single pair of queries.
type AdminService struct {
	users repo.UserRepo
	todos repo.TodoRepo
	sf    singleflight.Group
}

func NewAdminService(users repo.UserRepo, todos repo.TodoRepo) *AdminService {
	return &AdminService{users: users, todos: todos}
}

func (s *AdminService) Dump(ctx context.Context) (Dump, error) {
	v, err, _ := s.sf.Do("dump", func() (interface{}, error) {
		users, err := s.users.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		todos, err := s.todos.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return Dump{Users: users, Todos: todos}, nil
	})
	if err != nil {
		return Dump{}, err
	}
	return v.(Dump), nil
}
