package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	dom "github.com/Akshay-Unavane/To-Do-App/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoRepo provides todo persistence. Every method takes the owning user id
// and filters by it; there is no way to touch another user's rows through
// this interface.
type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	List(ctx context.Context, userID int64) ([]dom.Todo, error)
	Update(ctx context.Context, userID, id int64, text *string, completed *bool) (int64, error)
	Delete(ctx context.Context, userID, id int64) (int64, error)
	ListAll(ctx context.Context) ([]dom.Todo, error)
}

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().UnixMilli()
	}
	query := `
		INSERT INTO todos (user_id, user_name, text, completed, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, user_name, text, completed, created_at`
	var out dom.Todo
	err := r.db.QueryRow(ctx, query, t.UserID, t.UserName, t.Text, t.Completed, t.CreatedAt).Scan(
		&out.ID, &out.UserID, &out.UserName, &out.Text, &out.Completed, &out.CreatedAt,
	)
	return out, err
}

func (r *PGTodoRepo) List(ctx context.Context, userID int64) ([]dom.Todo, error) {
	query := `
		SELECT id, user_id, user_name, text, completed, created_at
		FROM todos WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		var t dom.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.UserName, &t.Text, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update sets the provided fields on the row matching (id, user_id) and
// returns the number of rows matched: 0 or 1. A wrong id and an id owned by
// someone else are indistinguishable from the result.
func (r *PGTodoRepo) Update(ctx context.Context, userID, id int64, text *string, completed *bool) (int64, error) {
	sets := make([]string, 0, 2)
	args := []interface{}{id, userID}
	if text != nil {
		args = append(args, *text)
		sets = append(sets, fmt.Sprintf("text = $%d", len(args)))
	}
	if completed != nil {
		args = append(args, *completed)
		sets = append(sets, fmt.Sprintf("completed = $%d", len(args)))
	}
	if len(sets) == 0 {
		return 0, nil
	}
	query := `UPDATE todos SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes the row matching (id, user_id) and returns the number of
// rows removed: 0 or 1.
func (r *PGTodoRepo) Delete(ctx context.Context, userID, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListAll returns every todo. Used only by the admin debug dump.
func (r *PGTodoRepo) ListAll(ctx context.Context) ([]dom.Todo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, user_name, text, completed, created_at
		FROM todos ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		var t dom.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.UserName, &t.Text, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
