package dto

// CreateTodoRequest is the JSON body for POST /api/todos.
type CreateTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdateTodoRequest is the JSON body for PUT /api/todos/:id.
// nil = не менять, значение = поставить.
type UpdateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type TodoResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	UserName  string `json:"userName"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"`
}

type ListTodosResponse struct {
	Todos []TodoResponse `json:"todos"`
}

// UpdatedResponse carries the normalized count returned by PUT /api/todos/:id.
type UpdatedResponse struct {
	Updated int64 `json:"updated"`
}

// DeletedResponse carries the normalized count returned by DELETE /api/todos/:id.
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
