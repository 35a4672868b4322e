package domain

// Domain entity: бизнес-объект (истина).
// Не зависит от Gin, Postgres, Redis.
type Todo struct {
	ID        int64
	UserID    int64
	UserName  string // snapshot of the owner's name at creation; may drift after a rename
	Text      string
	Completed bool

	// CreatedAt is epoch milliseconds, immutable after insert.
	CreatedAt int64
}
