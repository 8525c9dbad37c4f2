package model

// Todo represents a single to-do item.
//
// Every item belongs to exactly one user (UserID is a NOT NULL foreign key
// with ON DELETE CASCADE). Ownership is enforced at the repository level:
// every query filters by user_id, so an item you don't own looks exactly
// like an item that doesn't exist.
type Todo struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	IsDone bool   `json:"isDone"`
	UserID int64  `json:"userId"`
}
