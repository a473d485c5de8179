package db

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB / *sql.Tx the queries need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries bundles the SQL statements for the case database.
type Queries struct {
	db DBTX
}

// New creates query helpers over a connection or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns query helpers bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Category is a checklist category row.
type Category struct {
	ID       string
	Label    string
	Color    string
	Position int64
}

// ChecklistItem is a checklist item row.
type ChecklistItem struct {
	ID          string
	CategoryID  string
	Text        string
	Done        int64
	DocumentID  sql.NullString
	StartOffset int64
	EndOffset   int64
	CreatedAt   int64
}

// Message is a chat transcript row.
type Message struct {
	ID          string
	Role        string
	Content     string
	ContextJSON sql.NullString
	CreatedAt   int64
}

// ListCategories returns all categories ordered by position.
func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, label, color, position FROM categories ORDER BY position, label")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Label, &c.Color, &c.Position); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// InsertCategoryParams holds the values for InsertCategory.
type InsertCategoryParams struct {
	ID       string
	Label    string
	Color    string
	Position int64
}

// InsertCategory adds a category.
func (q *Queries) InsertCategory(ctx context.Context, arg InsertCategoryParams) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO categories (id, label, color, position) VALUES (?, ?, ?, ?)",
		arg.ID, arg.Label, arg.Color, arg.Position)
	return err
}

// ListChecklistItems returns all items ordered by creation time.
func (q *Queries) ListChecklistItems(ctx context.Context) ([]ChecklistItem, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, category_id, text, done, document_id, start_offset, end_offset, created_at
		FROM checklist_items ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []ChecklistItem
	for rows.Next() {
		var it ChecklistItem
		if err := rows.Scan(&it.ID, &it.CategoryID, &it.Text, &it.Done,
			&it.DocumentID, &it.StartOffset, &it.EndOffset, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// InsertChecklistItemParams holds the values for InsertChecklistItem.
type InsertChecklistItemParams struct {
	ID          string
	CategoryID  string
	Text        string
	Done        int64
	DocumentID  sql.NullString
	StartOffset int64
	EndOffset   int64
	CreatedAt   int64
}

// InsertChecklistItem adds a checklist item.
func (q *Queries) InsertChecklistItem(ctx context.Context, arg InsertChecklistItemParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO checklist_items (id, category_id, text, done, document_id, start_offset, end_offset, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.CategoryID, arg.Text, arg.Done,
		arg.DocumentID, arg.StartOffset, arg.EndOffset, arg.CreatedAt)
	return err
}

// SetChecklistItemDoneParams holds the values for SetChecklistItemDone.
type SetChecklistItemDoneParams struct {
	ID   string
	Done int64
}

// SetChecklistItemDone flips an item's done flag. Returns sql.ErrNoRows when
// the item does not exist.
func (q *Queries) SetChecklistItemDone(ctx context.Context, arg SetChecklistItemDoneParams) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE checklist_items SET done = ? WHERE id = ?", arg.Done, arg.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteChecklistItem removes an item. Returns sql.ErrNoRows when the item
// does not exist.
func (q *Queries) DeleteChecklistItem(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM checklist_items WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListMessages returns the transcript in insertion order.
func (q *Queries) ListMessages(ctx context.Context) ([]Message, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, role, content, context_json, created_at FROM messages ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &m.ContextJSON, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// InsertMessageParams holds the values for InsertMessage.
type InsertMessageParams struct {
	ID          string
	Role        string
	Content     string
	ContextJSON sql.NullString
	CreatedAt   int64
}

// InsertMessage appends a chat message.
func (q *Queries) InsertMessage(ctx context.Context, arg InsertMessageParams) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO messages (id, role, content, context_json, created_at) VALUES (?, ?, ?, ?, ?)",
		arg.ID, arg.Role, arg.Content, arg.ContextJSON, arg.CreatedAt)
	return err
}

// GetSummary returns the saved summary text. Returns sql.ErrNoRows when no
// summary has been saved yet.
func (q *Queries) GetSummary(ctx context.Context) (string, error) {
	var content string
	err := q.db.QueryRowContext(ctx, "SELECT content FROM summary WHERE id = 1").Scan(&content)
	return content, err
}

// UpsertSummaryParams holds the values for UpsertSummary.
type UpsertSummaryParams struct {
	Content   string
	UpdatedAt int64
}

// UpsertSummary saves the summary text, replacing any previous one.
func (q *Queries) UpsertSummary(ctx context.Context, arg UpsertSummaryParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO summary (id, content, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		arg.Content, arg.UpdatedAt)
	return err
}
