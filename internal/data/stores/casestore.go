// Package stores provides SQLite-backed implementations of the persistence
// interfaces in internal/core/casefile.
package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/counselops/brief/internal/core/casefile"
	"github.com/counselops/brief/internal/data/db"
)

// CaseStore implements casefile.Store using SQLite.
type CaseStore struct {
	db *db.DB
}

var _ casefile.Store = (*CaseStore)(nil)

// NewCaseStore creates a new SQLite-backed case store.
func NewCaseStore(db *db.DB) *CaseStore {
	return &CaseStore{db: db}
}

// Categories returns all categories with their items attached.
func (s *CaseStore) Categories(ctx context.Context) ([]casefile.Category, error) {
	catRows, err := s.db.Queries().ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	itemRows, err := s.db.Queries().ListChecklistItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}

	byCategory := make(map[string][]casefile.Item, len(catRows))
	for _, row := range itemRows {
		byCategory[row.CategoryID] = append(byCategory[row.CategoryID], rowToItem(row))
	}

	categories := make([]casefile.Category, 0, len(catRows))
	for _, row := range catRows {
		categories = append(categories, casefile.Category{
			ID:     row.ID,
			Label:  row.Label,
			Color:  row.Color,
			Values: byCategory[row.ID],
		})
	}

	return categories, nil
}

// AddCategory creates a category. Position is assigned after existing ones.
func (s *CaseStore) AddCategory(ctx context.Context, c casefile.Category) error {
	existing, err := s.db.Queries().ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	err = s.db.Queries().InsertCategory(ctx, db.InsertCategoryParams{
		ID:       c.ID,
		Label:    c.Label,
		Color:    c.Color,
		Position: int64(len(existing)),
	})
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// AddItem creates a checklist item under the given category.
func (s *CaseStore) AddItem(ctx context.Context, categoryID string, item casefile.Item) error {
	var docID sql.NullString
	if item.DocumentID != "" {
		docID = sql.NullString{String: item.DocumentID, Valid: true}
	}

	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	err := s.db.Queries().InsertChecklistItem(ctx, db.InsertChecklistItemParams{
		ID:          item.ID,
		CategoryID:  categoryID,
		Text:        item.Text,
		Done:        boolToInt(item.Done),
		DocumentID:  docID,
		StartOffset: int64(item.StartOffset),
		EndOffset:   int64(item.EndOffset),
		CreatedAt:   createdAt.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to insert checklist item: %w", err)
	}
	return nil
}

// SetItemDone flips an item's done flag. Returns casefile.ErrNotFound if the
// item does not exist.
func (s *CaseStore) SetItemDone(ctx context.Context, itemID string, done bool) error {
	err := s.db.Queries().SetChecklistItemDone(ctx, db.SetChecklistItemDoneParams{
		ID:   itemID,
		Done: boolToInt(done),
	})
	if IsNotFoundError(err) {
		return casefile.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update checklist item: %w", err)
	}
	return nil
}

// DeleteItem removes an item. Returns casefile.ErrNotFound if the item does
// not exist.
func (s *CaseStore) DeleteItem(ctx context.Context, itemID string) error {
	err := s.db.Queries().DeleteChecklistItem(ctx, itemID)
	if IsNotFoundError(err) {
		return casefile.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}
	return nil
}

// Messages returns the chat transcript in insertion order.
func (s *CaseStore) Messages(ctx context.Context) ([]casefile.Message, error) {
	rows, err := s.db.Queries().ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]casefile.Message, 0, len(rows))
	for _, row := range rows {
		msg, err := rowToMessage(row)
		if err != nil {
			return nil, fmt.Errorf("failed to convert message: %w", err)
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

// AppendMessage persists a chat message.
func (s *CaseStore) AppendMessage(ctx context.Context, m casefile.Message) error {
	var contextJSON sql.NullString
	if len(m.Context) > 0 {
		data, err := json.Marshal(m.Context)
		if err != nil {
			return fmt.Errorf("failed to marshal context refs: %w", err)
		}
		contextJSON = sql.NullString{String: string(data), Valid: true}
	}

	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	err := s.db.Queries().InsertMessage(ctx, db.InsertMessageParams{
		ID:          m.ID,
		Role:        string(m.Role),
		Content:     m.Content,
		ContextJSON: contextJSON,
		CreatedAt:   createdAt.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// Summary returns the saved summary text, or empty string if none exists.
func (s *CaseStore) Summary(ctx context.Context) (string, error) {
	content, err := s.db.Queries().GetSummary(ctx)
	if IsNotFoundError(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get summary: %w", err)
	}
	return content, nil
}

// SaveSummary replaces the saved summary text.
func (s *CaseStore) SaveSummary(ctx context.Context, text string) error {
	err := s.db.Queries().UpsertSummary(ctx, db.UpsertSummaryParams{
		Content:   text,
		UpdatedAt: time.Now().UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}

func rowToItem(row db.ChecklistItem) casefile.Item {
	return casefile.Item{
		ID:          row.ID,
		Text:        row.Text,
		Done:        row.Done != 0,
		DocumentID:  row.DocumentID.String,
		StartOffset: int(row.StartOffset),
		EndOffset:   int(row.EndOffset),
		CreatedAt:   time.Unix(0, row.CreatedAt),
	}
}

func rowToMessage(row db.Message) (casefile.Message, error) {
	var refs []casefile.ContextRef
	if row.ContextJSON.Valid && row.ContextJSON.String != "" {
		if err := json.Unmarshal([]byte(row.ContextJSON.String), &refs); err != nil {
			return casefile.Message{}, fmt.Errorf("failed to unmarshal context refs: %w", err)
		}
	}

	return casefile.Message{
		ID:        row.ID,
		Role:      casefile.Role(row.Role),
		Content:   row.Content,
		Context:   refs,
		CreatedAt: time.Unix(0, row.CreatedAt),
	}, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
