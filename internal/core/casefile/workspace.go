package casefile

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store persists the mutable parts of a case: checklist, chat and summary.
type Store interface {
	Categories(ctx context.Context) ([]Category, error)
	AddCategory(ctx context.Context, c Category) error
	AddItem(ctx context.Context, categoryID string, item Item) error
	SetItemDone(ctx context.Context, itemID string, done bool) error
	DeleteItem(ctx context.Context, itemID string) error

	Messages(ctx context.Context) ([]Message, error)
	AppendMessage(ctx context.Context, m Message) error

	Summary(ctx context.Context) (string, error)
	SaveSummary(ctx context.Context, text string) error
}

// ChatRequest is one outbound chat turn.
type ChatRequest struct {
	Message string
	Context []ContextRef
	History []Message
	Summary string
}

// ChatReply is the assistant's answer to a chat turn.
type ChatReply struct {
	Text  string
	Edits []EditInstruction
}

// Assistant is the collaborator that produces replies, summaries and
// suggestions. Implementations live in internal/core/assistant.
type Assistant interface {
	Chat(ctx context.Context, req ChatRequest) (ChatReply, error)
	Summarize(ctx context.Context, docs []Document) (string, error)
	Suggest(ctx context.Context, summary string) ([]Suggestion, error)
}

// Workspace aggregates the case documents, checklist, summary and chat
// transcript behind a single service.
type Workspace struct {
	docs   []Document
	store  Store
	assist Assistant
	log    zerolog.Logger
}

// NewWorkspace creates a workspace over the given store and assistant.
func NewWorkspace(store Store, assist Assistant, docs []Document, log zerolog.Logger) *Workspace {
	sorted := make([]Document, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Title < sorted[j].Title })

	return &Workspace{
		docs:   sorted,
		store:  store,
		assist: assist,
		log:    log,
	}
}

// Documents returns the case documents sorted by title.
func (w *Workspace) Documents() []Document {
	return w.docs
}

// Document returns the document with the given id, or false.
func (w *Workspace) Document(id string) (Document, bool) {
	for _, d := range w.docs {
		if d.ID == id {
			return d, true
		}
	}
	return Document{}, false
}

// Categories returns the checklist grouped by category.
func (w *Workspace) Categories(ctx context.Context) ([]Category, error) {
	return w.store.Categories(ctx)
}

// AddEvidence appends a checklist item backed by a document span.
func (w *Workspace) AddEvidence(ctx context.Context, categoryID string, item Item) (Item, error) {
	if item.DocumentID != "" {
		if _, ok := w.Document(item.DocumentID); !ok {
			return Item{}, fmt.Errorf("unknown document %q", item.DocumentID)
		}
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	if err := w.store.AddItem(ctx, categoryID, item); err != nil {
		return Item{}, fmt.Errorf("add checklist item: %w", err)
	}

	w.log.Debug().
		Str("category", categoryID).
		Str("item", item.ID).
		Msg("checklist item added")
	return item, nil
}

// ToggleItem flips an item's done state.
func (w *Workspace) ToggleItem(ctx context.Context, itemID string, done bool) error {
	return w.store.SetItemDone(ctx, itemID, done)
}

// RemoveItem deletes a checklist item.
func (w *Workspace) RemoveItem(ctx context.Context, itemID string) error {
	return w.store.DeleteItem(ctx, itemID)
}

// Messages returns the chat transcript in insertion order.
func (w *Workspace) Messages(ctx context.Context) ([]Message, error) {
	return w.store.Messages(ctx)
}

// Chat sends one user turn to the assistant. The user message and the reply
// are both appended to the transcript before the reply is returned, so the
// transcript stays complete even when the caller drops the result.
func (w *Workspace) Chat(ctx context.Context, text string, refs []ContextRef) (ChatReply, error) {
	history, err := w.store.Messages(ctx)
	if err != nil {
		return ChatReply{}, fmt.Errorf("load transcript: %w", err)
	}
	summary, err := w.store.Summary(ctx)
	if err != nil {
		return ChatReply{}, fmt.Errorf("load summary: %w", err)
	}

	userMsg := Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   text,
		Context:   refs,
		CreatedAt: time.Now(),
	}
	if err := w.store.AppendMessage(ctx, userMsg); err != nil {
		return ChatReply{}, fmt.Errorf("append user message: %w", err)
	}

	reply, err := w.assist.Chat(ctx, ChatRequest{
		Message: text,
		Context: refs,
		History: history,
		Summary: summary,
	})
	if err != nil {
		return ChatReply{}, fmt.Errorf("assistant chat: %w", err)
	}

	assistantMsg := Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   reply.Text,
		CreatedAt: time.Now(),
	}
	if err := w.store.AppendMessage(ctx, assistantMsg); err != nil {
		return ChatReply{}, fmt.Errorf("append assistant message: %w", err)
	}

	return reply, nil
}

// Summary returns the saved summary text.
func (w *Workspace) Summary(ctx context.Context) (string, error) {
	return w.store.Summary(ctx)
}

// SaveSummary persists the summary text.
func (w *Workspace) SaveSummary(ctx context.Context, text string) error {
	return w.store.SaveSummary(ctx, text)
}

// GenerateSummary asks the assistant for a fresh summary of all documents
// and persists it.
func (w *Workspace) GenerateSummary(ctx context.Context) (string, error) {
	text, err := w.assist.Summarize(ctx, w.docs)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	if err := w.store.SaveSummary(ctx, text); err != nil {
		return "", fmt.Errorf("save summary: %w", err)
	}
	return text, nil
}

// Suggestions asks the assistant for rewrite suggestions against the given
// summary text.
func (w *Workspace) Suggestions(ctx context.Context, summary string) ([]Suggestion, error) {
	return w.assist.Suggest(ctx, summary)
}
