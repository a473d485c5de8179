// Package casefile defines the domain model for a legal case review
// workspace: source documents, the working summary, the fact checklist and
// the chat transcript.
package casefile

import (
	"errors"
	"time"
)

// ErrNotFound marks lookups for checklist entries that do not exist.
var ErrNotFound = errors.New("not found")

// Document is a read-only source document in the case directory.
type Document struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Category groups checklist items under a label with a display color.
type Category struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Values []Item `json:"values"`
}

// Item is a single checklist entry, optionally backed by a document span
// that serves as its evidence.
type Item struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Done        bool      `json:"done"`
	DocumentID  string    `json:"document_id,omitempty"`
	StartOffset int       `json:"start_offset"`
	EndOffset   int       `json:"end_offset"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasEvidence reports whether the item carries a document span.
func (i Item) HasEvidence() bool {
	return i.DocumentID != "" && i.EndOffset > i.StartOffset
}

// EditInstruction is a single replacement the assistant proposes against the
// summary. Offsets are rune indices into the summary at the time the
// instruction was produced.
type EditInstruction struct {
	Start        int    `json:"start"`
	DeleteLength int    `json:"delete_length"`
	InsertText   string `json:"insert_text"`
}

// ContextRefType distinguishes where a chat context reference points.
type ContextRefType string

const (
	RefSummary  ContextRefType = "summary"
	RefDocument ContextRefType = "document"
)

// ContextRef is an outbound reference to highlighted text attached to a chat
// message. Text is the content at send time; offsets are rune indices.
type ContextRef struct {
	Type       ContextRefType `json:"type"`
	DocumentID string         `json:"document_id,omitempty"`
	Text       string         `json:"text"`
	Start      int            `json:"start"`
	End        int            `json:"end"`
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the chat transcript.
type Message struct {
	ID        string       `json:"id"`
	Role      Role         `json:"role"`
	Content   string       `json:"content"`
	Context   []ContextRef `json:"context,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Suggestion is a rewrite the assistant proposes for the summary, located by
// the literal text it targets rather than offsets.
type Suggestion struct {
	Find    string `json:"find"`
	Replace string `json:"replace"`
	Note    string `json:"note,omitempty"`
}
