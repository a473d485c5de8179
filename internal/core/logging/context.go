package logging

import "context"

type contextKey string

const (
	caseIDKey     contextKey = "case_id"
	documentIDKey contextKey = "document_id"
)

// WithCaseID adds a case ID to the context.
func WithCaseID(ctx context.Context, caseID string) context.Context {
	return context.WithValue(ctx, caseIDKey, caseID)
}

// WithDocumentID adds a document ID to the context.
func WithDocumentID(ctx context.Context, documentID string) context.Context {
	return context.WithValue(ctx, documentIDKey, documentID)
}

// GetCaseID retrieves the case ID from the context.
// Returns empty string if not present.
func GetCaseID(ctx context.Context) string {
	if id, ok := ctx.Value(caseIDKey).(string); ok {
		return id
	}
	return ""
}

// GetDocumentID retrieves the document ID from the context.
// Returns empty string if not present.
func GetDocumentID(ctx context.Context) string {
	if id, ok := ctx.Value(documentIDKey).(string); ok {
		return id
	}
	return ""
}
