package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupCtx  func() context.Context
		wantKeys  []string
		wantEmpty []string
	}{
		{
			name: "both case_id and document_id",
			setupCtx: func() context.Context {
				ctx := context.Background()
				ctx = WithCaseID(ctx, "case-123")
				ctx = WithDocumentID(ctx, "doc-456")
				return ctx
			},
			wantKeys: []string{"case_id", "document_id"},
		},
		{
			name: "only case_id",
			setupCtx: func() context.Context {
				return WithCaseID(context.Background(), "case-123")
			},
			wantKeys:  []string{"case_id"},
			wantEmpty: []string{"document_id"},
		},
		{
			name: "only document_id",
			setupCtx: func() context.Context {
				return WithDocumentID(context.Background(), "doc-456")
			},
			wantKeys:  []string{"document_id"},
			wantEmpty: []string{"case_id"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"case_id", "document_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := tt.setupCtx()

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(ctx).Msg("test")

			var logEntry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				t.Fatalf("failed to parse log: %v", err)
			}

			for _, key := range tt.wantKeys {
				if _, ok := logEntry[key]; !ok {
					t.Errorf("expected %s to be present in log", key)
				}
			}

			for _, key := range tt.wantEmpty {
				if _, ok := logEntry[key]; ok {
					t.Errorf("expected %s to be absent from log", key)
				}
			}
		})
	}
}
