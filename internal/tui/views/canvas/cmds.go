package canvas

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/counselops/brief/internal/core/casefile"
	"github.com/counselops/brief/internal/engine/highlight"
	"github.com/counselops/brief/internal/engine/patch"
	"github.com/counselops/brief/pkg/randid"
)

type summaryLoadedMsg struct {
	text string
	err  error
}

type messagesLoadedMsg struct {
	messages []casefile.Message
	err      error
}

type chatRepliedMsg struct {
	reply casefile.ChatReply
	err   error
}

type summaryGeneratedMsg struct {
	text string
	err  error
}

type suggestionsMsg struct {
	suggestions []casefile.Suggestion
	err         error
}

// highlightResolveMsg arrives one event-loop pass after a highlight request
// was issued; the token decides whether the request is still current.
type highlightResolveMsg struct {
	token uint64
}

func loadSummary(ws Workspace) tea.Cmd {
	return func() tea.Msg {
		text, err := ws.Summary(context.Background())
		return summaryLoadedMsg{text: text, err: err}
	}
}

func loadMessages(ws Workspace) tea.Cmd {
	return func() tea.Msg {
		messages, err := ws.Messages(context.Background())
		return messagesLoadedMsg{messages: messages, err: err}
	}
}

func sendChat(ws Workspace, text string, refs []casefile.ContextRef) tea.Cmd {
	return func() tea.Msg {
		reply, err := ws.Chat(context.Background(), text, refs)
		return chatRepliedMsg{reply: reply, err: err}
	}
}

func saveSummary(ws Workspace, text string) tea.Cmd {
	return func() tea.Msg {
		if err := ws.SaveSummary(context.Background(), text); err != nil {
			return summaryLoadedMsg{text: text, err: err}
		}
		return nil
	}
}

func generateSummary(ws Workspace) tea.Cmd {
	return func() tea.Msg {
		text, err := ws.GenerateSummary(context.Background())
		return summaryGeneratedMsg{text: text, err: err}
	}
}

func loadSuggestions(ws Workspace, summary string) tea.Cmd {
	return func() tea.Msg {
		suggestions, err := ws.Suggestions(context.Background(), summary)
		return suggestionsMsg{suggestions: suggestions, err: err}
	}
}

func resolveHighlight(token uint64) tea.Cmd {
	return func() tea.Msg {
		return highlightResolveMsg{token: token}
	}
}

func toPatchEdits(edits []casefile.EditInstruction) []patch.Edit {
	out := make([]patch.Edit, 0, len(edits))
	for _, e := range edits {
		out = append(out, patch.Edit{
			Start:        e.Start,
			DeleteLength: e.DeleteLength,
			InsertText:   e.InsertText,
		})
	}
	return out
}

func toHighlightSuggestions(suggestions []casefile.Suggestion) []highlight.Suggestion {
	out := make([]highlight.Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, highlight.Suggestion{
			ID:      randid.Generate(8),
			Find:    s.Find,
			Replace: s.Replace,
			Note:    s.Note,
		})
	}
	return out
}
