package checklist

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/counselops/brief/internal/core/casefile"
)

type categoriesLoadedMsg struct {
	categories []casefile.Category
	err        error
}

type evidenceAddedMsg struct {
	categoryID string
	item       casefile.Item
	err        error
}

type itemMutatedMsg struct {
	err error
}

type highlightResolveMsg struct {
	token uint64
}

func loadCategories(ws Workspace) tea.Cmd {
	return func() tea.Msg {
		categories, err := ws.Categories(context.Background())
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

func addEvidence(ws Workspace, categoryID string, item casefile.Item) tea.Cmd {
	return func() tea.Msg {
		saved, err := ws.AddEvidence(context.Background(), categoryID, item)
		return evidenceAddedMsg{categoryID: categoryID, item: saved, err: err}
	}
}

func toggleItem(ws Workspace, itemID string, done bool) tea.Cmd {
	return func() tea.Msg {
		return itemMutatedMsg{err: ws.ToggleItem(context.Background(), itemID, done)}
	}
}

func removeItem(ws Workspace, itemID string) tea.Cmd {
	return func() tea.Msg {
		return itemMutatedMsg{err: ws.RemoveItem(context.Background(), itemID)}
	}
}

func resolveHighlight(token uint64) tea.Cmd {
	return func() tea.Msg {
		return highlightResolveMsg{token: token}
	}
}
