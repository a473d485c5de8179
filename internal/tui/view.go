package tui

const unknownViewType = "unknown"

// ViewType represents which view is active.
type ViewType int

const (
	ViewCanvas ViewType = iota
	ViewChecklist
)

// String returns the lowercase name of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewCanvas:
		return "canvas"
	case ViewChecklist:
		return "checklist"
	default:
		return unknownViewType
	}
}
