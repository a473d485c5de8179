package highlight

// Mode is the top-level interaction mode: which workspace view is active
// and, with it, which surface may originate a promote-selection gesture.
type Mode int

const (
	// ModeCanvas is the summary-and-chat view; promotion originates from
	// the summary surface.
	ModeCanvas Mode = iota
	// ModeChecklist is the document-and-checklist view; promotion
	// originates from the document viewer.
	ModeChecklist
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeCanvas:
		return "canvas"
	case ModeChecklist:
		return "checklist"
	default:
		return "unknown"
	}
}

// Origin identifies the surface a selection was made on.
type Origin int

const (
	OriginSummary Origin = iota
	OriginDocument
)

// String returns the lowercase origin name.
func (o Origin) String() string {
	switch o {
	case OriginSummary:
		return "summary"
	case OriginDocument:
		return "document"
	default:
		return "unknown"
	}
}

// AllowsPromotion reports whether a selection from the given surface may be
// offered for promotion while this mode is active. Selections from the
// other surface are still tracked, just never offered until the mode
// matches again.
func (m Mode) AllowsPromotion(o Origin) bool {
	switch m {
	case ModeCanvas:
		return o == OriginSummary
	case ModeChecklist:
		return o == OriginDocument
	default:
		return false
	}
}
