// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"

	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
	"catppuccin": {
		Primary:    lipgloss.Color("#89b4fa"), // Blue
		Secondary:  lipgloss.Color("#94e2d5"), // Teal
		Foreground: lipgloss.Color("#cdd6f4"), // Text
		Muted:      lipgloss.Color("#6c7086"), // Overlay0
		Background: lipgloss.Color("#1e1e2e"), // Base
		Surface:    lipgloss.Color("#313244"), // Surface0
		Success:    lipgloss.Color("#a6e3a1"), // Green
		Warning:    lipgloss.Color("#f9e2af"), // Yellow
		Error:      lipgloss.Color("#f38ba8"), // Red
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style

	// TUI shared styles.
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
	StatusBarStyle    lipgloss.Style
	StatusModeStyle   lipgloss.Style
	HelpStyle         lipgloss.Style
	ModalStyle        lipgloss.Style
	ModalTitleStyle   lipgloss.Style

	// Chat panel styles.
	ChatUserStyle      lipgloss.Style
	ChatAssistantStyle lipgloss.Style
	ChatContextStyle   lipgloss.Style

	// Checklist styles.
	ItemDoneStyle lipgloss.Style
	ItemOpenStyle lipgloss.Style
	CategoryStyle lipgloss.Style

	// Patch panel styles.
	PatchAppliedStyle  lipgloss.Style
	PatchRevertedStyle lipgloss.Style
	PatchStaleStyle    lipgloss.Style
	DiffInsertStyle    lipgloss.Style
	DiffDeleteStyle    lipgloss.Style

	// Highlight styles painted over buffer text.
	SelectionStyle  lipgloss.Style
	ContextStyle    lipgloss.Style
	SuggestionStyle lipgloss.Style
	PreviewStyle    lipgloss.Style
	JumpFlashStyle  lipgloss.Style
)

// ColorPool is used for deterministic color hashing of checklist categories.
var ColorPool []lipgloss.Color

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted)
	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary)
	PanelTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Background(ColorSurface)
	StatusModeStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)

	ChatUserStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	ChatAssistantStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	ChatContextStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	ItemDoneStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	ItemOpenStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	CategoryStyle = lipgloss.NewStyle().
		Bold(true)

	PatchAppliedStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	PatchRevertedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Strikethrough(true)
	PatchStaleStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)
	DiffInsertStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	DiffDeleteStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Strikethrough(true)

	SelectionStyle = lipgloss.NewStyle().
		Background(ColorSurface)
	ContextStyle = lipgloss.NewStyle().
		Background(Blend(ColorPrimary, 0.35)).
		Foreground(ColorForeground)
	SuggestionStyle = lipgloss.NewStyle().
		Background(Blend(ColorSecondary, 0.3)).
		Foreground(ColorForeground)
	PreviewStyle = lipgloss.NewStyle().
		Background(Blend(ColorWarning, 0.35)).
		Foreground(ColorForeground)
	JumpFlashStyle = lipgloss.NewStyle().
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)

	ColorPool = []lipgloss.Color{
		ColorPrimary,
		ColorSecondary,
		ColorSuccess,
		ColorWarning,
		ColorError,
		ColorMuted,
	}
}

// Blend mixes an accent color into the theme background. A weight of 0
// returns the background, 1 returns the accent unchanged. Colors that do not
// parse fall back to the surface color.
func Blend(accent lipgloss.Color, weight float64) lipgloss.Color {
	bg, err := colorful.Hex(string(CurrentPalette.Background))
	if err != nil {
		return CurrentPalette.Surface
	}
	fg, err := colorful.Hex(string(accent))
	if err != nil {
		return CurrentPalette.Surface
	}
	return lipgloss.Color(bg.BlendLab(fg, weight).Clamped().Hex())
}

// EvidenceStyle returns a highlight style for a checklist category color.
// The category color is dimmed toward the background so text stays legible.
func EvidenceStyle(categoryColor string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(Blend(lipgloss.Color(categoryColor), 0.35)).
		Foreground(ColorForeground)
}

// ColorForString returns a deterministic color for a given string.
// The same string always produces the same color.
func ColorForString(s string) lipgloss.Color {
	var hash uint32
	for _, c := range s {
		hash = hash*31 + uint32(c)
	}
	return ColorPool[hash%uint32(len(ColorPool))]
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

func colorHexPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	hex := string(c)
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorHexPtr(ColorForeground)
	primary := colorHexPtr(ColorPrimary)
	secondary := colorHexPtr(ColorSecondary)
	muted := colorHexPtr(ColorMuted)
	surface := colorHexPtr(ColorSurface)

	cfg.Document.Color = fg

	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = surface
	cfg.H2.Color = primary
	cfg.H3.Color = primary
	cfg.H4.Color = primary
	cfg.H5.Color = primary
	cfg.H6.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	cfg.Table.Color = fg

	return cfg
}
