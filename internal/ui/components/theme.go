// Package components holds the lipgloss building blocks of the browser:
// the theme, badges, panels, breadcrumbs and tree rows.
//
// Components are plain values rendered against a Theme. They do not keep
// global state, so the same component can be rendered with several themes.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColourSet groups the four tones of one semantic colour:
//   - Base: the primary background or brand colour
//   - OnBase: text that contrasts with Base
//   - Muted: a subdued variant of Base
//   - Contrast: an accent that stands out against Base
type ColourSet struct {
	Base     lipgloss.AdaptiveColor
	OnBase   lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Contrast lipgloss.AdaptiveColor
}

// Palette describes semantic colour slots used by components.
type Palette struct {
	Primary   ColourSet
	Secondary ColourSet
	Surface   ColourSet
	Success   ColourSet
	Warning   ColourSet
	Danger    ColourSet
	Info      ColourSet
	Neutral   ColourSet
}

// PaletteSlot provides access to a semantic colour slot from a Palette.
type PaletteSlot func(Palette) ColourSet

var (
	PalettePrimary   PaletteSlot = func(p Palette) ColourSet { return p.Primary }
	PaletteSecondary PaletteSlot = func(p Palette) ColourSet { return p.Secondary }
	PaletteSuccess   PaletteSlot = func(p Palette) ColourSet { return p.Success }
	PaletteWarning   PaletteSlot = func(p Palette) ColourSet { return p.Warning }
	PaletteDanger    PaletteSlot = func(p Palette) ColourSet { return p.Danger }
	PaletteInfo      PaletteSlot = func(p Palette) ColourSet { return p.Info }
	PaletteNeutral   PaletteSlot = func(p Palette) ColourSet { return p.Neutral }
)

// StyleFunc applies a theme-aware transformation to a style.
type StyleFunc func(lipgloss.Style, Theme) lipgloss.Style

// Background applies a semantic background colour and the matching
// foreground.
func Background(slot PaletteSlot) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		cs := slot(theme.Palette)
		return base.Background(cs.Base).Foreground(cs.OnBase)
	}
}

// Foreground applies a semantic foreground colour.
func Foreground(slot PaletteSlot) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		return base.Foreground(slot(theme.Palette).Base)
	}
}

// Apply runs fns over base in order.
func Apply(base lipgloss.Style, theme Theme, fns ...StyleFunc) lipgloss.Style {
	for _, fn := range fns {
		base = fn(base, theme)
	}
	return base
}

// Typography contains the text presets shared by components.
type Typography struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Emphasis lipgloss.Style
	Match    lipgloss.Style
}

// Theme is an immutable set of colours, typography and glyphs. Modifying
// helpers return copies.
type Theme struct {
	Name       string
	Palette    Palette
	Typography Typography
	Border     lipgloss.Border
	Glyphs     Glyphs
}

// Theme names accepted by ThemeByName.
const (
	ThemeAdaptive = "auto"
	ThemeDark     = "dark"
	ThemeLight    = "light"
)

// ThemeNames lists the accepted theme names.
var ThemeNames = []string{ThemeAdaptive, ThemeDark, ThemeLight}

// ThemeByName resolves a theme name. An empty name selects the adaptive
// theme.
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ThemeAdaptive, "adaptive":
		return DefaultTheme(), nil
	case ThemeDark:
		return DarkTheme(), nil
	case ThemeLight:
		return LightTheme(), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q (expected one of %s)", name, strings.Join(ThemeNames, ", "))
	}
}

// WithGlyphs returns a copy of the theme drawing with g.
func (t Theme) WithGlyphs(g Glyphs) Theme {
	t.Glyphs = g
	return t
}

// DefaultTheme adapts to the terminal background.
func DefaultTheme() Theme {
	ac := func(light, dark string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: light, Dark: dark}
	}

	palette := Palette{
		Primary: ColourSet{
			Base:     ac("#3b82f6", "#60a5fa"),
			OnBase:   ac("#f8fafc", "#0b1120"),
			Muted:    ac("#2563eb", "#1d4ed8"),
			Contrast: ac("#facc15", "#ca8a04"),
		},
		Secondary: ColourSet{
			Base:     ac("#a855f7", "#c084fc"),
			OnBase:   ac("#f8fafc", "#1f2937"),
			Muted:    ac("#7c3aed", "#6b21a8"),
			Contrast: ac("#f472b6", "#f472b6"),
		},
		Surface: ColourSet{
			Base:     ac("#f9fafb", "#111827"),
			OnBase:   ac("#111827", "#f9fafb"),
			Muted:    ac("#e2e8f0", "#1f2937"),
			Contrast: ac("#3b82f6", "#60a5fa"),
		},
		Success: ColourSet{
			Base:     ac("#22c55e", "#4ade80"),
			OnBase:   ac("#052e16", "#022c22"),
			Muted:    ac("#16a34a", "#15803d"),
			Contrast: ac("#f8fafc", "#f8fafc"),
		},
		Warning: ColourSet{
			Base:     ac("#eab308", "#facc15"),
			OnBase:   ac("#422006", "#422006"),
			Muted:    ac("#ca8a04", "#a16207"),
			Contrast: ac("#111827", "#111827"),
		},
		Danger: ColourSet{
			Base:     ac("#ef4444", "#f87171"),
			OnBase:   ac("#7f1d1d", "#450a0a"),
			Muted:    ac("#dc2626", "#b91c1c"),
			Contrast: ac("#f8fafc", "#f8fafc"),
		},
		Info: ColourSet{
			Base:     ac("#06b6d4", "#22d3ee"),
			OnBase:   ac("#083344", "#04121a"),
			Muted:    ac("#0891b2", "#0e7490"),
			Contrast: ac("#f8fafc", "#f8fafc"),
		},
		Neutral: ColourSet{
			Base:     ac("#64748b", "#94a3b8"),
			OnBase:   ac("#f1f5f9", "#0f172a"),
			Muted:    ac("#475569", "#334155"),
			Contrast: ac("#f8fafc", "#f8fafc"),
		},
	}

	return newTheme(ThemeAdaptive, palette)
}

// DarkTheme pins every colour to its dark variant.
func DarkTheme() Theme {
	return newTheme(ThemeDark, pin(DefaultTheme().Palette, func(c lipgloss.AdaptiveColor) string { return c.Dark }))
}

// LightTheme pins every colour to its light variant.
func LightTheme() Theme {
	return newTheme(ThemeLight, pin(DefaultTheme().Palette, func(c lipgloss.AdaptiveColor) string { return c.Light }))
}

func newTheme(name string, p Palette) Theme {
	return Theme{
		Name:       name,
		Palette:    p,
		Typography: typographyFor(p),
		Border:     lipgloss.RoundedBorder(),
		Glyphs:     UnicodeGlyphs(),
	}
}

func typographyFor(p Palette) Typography {
	body := lipgloss.NewStyle().Foreground(p.Surface.OnBase)
	return Typography{
		Title:    body.Bold(true).Foreground(p.Primary.Base),
		Subtitle: body.Foreground(p.Secondary.Muted).Faint(true),
		Body:     body,
		Muted:    body.Foreground(p.Neutral.Base),
		Emphasis: body.Bold(true),
		Match:    body.Bold(true).Underline(true).Foreground(p.Warning.Base),
	}
}

func pin(p Palette, pick func(lipgloss.AdaptiveColor) string) Palette {
	fix := func(c lipgloss.AdaptiveColor) lipgloss.AdaptiveColor {
		v := pick(c)
		return lipgloss.AdaptiveColor{Light: v, Dark: v}
	}
	set := func(cs ColourSet) ColourSet {
		return ColourSet{Base: fix(cs.Base), OnBase: fix(cs.OnBase), Muted: fix(cs.Muted), Contrast: fix(cs.Contrast)}
	}
	return Palette{
		Primary:   set(p.Primary),
		Secondary: set(p.Secondary),
		Surface:   set(p.Surface),
		Success:   set(p.Success),
		Warning:   set(p.Warning),
		Danger:    set(p.Danger),
		Info:      set(p.Info),
		Neutral:   set(p.Neutral),
	}
}
