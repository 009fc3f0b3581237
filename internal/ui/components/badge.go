package components

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// BadgeVariant specifies the visual style of a badge.
type BadgeVariant int

const (
	BadgeVariantDefault BadgeVariant = iota
	BadgeVariantPrimary
	BadgeVariantSuccess
	BadgeVariantWarning
	BadgeVariantError
	BadgeVariantInfo
)

var badgeSlots = map[BadgeVariant]PaletteSlot{
	BadgeVariantDefault: PaletteNeutral,
	BadgeVariantPrimary: PalettePrimary,
	BadgeVariantSuccess: PaletteSuccess,
	BadgeVariantWarning: PaletteWarning,
	BadgeVariantError:   PaletteDanger,
	BadgeVariantInfo:    PaletteInfo,
}

// Badge is a small inline label.
type Badge struct {
	Text    string
	Variant BadgeVariant
}

// NewBadge creates a default badge.
func NewBadge(text string) Badge {
	return Badge{Text: text}
}

// CountBadge shows an item count.
func CountBadge(count int) Badge {
	return Badge{Text: strconv.Itoa(count), Variant: BadgeVariantInfo}
}

// WithVariant returns a copy of the badge using variant.
func (b Badge) WithVariant(variant BadgeVariant) Badge {
	b.Variant = variant
	return b
}

// Render draws the badge.
func (b Badge) Render(theme Theme) string {
	slot, ok := badgeSlots[b.Variant]
	if !ok {
		slot = PaletteNeutral
	}
	style := Apply(lipgloss.NewStyle().Padding(0, 1), theme, Background(slot))
	return style.Render(b.Text)
}
