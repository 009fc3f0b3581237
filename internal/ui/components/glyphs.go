package components

// Glyphs are the symbols used to draw the tree.
type Glyphs struct {
	Expanded  string
	Collapsed string
	Leaf      string
	Cursor    string
	Ellipsis  string
}

// UnicodeGlyphs is the default glyph set.
func UnicodeGlyphs() Glyphs {
	return Glyphs{
		Expanded:  "▾",
		Collapsed: "▸",
		Leaf:      "•",
		Cursor:    "›",
		Ellipsis:  "…",
	}
}

// ASCIIGlyphs is used when unicode is disabled in settings.
func ASCIIGlyphs() Glyphs {
	return Glyphs{
		Expanded:  "v",
		Collapsed: ">",
		Leaf:      "-",
		Cursor:    ">",
		Ellipsis:  "...",
	}
}
