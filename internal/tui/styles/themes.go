package styles

// NewFrostTheme is the default: cold blues with a violet accent
func NewFrostTheme() *Theme {
	return &Theme{
		Name: "frost",

		Primary:   ParseHex("#60a5fa"), // Sky blue
		Secondary: ParseHex("#a78bfa"), // Violet
		Accent:    ParseHex("#e0f2fe"), // Ice

		BgBase:      ParseHex("#0f172a"), // Slate 900
		BgSubtle:    ParseHex("#1e293b"), // Slate 800
		BgHighlight: ParseHex("#334155"), // Slate 700

		FgBase:     ParseHex("#f8fafc"),
		FgMuted:    ParseHex("#cbd5e1"),
		FgSubtle:   ParseHex("#94a3b8"),
		FgInverted: ParseHex("#0f172a"),

		Border:      ParseHex("#334155"),
		BorderFocus: ParseHex("#60a5fa"),

		Success: ParseHex("#34d399"),
		Error:   ParseHex("#f87171"),
		Warning: ParseHex("#fbbf24"),
	}
}

// NewEmberTheme is a warm fire gradient on slate
func NewEmberTheme() *Theme {
	return &Theme{
		Name: "ember",

		Primary:   ParseHex("#C0392B"), // Fire red
		Secondary: ParseHex("#F4D03F"), // Bright yellow
		Accent:    ParseHex("#F39C12"), // Golden orange

		BgBase:      ParseHex("#2C3E50"),
		BgSubtle:    ParseHex("#3D566E"),
		BgHighlight: ParseHex("#5D6D7E"),

		FgBase:     ParseHex("#f5f6fa"),
		FgMuted:    ParseHex("#a0a0a0"),
		FgSubtle:   ParseHex("#6F6F70"),
		FgInverted: ParseHex("#1e1e1e"),

		Border:      ParseHex("#5D6D7E"),
		BorderFocus: ParseHex("#F39C12"),

		Success: ParseHex("#27AE60"),
		Error:   ParseHex("#E74C3C"),
		Warning: ParseHex("#F39C12"),
	}
}
