package ui

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconTheme    = "◐"
)

// Text fragments
const (
	ProgressLabelFormat = "%d%%"
	FooterSeparator     = " | "
	Ellipsis            = "..."
)

// Limits
const (
	// MaxErrorDialogLength caps the error text shown in the failure dialog
	MaxErrorDialogLength = 200
)

// Layout sizing
const (
	LogoSize          float32 = 32
	PercentLabelWidth float32 = 48
	HistoryMinHeight  float32 = 180
	SettingsWidth     float32 = 500
	SettingsHeight    float32 = 260
)
