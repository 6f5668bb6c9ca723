package common

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#2E8B57") // Sea green
	ColorSecondary = lipgloss.Color("#FFA500") // Orange

	// Status colors
	ColorSuccess = lipgloss.Color("#32CD32") // Lime green
	ColorWarning = lipgloss.Color("#FFD700") // Gold
	ColorError   = lipgloss.Color("#FF6347") // Tomato

	// Neutral colors
	ColorSubtle     = lipgloss.Color("#666666") // Gray
	ColorMuted      = lipgloss.Color("#888888") // Light gray
	ColorBorder     = lipgloss.Color("#444444") // Dark gray
	ColorForeground = lipgloss.Color("#FFFFFF") // White
)

// Base styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginBottom(1)

	// Text styles
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	MutedTextStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	SuccessTextStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	WarningTextStyle = lipgloss.NewStyle().
				Foreground(ColorWarning)

	PrimaryTextStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary)

	// Selection styles
	SelectedStyle = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(ColorForeground).
			Bold(true).
			Padding(0, 1)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Padding(0, 1)

	// Input styles
	InputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	// Button styles
	ButtonStyle = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(ColorForeground).
			Padding(0, 2).
			MarginTop(1)

	DisabledButtonStyle = lipgloss.NewStyle().
				Background(ColorBorder).
				Foreground(ColorMuted).
				Padding(0, 2).
				MarginTop(1)

	// Help styles
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HelpSepStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	// Menu item styles
	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	MenuItemSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(ColorPrimary).
				Bold(true)
)

// Logo returns the MealBridge CLI ASCII art logo
func Logo() string {
	logo := `
 __  __            _ ____       _     _
|  \/  | ___  __ _| | __ ) _ __(_) __| | __ _  ___
| |\/| |/ _ \/ _` + "`" + ` | |  _ \| '__| |/ _` + "`" + ` |/ _` + "`" + ` |/ _ \
| |  | |  __/ (_| | | |_) | |  | | (_| | (_| |  __/
|_|  |_|\___|\__,_|_|____/|_|  |_|\__,_|\__, |\___|
                                        |___/
`
	return lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Render(logo)
}

// FormatHelp formats a help line with key and description
func FormatHelp(key, desc string) string {
	return HelpKeyStyle.Render(key) +
		HelpSepStyle.Render(" ") +
		HelpDescStyle.Render(desc)
}
