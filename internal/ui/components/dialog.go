package components

import "github.com/charmbracelet/lipgloss"

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#273540")).
			Padding(1, 2).
			Width(48)

	dialogTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7f57b4")).
				Bold(true)

	dialogBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
)

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	return dialogStyle.Render(
		dialogTitleStyle.Render(title) + "\n\n" +
			dialogBodyStyle.Render(message) + "\n" +
			dialogBodyStyle.Render("y: confirm | n: cancel"),
	)
}

// InputDialog renders a prompt around an already rendered input field.
func InputDialog(title, field string) string {
	return dialogStyle.Render(
		dialogTitleStyle.Render(title) + "\n\n" +
			field + "\n\n" +
			dialogBodyStyle.Render("enter: submit | esc: cancel"),
	)
}
