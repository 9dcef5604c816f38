package lipgloss

import "github.com/charmbracelet/lipgloss"

// Terminal styles shared by the jjgen commands.
var (
	Red     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	Green   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	Yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	BlueSky = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	Gray    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	Info    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)
