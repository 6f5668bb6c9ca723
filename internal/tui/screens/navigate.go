package screens

import tea "github.com/charmbracelet/bubbletea"

// NavigateMsg asks the root model to switch screens.
type NavigateMsg struct {
	Screen string
	Data   interface{}
}

func navigateTo(screen string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: screen}
	}
}
