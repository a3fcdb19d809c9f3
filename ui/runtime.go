package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmultani945/log-parser-project/packet/prepeat"
)

func Start(metadataPath string, policy prepeat.Policy) {
	picker := CreatePacketPicker(metadataPath, policy)
	if err := tea.NewProgram(&picker).Start(); err != nil {
		panic(err)
	}
}
