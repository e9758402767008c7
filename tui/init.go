package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the first page load and the page listener.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, b.startLoading(), b.loadFirstPage(), b.waitForPages())
}
