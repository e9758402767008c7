// Package ui holds the transient notification line shared by the TUI views.
package ui

import (
	"strings"
	"time"

	"github.com/alphadex-cli/alphadex/style"
	tea "github.com/charmbracelet/bubbletea"
)

// NotificationTimeout is how long a notification stays visible.
const NotificationTimeout = 3 * time.Second

// Model shows one notification at a time.
type Model struct {
	notification string
	id           int
}

// NotificationMsg asks the model to show Text.
type NotificationMsg struct {
	Text string
}

type clearNotificationMsg struct {
	id int
}

// Notify returns a command that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Text: text}
	}
}

// NotifyError returns a command that shows err prefixed with action.
func NotifyError(action string, err error) tea.Cmd {
	return Notify(action + ": " + err.Error())
}

// Notification returns the visible notification.
func (m *Model) Notification() string {
	return m.notification
}

// Update handles notification messages and reports whether msg was one.
func (m *Model) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.id++
		m.notification = msg.Text
		id := m.id
		return tea.Tick(NotificationTimeout, func(time.Time) tea.Msg {
			return clearNotificationMsg{id: id}
		}), true
	case clearNotificationMsg:
		// a newer notification restarted the timer
		if msg.id == m.id {
			m.notification = ""
		}
		return nil, true
	}
	return nil, false
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
