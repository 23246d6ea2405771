package ui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/nebula-tags/cli/internal/tagedit"
)

// ChannelNotifier hands Store notifications to the TUI. Notify never blocks;
// when the buffer is full the notification is logged and dropped.
type ChannelNotifier struct {
	ch     chan tagedit.Notification
	logger *slog.Logger
}

// NewChannelNotifier creates a notifier buffering up to size notifications.
func NewChannelNotifier(size int, logger *slog.Logger) *ChannelNotifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ChannelNotifier{ch: make(chan tagedit.Notification, size), logger: logger}
}

// Notify implements tagedit.Notifier.
func (n *ChannelNotifier) Notify(note tagedit.Notification) {
	select {
	case n.ch <- note:
	default:
		n.logger.Warn("notification dropped", "severity", string(note.Severity), "message", note.Message)
	}
}

// C returns the receive side.
func (n *ChannelNotifier) C() <-chan tagedit.Notification {
	return n.ch
}

type snapshotMsg struct{ snap tagedit.Snapshot }

type notificationMsg struct{ note tagedit.Notification }

func waitForSnapshot(ch <-chan tagedit.Snapshot) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg{snap: snap}
	}
}

func waitForNotification(ch <-chan tagedit.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		note, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg{note: note}
	}
}
