package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/nebula-tags/cli/internal/tagedit"
	"github.com/gravitrone/nebula-tags/cli/internal/ui/components"
)

const toastDuration = 2500 * time.Millisecond

// --- Messages ---

type errMsg struct{ err error }
type clearToastMsg struct{ seq int }
type initialLoadedMsg struct{ initial tagedit.Initial }

type appToast struct {
	level string
	text  string
	seq   int
}

// Deps wires the App to a running Store.
type Deps struct {
	Editor        Editor
	Load          func(ctx context.Context) (tagedit.Initial, error)
	Snapshots     <-chan tagedit.Snapshot
	Notifications <-chan tagedit.Notification
	Username      string
	VimKeys       bool
}

// --- App Model ---

// App is the root TUI model.
type App struct {
	deps Deps

	tags    TagsModel
	profile tagedit.Profile
	saving  bool
	loading bool

	width  int
	height int
	err    string

	toast    *appToast
	toastSeq int
}

// NewApp creates the root application model.
func NewApp(deps Deps) App {
	return App{
		deps:    deps,
		tags:    NewTagsModel(deps.Editor, deps.VimKeys),
		loading: deps.Load != nil,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.loadCmd(),
		waitForSnapshot(a.deps.Snapshots),
		waitForNotification(a.deps.Notifications),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.tags.width = msg.Width
		a.tags.height = msg.Height
		return a, nil

	case snapshotMsg:
		if msg.snap.State != nil {
			a.tags = a.tags.SetSnapshot(msg.snap)
			a.profile = msg.snap.State.Profile
			a.saving = msg.snap.State.ProfilePending
		}
		return a, waitForSnapshot(a.deps.Snapshots)

	case notificationMsg:
		level := string(msg.note.Severity)
		if msg.note.Severity == tagedit.SeverityInfo {
			level = "success"
		}
		return a, tea.Batch(a.setToast(level, msg.note.Message), waitForNotification(a.deps.Notifications))

	case initialLoadedMsg:
		a.loading = false
		if err := a.deps.Editor.Seed(msg.initial); err != nil {
			a.err = err.Error()
		}
		return a, nil

	case errMsg:
		a.loading = false
		a.err = msg.err.Error()
		return a, nil

	case intentErrMsg:
		return a, a.setToast("warning", msg.err.Error())

	case reloadRequestMsg:
		a.err = ""
		a.loading = true
		return a, a.loadCmd()

	case clearToastMsg:
		if a.toast != nil && a.toast.seq == msg.seq {
			a.toast = nil
		}
		return a, nil

	case tea.KeyMsg:
		if isKey(msg, "ctrl+c") || (isQuit(msg) && !a.tags.capturing()) {
			return a, tea.Quit
		}
		if a.err != "" && !a.tags.capturing() {
			if isKey(msg, "r") {
				a.err = ""
				a.loading = true
				return a, a.loadCmd()
			}
			if isBack(msg) {
				a.err = ""
				return a, nil
			}
		}
	}

	var cmd tea.Cmd
	a.tags, cmd = a.tags.Update(msg)
	return a, cmd
}

func (a App) View() string {
	header := a.renderHeader()

	content := a.tags.View()
	if a.loading {
		content = MutedStyle.Render("loading your tags…") + "\n\n" + content
	}

	hints := components.StatusBar(a.tags.hints(), a.width)

	feedback := ""
	if a.err != "" {
		message := a.err + "\n\n" + "r: retry | esc: dismiss"
		feedback = "\n\n" + centerBlockUniform(components.ErrorBox("Error", message, a.width), a.width)
	} else if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s%s", header, centerBlockUniform(content, a.width), hints, feedback)
}

func (a App) renderHeader() string {
	title := TitleStyle.Render("nebula tags")
	who := a.profile.Name
	if who == "" {
		who = a.deps.Username
	}
	parts := []string{title}
	if who != "" {
		parts = append(parts, SubtitleStyle.Render(components.SanitizeOneLine(who)))
	}
	if a.saving {
		parts = append(parts, PendingStyle.Render("saving profile…"))
	}
	return centerBlock(strings.Join(parts, SubtitleStyle.Render("  ·  ")), a.width)
}

func (a App) loadCmd() tea.Cmd {
	if a.deps.Load == nil {
		return nil
	}
	load := a.deps.Load
	return func() tea.Msg {
		initial, err := load(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return initialLoadedMsg{initial: initial}
	}
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toastSeq++
	seq := a.toastSeq
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
		seq:   seq,
	}
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func centerBlock(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		if lineWidth >= width {
			continue
		}
		pad := (width - lineWidth) / 2
		lines[i] = strings.Repeat(" ", pad) + line
	}
	return strings.Join(lines, "\n")
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	prefix := strings.Repeat(" ", (width-maxWidth)/2)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
