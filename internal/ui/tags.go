package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/nebula-tags/cli/internal/tagedit"
	"github.com/gravitrone/nebula-tags/cli/internal/ui/components"
)

// Editor is the set of user intents the tag screen can issue.
type Editor interface {
	AddTag(tagID string) error
	CreateTagAndAdd(tagID string) error
	UpdateStory(userID, tagID, story string) error
	SetRelevance(userID, tagID string, relevance int) error
	Drop(a tagedit.Association, from, to int) error
	Remove(a tagedit.Association) error
	Seed(initial tagedit.Initial) error
}

// --- Messages ---

type intentErrMsg struct{ err error }

var errBusy = errors.New("still saving")
type reloadRequestMsg struct{}

// --- Tags Model ---

type tagsMode int

const (
	tagsModeBrowse tagsMode = iota
	tagsModeAdd
	tagsModeCreate
	tagsModeStory
	tagsModeConfirmDelete
)

const (
	minColumnWidth     = 14
	defaultColumnWidth = 18
)

var bucketTitles = [tagedit.BucketCount]string{"0 · new", "1", "2", "3", "4", "5"}

// TagsModel is the tag editor screen: six relevance columns, a cursor and
// the prompts that edit the selected association.
type TagsModel struct {
	editor Editor
	keys   keyMap

	snap tagedit.Snapshot

	col      int
	row      int
	selected string

	mode   tagsMode
	input  textinput.Model
	target tagedit.Association

	width  int
	height int
}

// NewTagsModel creates the tag screen.
func NewTagsModel(editor Editor, vimKeys bool) TagsModel {
	input := textinput.New()
	input.CharLimit = 200
	input.Width = 40

	empty := tagedit.NewState()
	return TagsModel{
		editor: editor,
		keys:   keyMap{vim: vimKeys},
		snap:   tagedit.Snapshot{State: empty, View: tagedit.Project(empty)},
		input:  input,
	}
}

// SetSnapshot replaces the rendered snapshot, keeping the cursor on the
// selected association when it still exists.
func (m TagsModel) SetSnapshot(snap tagedit.Snapshot) TagsModel {
	if snap.State == nil {
		return m
	}
	m.snap = snap
	if m.selected != "" {
		if b, i := snap.View.Locate(m.selected); b >= 0 {
			m.col, m.row = b, i
			return m
		}
	}
	m.clampRow()
	m.syncSelected()
	return m
}

// Selected returns the association under the cursor.
func (m TagsModel) Selected() (tagedit.Association, bool) {
	list := m.snap.View.Buckets[m.col]
	if m.row < 0 || m.row >= len(list) {
		return tagedit.Association{}, false
	}
	return list[m.row], true
}

// editable returns the selected association when no operation is in flight
// for it. A busy selection yields a warning instead.
func (m TagsModel) editable() (tagedit.Association, bool, tea.Cmd) {
	a, ok := m.Selected()
	if !ok {
		return tagedit.Association{}, false, nil
	}
	if m.snap.View.IsPending(a.ID()) {
		return tagedit.Association{}, false, intentCmd(fmt.Errorf("%w: %s", errBusy, a.TagID))
	}
	return a, true, nil
}

// capturing reports whether keys go to a prompt rather than navigation.
func (m TagsModel) capturing() bool {
	return m.mode != tagsModeBrowse
}

func (m TagsModel) Update(msg tea.Msg) (TagsModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == tagsModeAdd || m.mode == tagsModeCreate || m.mode == tagsModeStory {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.mode {
	case tagsModeAdd, tagsModeCreate, tagsModeStory:
		return m.handlePromptKeys(key)
	case tagsModeConfirmDelete:
		return m.handleConfirmKeys(key)
	}
	return m.handleBrowseKeys(key)
}

func (m TagsModel) handleBrowseKeys(msg tea.KeyMsg) (TagsModel, tea.Cmd) {
	switch {
	case m.keys.left(msg):
		if m.col > 0 {
			m.col--
			m.clampRow()
			m.syncSelected()
		}
	case m.keys.right(msg):
		if m.col < tagedit.BucketCount-1 {
			m.col++
			m.clampRow()
			m.syncSelected()
		}
	case m.keys.up(msg):
		if m.row > 0 {
			m.row--
			m.syncSelected()
		}
	case m.keys.down(msg):
		if m.row < len(m.snap.View.Buckets[m.col])-1 {
			m.row++
			m.syncSelected()
		}
	case isKey(msg, "a"):
		return m.openPrompt(tagsModeAdd, "tag name", "")
	case isKey(msg, "c"):
		return m.openPrompt(tagsModeCreate, "new tag name", "")
	case isKey(msg, "e"):
		a, ok, cmd := m.editable()
		if !ok {
			return m, cmd
		}
		m.target = a
		return m.openPrompt(tagsModeStory, "why this tag?", a.Story)
	case isKey(msg, "<", ">"):
		a, ok, cmd := m.editable()
		if !ok {
			return m, cmd
		}
		to := m.col - 1
		if isKey(msg, ">") {
			to = m.col + 1
		}
		if to < tagedit.MinRelevance || to > tagedit.MaxRelevance {
			return m, nil
		}
		return m, intentCmd(m.editor.Drop(a, m.col, to))
	case isKey(msg, "d"):
		a, ok, cmd := m.editable()
		if !ok {
			return m, cmd
		}
		m.target = a
		m.mode = tagsModeConfirmDelete
	case isKey(msg, "r"):
		return m, func() tea.Msg { return reloadRequestMsg{} }
	default:
		if n, ok := relevanceKey(msg); ok {
			a, ok, cmd := m.editable()
			if !ok {
				return m, cmd
			}
			return m, intentCmd(m.editor.SetRelevance(a.UserID, a.TagID, n))
		}
	}
	return m, nil
}

func (m TagsModel) handlePromptKeys(msg tea.KeyMsg) (TagsModel, tea.Cmd) {
	switch {
	case isBack(msg):
		return m.closePrompt(), nil
	case isEnter(msg):
		value := strings.TrimSpace(m.input.Value())
		mode, target := m.mode, m.target
		m = m.closePrompt()
		var err error
		switch mode {
		case tagsModeAdd:
			err = m.editor.AddTag(value)
		case tagsModeCreate:
			err = m.editor.CreateTagAndAdd(value)
		case tagsModeStory:
			if value == target.Story {
				return m, nil
			}
			err = m.editor.UpdateStory(target.UserID, target.TagID, value)
		}
		return m, intentCmd(err)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m TagsModel) handleConfirmKeys(msg tea.KeyMsg) (TagsModel, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		target := m.target
		m.mode = tagsModeBrowse
		m.target = tagedit.Association{}
		return m, intentCmd(m.editor.Remove(target))
	case isKey(msg, "n") || isBack(msg):
		m.mode = tagsModeBrowse
		m.target = tagedit.Association{}
	}
	return m, nil
}

func (m TagsModel) openPrompt(mode tagsMode, placeholder, value string) (TagsModel, tea.Cmd) {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m TagsModel) closePrompt() TagsModel {
	m.mode = tagsModeBrowse
	m.target = tagedit.Association{}
	m.input.SetValue("")
	m.input.Blur()
	return m
}

func (m *TagsModel) clampRow() {
	n := len(m.snap.View.Buckets[m.col])
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *TagsModel) syncSelected() {
	if a, ok := m.Selected(); ok {
		m.selected = a.ID()
		return
	}
	m.selected = ""
}

func intentCmd(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg { return intentErrMsg{err: err} }
}

// --- View ---

func (m TagsModel) View() string {
	colWidth := defaultColumnWidth
	if m.width > 0 {
		colWidth = m.width / tagedit.BucketCount
		if colWidth < minColumnWidth {
			colWidth = minColumnWidth
		}
	}

	columns := make([]string, 0, tagedit.BucketCount)
	for b := range tagedit.BucketCount {
		columns = append(columns, m.renderColumn(b, colWidth))
	}
	sections := []string{lipgloss.JoinHorizontal(lipgloss.Top, columns...)}

	if line := m.renderPendingAdds(); line != "" {
		sections = append(sections, line)
	}
	if a, ok := m.Selected(); ok && m.mode == tagsModeBrowse {
		sections = append(sections, m.renderDetail(a))
	}

	switch m.mode {
	case tagsModeAdd:
		sections = append(sections, components.InputDialog("Add tag", m.input.View()))
	case tagsModeCreate:
		sections = append(sections, components.InputDialog("Create tag", m.input.View()))
	case tagsModeStory:
		sections = append(sections, components.InputDialog("Story for "+m.target.TagID, m.input.View()))
	case tagsModeConfirmDelete:
		sections = append(sections, components.ConfirmDialog("Remove tag", fmt.Sprintf("Remove %s from your tags?", m.target.TagID)))
	}
	return strings.Join(sections, "\n\n")
}

func (m TagsModel) renderColumn(bucket, width int) string {
	list := m.snap.View.Buckets[bucket]
	inner := width - 4
	rows := make([]string, 0, len(list))
	for i, a := range list {
		name := components.SanitizeOneLine(a.TagID)
		added := m.snap.State.IsAdded(a.ID())
		if added {
			name = "+ " + name
		}
		pending := m.snap.View.IsPending(a.ID())
		if pending {
			name += " …"
		}
		name = components.ClampTextWidth(name, inner)

		switch {
		case bucket == m.col && i == m.row:
			rows = append(rows, SelectedStyle.Render(name))
		case pending:
			rows = append(rows, PendingStyle.Render(name))
		case added:
			rows = append(rows, AddedStyle.Render(name))
		default:
			rows = append(rows, NormalStyle.Render(name))
		}
	}
	return components.Column(bucketTitles[bucket], rows, width, bucket == m.col)
}

func (m TagsModel) renderPendingAdds() string {
	adds := m.snap.State.Add.Values()
	if len(adds) == 0 {
		return ""
	}
	names := make([]string, 0, len(adds))
	for _, a := range adds {
		names = append(names, components.SanitizeOneLine(a.TagID))
	}
	return PendingStyle.Render("adding: " + strings.Join(names, ", "))
}

func (m TagsModel) renderDetail(a tagedit.Association) string {
	story := components.SanitizeText(a.Story)
	if story == "" {
		story = MutedStyle.Render("no story yet. press e to write one")
	} else {
		story = StoryStyle.Render(story)
	}
	return TitleStyle.Render(components.SanitizeOneLine(a.TagID)) + "\n" + components.Indent(story, 2)
}

func (m TagsModel) hints() []string {
	switch m.mode {
	case tagsModeAdd, tagsModeCreate, tagsModeStory:
		return []string{components.Hint("enter", "save"), components.Hint("esc", "cancel")}
	case tagsModeConfirmDelete:
		return []string{components.Hint("y", "remove"), components.Hint("n", "keep")}
	}
	return []string{
		components.Hint("←/→", "bucket"),
		components.Hint("0-5", "rank"),
		components.Hint("</>", "move"),
		components.Hint("a", "add"),
		components.Hint("c", "create"),
		components.Hint("e", "story"),
		components.Hint("d", "remove"),
		components.Hint("r", "reload"),
		components.Hint("q", "quit"),
	}
}
