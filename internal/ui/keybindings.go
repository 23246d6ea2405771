package ui

import tea "github.com/charmbracelet/bubbletea"

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter", "return")
}

// keyMap resolves navigation keys, with hjkl when vim keys are on.
type keyMap struct {
	vim bool
}

func (k keyMap) up(msg tea.KeyMsg) bool {
	return isKey(msg, "up") || (k.vim && isKey(msg, "k"))
}

func (k keyMap) down(msg tea.KeyMsg) bool {
	return isKey(msg, "down") || (k.vim && isKey(msg, "j"))
}

func (k keyMap) left(msg tea.KeyMsg) bool {
	return isKey(msg, "left") || (k.vim && isKey(msg, "h"))
}

func (k keyMap) right(msg tea.KeyMsg) bool {
	return isKey(msg, "right") || (k.vim && isKey(msg, "l"))
}

// relevanceKey reports the rank typed with a digit key.
func relevanceKey(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '0' || r > '5' {
		return 0, false
	}
	return int(r - '0'), true
}
