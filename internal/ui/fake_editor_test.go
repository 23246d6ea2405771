package ui

import (
	"fmt"

	"github.com/gravitrone/nebula-tags/cli/internal/tagedit"
)

// fakeEditor records intents instead of dispatching them.
type fakeEditor struct {
	calls  []string
	err    error
	seeded []tagedit.Initial
}

func (f *fakeEditor) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.err
}

func (f *fakeEditor) AddTag(tagID string) error {
	return f.record("add %s", tagID)
}

func (f *fakeEditor) CreateTagAndAdd(tagID string) error {
	return f.record("create %s", tagID)
}

func (f *fakeEditor) UpdateStory(userID, tagID, story string) error {
	return f.record("story %s/%s %q", userID, tagID, story)
}

func (f *fakeEditor) SetRelevance(userID, tagID string, relevance int) error {
	return f.record("rank %s/%s %d", userID, tagID, relevance)
}

func (f *fakeEditor) Drop(a tagedit.Association, from, to int) error {
	return f.record("drop %s %d->%d", a.TagID, from, to)
}

func (f *fakeEditor) Remove(a tagedit.Association) error {
	return f.record("remove %s", a.TagID)
}

func (f *fakeEditor) Seed(initial tagedit.Initial) error {
	f.seeded = append(f.seeded, initial)
	return f.err
}

// snapshotOf builds the snapshot a Store would publish after cmds.
func snapshotOf(cmds ...tagedit.Command) tagedit.Snapshot {
	s := tagedit.NewState()
	for _, cmd := range cmds {
		s = tagedit.Reduce(s, cmd)
	}
	return tagedit.Snapshot{State: s, View: tagedit.Project(s)}
}

func loaded(as ...tagedit.Association) tagedit.Command {
	return tagedit.AssociationsLoaded{Associations: as}
}
