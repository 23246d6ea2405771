package tagedit

import "github.com/gravitrone/nebula-tags/cli/internal/entitylist"

// State is the edit-page state. A *State is never modified after Reduce
// returns it; treat every field as read-only.
type State struct {
	// Associations is the canonical, server-confirmed collection.
	Associations entitylist.List[Association]

	// Add, Update and Remove track associations with an operation of that
	// kind in flight.
	Add    entitylist.List[Association]
	Update entitylist.List[PendingUpdate]
	Remove entitylist.List[Association]

	// Added lists confirmed ids that have not been ranked yet.
	Added []string

	Profile        Profile
	ProfilePending bool
}

// NewState returns the initial, empty state.
func NewState() *State {
	return &State{}
}

// FindByTag returns the canonical association for tagID.
func (s *State) FindByTag(tagID string) (Association, bool) {
	for _, a := range s.Associations.Values() {
		if a.TagID == tagID {
			return a, true
		}
	}
	return Association{}, false
}

// IsAdded reports whether id is in the freshly added set.
func (s *State) IsAdded(id string) bool {
	for _, added := range s.Added {
		if added == id {
			return true
		}
	}
	return false
}

// Pending reports whether any operation is in flight for id.
func (s *State) Pending(id string) bool {
	return s.Add.Has(id) || s.Update.Has(id) || s.Remove.Has(id)
}

func (s *State) clone() *State {
	next := *s
	return &next
}
