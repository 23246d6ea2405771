package tagedit

import "github.com/gravitrone/nebula-tags/cli/internal/entitylist"

// Reduce applies cmd to s and returns the resulting state. s is never
// modified; when cmd does not change anything Reduce returns s itself, so
// callers can compare pointers to detect changes.
func Reduce(s *State, cmd Command) *State {
	if s == nil {
		s = NewState()
	}

	switch c := cmd.(type) {
	case CreateAssociation:
		return reduceCreate(s, c.TagID)

	case CreateTagAndAssociation:
		return reduceCreate(s, c.TagID)

	case CreateAssociationConfirmed:
		a := c.Association
		pendingID := AssociationID(PendingUserID, a.TagID)
		next := s.clone()
		next.Add = entitylist.Remove(s.Add, pendingID)
		next.Added = entitylist.AppendID(s.Added, a.ID())
		next.Associations = entitylist.Put(s.Associations, a)
		// Updates issued before the create landed are re-keyed to the confirmed id.
		if pu, ok := s.Update.Get(pendingID); ok {
			pu.UserID = a.UserID
			next.Update = entitylist.Put(entitylist.Remove(s.Update, pendingID), pu)
		}
		return next

	case UpdateAssociation:
		id := AssociationID(c.UserID, c.TagID)
		base := Association{UserID: c.UserID, TagID: c.TagID}
		ranked := c.Patch.TouchesRelevance()
		if existing, ok := s.Update.Get(id); ok {
			base = existing.Association
			ranked = ranked || existing.Ranked
		} else if existing, ok := s.Associations.Get(id); ok {
			base = existing
		} else if existing, ok := s.Add.Get(id); ok {
			base = existing
		}
		next := s.clone()
		next.Update = entitylist.Put(s.Update, PendingUpdate{
			Association: c.Patch.Apply(base),
			Patch:       c.Patch,
			Ranked:      ranked,
		})
		return next

	case UpdateAssociationConfirmed:
		a := c.Association
		next := s.clone()
		for _, id := range confirmedIDs(a.ID(), c.RequestedID) {
			// A newer update for the same id keeps its marker until its own
			// confirmation arrives.
			if pu, ok := next.Update.Get(id); ok && pu.Patch.Equal(c.Patch) {
				next.Update = entitylist.Remove(next.Update, id)
			}
			if c.Patch.TouchesRelevance() {
				next.Added = entitylist.RemoveID(next.Added, id)
			}
		}
		if !a.Pending() {
			next.Associations = entitylist.Put(s.Associations, a)
		}
		return next

	case AssociationNotAdded:
		if !s.IsAdded(c.ID) {
			return s
		}
		next := s.clone()
		next.Added = entitylist.RemoveID(s.Added, c.ID)
		return next

	case DeleteAssociation:
		next := s.clone()
		next.Remove = entitylist.Add(s.Remove, c.Association)
		return next

	case DeleteAssociationConfirmed:
		id := c.Association.ID()
		next := s.clone()
		next.Remove = entitylist.Remove(s.Remove, id)
		next.Associations = entitylist.Remove(s.Associations, id)
		next.Added = entitylist.RemoveID(s.Added, id)
		return next

	case AssociationsLoaded:
		if len(c.Associations) == 0 && (!c.Replace || s.Associations.Len() == 0) {
			return s
		}
		next := s.clone()
		if c.Replace {
			next.Associations = entitylist.List[Association]{}
		}
		for _, a := range c.Associations {
			next.Associations = entitylist.Put(next.Associations, a)
		}
		if c.Replace {
			next.Added = nil
			for _, id := range s.Added {
				if next.Associations.Has(id) {
					next.Added = entitylist.AppendID(next.Added, id)
				}
			}
		}
		return next

	case ProfileLoaded:
		next := s.clone()
		next.Profile = c.Profile
		return next

	case UpdateProfile:
		next := s.clone()
		next.ProfilePending = true
		return next

	case ProfileUpdated:
		next := s.clone()
		next.Profile = c.Profile
		next.ProfilePending = false
		return next

	case Reset:
		return NewState()

	default:
		return s
	}
}

func reduceCreate(s *State, tagID string) *State {
	a := Association{UserID: PendingUserID, TagID: tagID, Relevance: MinRelevance}
	if s.Add.Has(a.ID()) {
		return s
	}
	next := s.clone()
	next.Add = entitylist.Add(s.Add, a)
	return next
}

func confirmedIDs(id, requested string) []string {
	if requested == "" || requested == id {
		return []string{id}
	}
	return []string{id, requested}
}
