package tagedit

// View is the presentation projection of a State.
type View struct {
	// PendingIDs lists ids with an operation in flight: creates, then updates,
	// then removals.
	PendingIDs []string
	// Buckets groups canonical associations by relevance. Bucket 0 also holds
	// every freshly added association regardless of its stored relevance.
	Buckets [BucketCount][]Association
}

// Project derives the View for s. It is recomputed from scratch on every call.
func Project(s *State) View {
	var v View
	if s == nil {
		return v
	}

	v.PendingIDs = make([]string, 0, s.Add.Len()+s.Update.Len()+s.Remove.Len())
	v.PendingIDs = append(v.PendingIDs, s.Add.IDs()...)
	v.PendingIDs = append(v.PendingIDs, s.Update.IDs()...)
	v.PendingIDs = append(v.PendingIDs, s.Remove.IDs()...)

	for _, a := range s.Associations.Values() {
		bucket := a.Relevance
		if s.IsAdded(a.ID()) {
			bucket = MinRelevance
		}
		// In-flight updates are shown as if they had landed.
		if pu, ok := s.Update.Get(a.ID()); ok {
			a = pu.Association
			if pu.Ranked {
				bucket = a.Relevance
			}
		}
		if !ValidRelevance(bucket) {
			bucket = MinRelevance
		}
		v.Buckets[bucket] = append(v.Buckets[bucket], a)
	}
	return v
}

// IsPending reports whether id is in PendingIDs.
func (v View) IsPending(id string) bool {
	for _, p := range v.PendingIDs {
		if p == id {
			return true
		}
	}
	return false
}

// Locate returns the bucket and position of id, or -1, -1.
func (v View) Locate(id string) (bucket, index int) {
	for b, list := range v.Buckets {
		for i, a := range list {
			if a.ID() == id {
				return b, i
			}
		}
	}
	return -1, -1
}

// Len returns the number of associations across all buckets.
func (v View) Len() int {
	n := 0
	for _, list := range v.Buckets {
		n += len(list)
	}
	return n
}
