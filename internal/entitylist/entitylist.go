// Package entitylist provides an immutable ordered map of entities keyed by id.
//
// Every operation returns a new List and leaves its input untouched, so a List
// can be shared freely between state snapshots.
package entitylist

import "slices"

// Entity is anything with a stable id.
type Entity interface {
	ID() string
}

// List tracks entities by id in insertion order. The zero value is empty and
// ready to use.
type List[T Entity] struct {
	byID   map[string]T
	allIDs []string
}

// Of builds a list from entities, skipping later duplicates.
func Of[T Entity](entities ...T) List[T] {
	var l List[T]
	for _, e := range entities {
		l = Add(l, e)
	}
	return l
}

// Add inserts e at the end. Adding an id that is already present returns the
// list unchanged.
func Add[T Entity](l List[T], e T) List[T] {
	id := e.ID()
	if _, ok := l.byID[id]; ok {
		return l
	}
	byID := make(map[string]T, len(l.byID)+1)
	for k, v := range l.byID {
		byID[k] = v
	}
	byID[id] = e
	allIDs := make([]string, len(l.allIDs), len(l.allIDs)+1)
	copy(allIDs, l.allIDs)
	return List[T]{byID: byID, allIDs: append(allIDs, id)}
}

// Put inserts e, or replaces the entity stored under its id while keeping its
// position.
func Put[T Entity](l List[T], e T) List[T] {
	id := e.ID()
	if _, ok := l.byID[id]; !ok {
		return Add(l, e)
	}
	byID := make(map[string]T, len(l.byID))
	for k, v := range l.byID {
		byID[k] = v
	}
	byID[id] = e
	return List[T]{byID: byID, allIDs: l.allIDs}
}

// Remove deletes id from the list. Removing an absent id is a no-op.
func Remove[T Entity](l List[T], id string) List[T] {
	if _, ok := l.byID[id]; !ok {
		return l
	}
	byID := make(map[string]T, len(l.byID)-1)
	for k, v := range l.byID {
		if k != id {
			byID[k] = v
		}
	}
	allIDs := make([]string, 0, len(l.allIDs)-1)
	for _, existing := range l.allIDs {
		if existing != id {
			allIDs = append(allIDs, existing)
		}
	}
	return List[T]{byID: byID, allIDs: allIDs}
}

// Get returns the entity stored under id.
func (l List[T]) Get(id string) (T, bool) {
	e, ok := l.byID[id]
	return e, ok
}

// Has reports whether id is in the list.
func (l List[T]) Has(id string) bool {
	_, ok := l.byID[id]
	return ok
}

// Len returns the number of entities.
func (l List[T]) Len() int {
	return len(l.allIDs)
}

// IDs returns a copy of the ids in insertion order.
func (l List[T]) IDs() []string {
	return slices.Clone(l.allIDs)
}

// Values returns the entities in insertion order.
func (l List[T]) Values() []T {
	out := make([]T, 0, len(l.allIDs))
	for _, id := range l.allIDs {
		out = append(out, l.byID[id])
	}
	return out
}

// AppendID returns ids with id appended, or ids unchanged if already present.
func AppendID(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	out := make([]string, len(ids), len(ids)+1)
	copy(out, ids)
	return append(out, id)
}

// RemoveID returns ids without id. Removing an absent id returns ids unchanged.
func RemoveID(ids []string, id string) []string {
	if !slices.Contains(ids, id) {
		return ids
	}
	out := make([]string, 0, len(ids)-1)
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
