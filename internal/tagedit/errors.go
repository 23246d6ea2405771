package tagedit

import "errors"

var (
	// ErrEmptyTag is returned when a tag id is blank.
	ErrEmptyTag = errors.New("tag id required")
	// ErrAlreadyAdded is returned when the tag is already in the user's list.
	ErrAlreadyAdded = errors.New("tag already added")
	// ErrInvalidRelevance is returned for a rank outside 0-5.
	ErrInvalidRelevance = errors.New("relevance must be between 0 and 5")
	// ErrPendingCreate is returned when an operation needs the confirmed user id
	// of an association whose create has not been confirmed.
	ErrPendingCreate = errors.New("tag is still being added")
	// ErrEmptyPatch is returned for an update that changes nothing.
	ErrEmptyPatch = errors.New("nothing to update")
	// ErrClosed is returned by Dispatch after Close.
	ErrClosed = errors.New("store closed")
)
