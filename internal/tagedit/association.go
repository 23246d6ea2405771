// Package tagedit keeps a user's tag associations consistent while create,
// update and delete requests are in flight.
//
// State only changes through Reduce. A Store owns the single live State, runs
// remote operations through an Executor, and feeds their results back through
// Reduce in the order they were produced.
package tagedit

import (
	"fmt"
	"strings"
)

// PendingUserID stands in for the user id of an association whose create has
// not been confirmed yet.
const PendingUserID = "pending"

const (
	// MinRelevance marks a newly added, unranked association.
	MinRelevance = 0
	// MaxRelevance is the highest relevance rank.
	MaxRelevance = 5
	// BucketCount is the number of relevance buckets in a View.
	BucketCount = MaxRelevance + 1
)

const idSeparator = "--"

// Association links one user to one tag.
type Association struct {
	UserID    string
	TagID     string
	Story     string
	Relevance int
}

// AssociationID renders the composite key of an association.
func AssociationID(userID, tagID string) string {
	return userID + idSeparator + tagID
}

// ParseAssociationID splits an id produced by AssociationID.
func ParseAssociationID(id string) (userID, tagID string, err error) {
	userID, tagID, ok := strings.Cut(id, idSeparator)
	if !ok || userID == "" || tagID == "" {
		return "", "", fmt.Errorf("invalid association id %q", id)
	}
	return userID, tagID, nil
}

// ID returns "{userId}--{tagId}".
func (a Association) ID() string {
	return AssociationID(a.UserID, a.TagID)
}

// Pending reports whether the association is still waiting for its create to
// be confirmed.
func (a Association) Pending() bool {
	return a.UserID == PendingUserID
}

// ValidRelevance reports whether r is a valid rank.
func ValidRelevance(r int) bool {
	return r >= MinRelevance && r <= MaxRelevance
}

// Patch is a partial association update. Nil fields are not part of the update.
type Patch struct {
	Story     *string
	Relevance *int
}

// StoryPatch returns a patch that only sets the story.
func StoryPatch(story string) Patch {
	return Patch{Story: &story}
}

// RelevancePatch returns a patch that only sets the relevance.
func RelevancePatch(relevance int) Patch {
	return Patch{Relevance: &relevance}
}

// TouchesStory reports whether the patch sets the story.
func (p Patch) TouchesStory() bool { return p.Story != nil }

// TouchesRelevance reports whether the patch sets the relevance.
func (p Patch) TouchesRelevance() bool { return p.Relevance != nil }

// Empty reports whether the patch sets nothing.
func (p Patch) Empty() bool { return p.Story == nil && p.Relevance == nil }

// Apply returns a with the fields present in the patch overwritten.
func (p Patch) Apply(a Association) Association {
	if p.Story != nil {
		a.Story = *p.Story
	}
	if p.Relevance != nil {
		a.Relevance = *p.Relevance
	}
	return a
}

// Equal compares patches by value.
func (p Patch) Equal(o Patch) bool {
	return equalPtr(p.Story, o.Story) && equalPtr(p.Relevance, o.Relevance)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (p Patch) String() string {
	var parts []string
	if p.Story != nil {
		parts = append(parts, fmt.Sprintf("story=%q", *p.Story))
	}
	if p.Relevance != nil {
		parts = append(parts, fmt.Sprintf("relevance=%d", *p.Relevance))
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// PendingUpdate is an entry of the update list: the association as it will
// look once the update lands, and the patch that was sent last. Ranked stays
// set while any stacked update for the id changed the relevance.
type PendingUpdate struct {
	Association
	Patch  Patch
	Ranked bool
}

// Profile holds the editable fields of the user's profile.
type Profile struct {
	Name        string
	Description string
}
