package tagedit

import "fmt"

// Command is a state transition request. The set of commands is closed.
type Command interface {
	command()
}

// CreateAssociation adds an existing tag to the user.
type CreateAssociation struct {
	TagID string
}

// CreateAssociationConfirmed carries the association the server created.
type CreateAssociationConfirmed struct {
	Association Association
}

// CreateTagAndAssociation creates the tag itself, then adds it to the user.
type CreateTagAndAssociation struct {
	TagID string
}

// UpdateAssociation changes the story and/or relevance of an association.
type UpdateAssociation struct {
	UserID string
	TagID  string
	Patch  Patch
}

// UpdateAssociationConfirmed carries the server's copy of an updated
// association. RequestedID is the id the update was issued against, which
// differs from Association.ID() when the update was issued while the create was
// still pending.
type UpdateAssociationConfirmed struct {
	Association Association
	Patch       Patch
	RequestedID string
}

// AssociationNotAdded drops an id from the freshly added set.
type AssociationNotAdded struct {
	ID string
}

// DeleteAssociation removes an association from the user.
type DeleteAssociation struct {
	Association Association
}

// DeleteAssociationConfirmed reports a completed delete.
type DeleteAssociationConfirmed struct {
	Association Association
}

// AssociationsLoaded upserts associations fetched from the server into the
// canonical collection, in order. With Replace set the list is the full
// server copy: associations missing from it are dropped. Pending markers are
// kept either way.
type AssociationsLoaded struct {
	Associations []Association
	Replace      bool
}

// ProfileLoaded sets the profile fetched from the server.
type ProfileLoaded struct {
	Profile Profile
}

// UpdateProfile edits the user's profile.
type UpdateProfile struct {
	Profile Profile
}

// ProfileUpdated carries the server's copy of the profile.
type ProfileUpdated struct {
	Profile Profile
}

// Notify forwards a message to the Notifier. It does not change state.
type Notify struct {
	Notification Notification
}

// OperationFailed reports a remote operation that did not succeed. Pending
// markers stay in place.
type OperationFailed struct {
	Op  Op
	ID  string
	Err error
}

// Reset returns the state to its initial shape.
type Reset struct{}

func (CreateAssociation) command()          {}
func (CreateAssociationConfirmed) command() {}
func (CreateTagAndAssociation) command()    {}
func (UpdateAssociation) command()          {}
func (UpdateAssociationConfirmed) command() {}
func (AssociationNotAdded) command()        {}
func (DeleteAssociation) command()          {}
func (DeleteAssociationConfirmed) command() {}
func (AssociationsLoaded) command()         {}
func (ProfileLoaded) command()              {}
func (UpdateProfile) command()              {}
func (ProfileUpdated) command()             {}
func (Notify) command()                     {}
func (OperationFailed) command()            {}
func (Reset) command()                      {}

// Op names a kind of remote operation.
type Op int

const (
	OpCreate Op = iota
	OpCreateTag
	OpUpdate
	OpDelete
	OpProfile
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpCreateTag:
		return "create-tag"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpProfile:
		return "profile"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

func (f OperationFailed) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Op, f.ID, f.Err)
}

func (f OperationFailed) Unwrap() error { return f.Err }

// profileKey orders profile updates among themselves.
const profileKey = "\x00profile"

// remoteKey reports whether cmd needs a remote call, and the key that orders
// it against other remote calls. Calls sharing a key run one at a time in the
// order they were issued.
func remoteKey(cmd Command) (string, bool) {
	switch c := cmd.(type) {
	case CreateAssociation:
		return c.TagID, true
	case CreateTagAndAssociation:
		return c.TagID, true
	case UpdateAssociation:
		return c.TagID, true
	case DeleteAssociation:
		return c.Association.TagID, true
	case UpdateProfile:
		return profileKey, true
	default:
		return "", false
	}
}
