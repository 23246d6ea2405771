package tagedit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service is the remote side of every operation.
type Service interface {
	CreateTag(ctx context.Context, tagID string) error
	CreateAssociation(ctx context.Context, tagID string) (Association, error)
	UpdateAssociation(ctx context.Context, userID, tagID string, patch Patch) (Association, error)
	DeleteAssociation(ctx context.Context, a Association) error
	UpdateProfile(ctx context.Context, p Profile) (Profile, error)
}

// Executor performs the remote call behind a command and translates the
// outcome into resolution commands.
type Executor struct {
	svc    Service
	logger *slog.Logger

	mu sync.Mutex
	// confirmed maps a tag id to the user id its create was confirmed with.
	confirmed map[string]string
}

// NewExecutor creates an Executor. A nil logger discards output.
func NewExecutor(svc Service, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{
		svc:       svc,
		logger:    logger,
		confirmed: make(map[string]string),
	}
}

// Execute runs the remote operation for cmd and returns the commands to
// dispatch afterwards, in order. Commands without a remote side yield nil.
func (e *Executor) Execute(ctx context.Context, cmd Command) []Command {
	opID := uuid.NewString()
	start := time.Now()

	out, op, id, err := e.execute(ctx, cmd)
	if op < 0 {
		return nil
	}

	log := e.logger.With("op_id", opID, "op", op.String(), "id", id, "elapsed", time.Since(start))
	if err != nil {
		log.Warn("remote operation failed", "error", err)
		return []Command{OperationFailed{Op: op, ID: id, Err: err}}
	}
	log.Debug("remote operation confirmed", "resolutions", len(out))
	return out
}

func (e *Executor) execute(ctx context.Context, cmd Command) ([]Command, Op, string, error) {
	switch c := cmd.(type) {
	case CreateAssociation:
		id := AssociationID(PendingUserID, c.TagID)
		a, err := e.svc.CreateAssociation(ctx, c.TagID)
		if err != nil {
			return nil, OpCreate, id, err
		}
		e.mu.Lock()
		e.confirmed[c.TagID] = a.UserID
		e.mu.Unlock()
		return []Command{
			CreateAssociationConfirmed{Association: a},
			Notify{Notification: Notification{Severity: SeverityInfo, Message: fmt.Sprintf("%s added", a.TagID)}},
		}, OpCreate, id, nil

	case CreateTagAndAssociation:
		if err := e.svc.CreateTag(ctx, c.TagID); err != nil {
			return nil, OpCreateTag, c.TagID, err
		}
		return []Command{CreateAssociation{TagID: c.TagID}}, OpCreateTag, c.TagID, nil

	case UpdateAssociation:
		requested := AssociationID(c.UserID, c.TagID)
		userID := c.UserID
		if userID == PendingUserID {
			e.mu.Lock()
			confirmed, ok := e.confirmed[c.TagID]
			e.mu.Unlock()
			if !ok {
				return nil, OpUpdate, requested, ErrPendingCreate
			}
			userID = confirmed
		}
		a, err := e.svc.UpdateAssociation(ctx, userID, c.TagID, c.Patch)
		if err != nil {
			return nil, OpUpdate, requested, err
		}
		out := []Command{UpdateAssociationConfirmed{Association: a, Patch: c.Patch, RequestedID: requested}}
		if c.Patch.TouchesStory() {
			out = append(out, Notify{Notification: Notification{Severity: SeverityInfo, Message: "your story was updated"}})
		}
		if c.Patch.TouchesRelevance() {
			out = append(out, AssociationNotAdded{ID: a.ID()})
		}
		return out, OpUpdate, requested, nil

	case DeleteAssociation:
		a := c.Association
		if err := e.svc.DeleteAssociation(ctx, a); err != nil {
			return nil, OpDelete, a.ID(), err
		}
		e.mu.Lock()
		delete(e.confirmed, a.TagID)
		e.mu.Unlock()
		return []Command{
			DeleteAssociationConfirmed{Association: a},
			AssociationNotAdded{ID: a.ID()},
		}, OpDelete, a.ID(), nil

	case UpdateProfile:
		p, err := e.svc.UpdateProfile(ctx, c.Profile)
		if err != nil {
			return nil, OpProfile, "profile", err
		}
		return []Command{
			ProfileUpdated{Profile: p},
			Notify{Notification: Notification{Severity: SeverityInfo, Message: "your profile was updated"}},
		}, OpProfile, "profile", nil

	default:
		return nil, -1, "", nil
	}
}

// sequencer runs functions concurrently across keys and one at a time, in
// submission order, within a key.
type sequencer struct {
	mu    sync.Mutex
	tails map[string]chan struct{}
}

func newSequencer() *sequencer {
	return &sequencer{tails: make(map[string]chan struct{})}
}

func (q *sequencer) run(key string, fn func()) {
	done := make(chan struct{})
	q.mu.Lock()
	prev := q.tails[key]
	q.tails[key] = done
	q.mu.Unlock()

	go func() {
		if prev != nil {
			<-prev
		}
		fn()
		close(done)

		q.mu.Lock()
		if q.tails[key] == done {
			delete(q.tails, key)
		}
		q.mu.Unlock()
	}()
}
