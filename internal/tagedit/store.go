package tagedit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Snapshot is an immutable pairing of a State and its View.
type Snapshot struct {
	State *State
	View  View
}

// StoreConfig holds the options for NewStore.
type StoreConfig struct {
	Service  Service
	Notifier Notifier // optional
	Logger   *slog.Logger

	// Seed, when set, is folded into the initial state before the loop starts.
	Seed *Initial

	// Context is passed to every remote call. Remote calls are never cancelled
	// by the Store itself; cancelling this context is the caller's decision.
	Context context.Context
}

// Store is the single writer of the edit-page state. Commands are applied in
// the order they are received; remote operations run on their own goroutines
// and feed their results back through the same queue.
type Store struct {
	exec     *Executor
	notifier Notifier
	logger   *slog.Logger
	ctx      context.Context

	cmds chan Command
	done chan struct{}
	seq  *sequencer

	// work counts queued commands plus running remote operations.
	work   sync.WaitGroup
	mu     sync.Mutex
	closed bool

	state *State // owned by the loop goroutine

	snapMu     sync.RWMutex
	snap       Snapshot
	subs       []chan Snapshot
	subsClosed bool
}

// NewStore starts a Store. Call Close to stop it.
func NewStore(cfg StoreConfig) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = discardNotifier{}
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	initial := NewState()
	if cfg.Seed != nil {
		initial = Reduce(initial, ProfileLoaded{Profile: cfg.Seed.Profile})
		initial = Reduce(initial, AssociationsLoaded{Associations: cfg.Seed.Associations})
	}
	s := &Store{
		exec:     NewExecutor(cfg.Service, logger),
		notifier: notifier,
		logger:   logger,
		ctx:      ctx,
		cmds:     make(chan Command),
		done:     make(chan struct{}),
		seq:      newSequencer(),
		state:    initial,
		snap:     Snapshot{State: initial, View: Project(initial)},
	}
	go s.loop()
	return s
}

// Dispatch queues cmd. It blocks until the loop accepts the command.
func (s *Store) Dispatch(cmd Command) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.work.Add(1)
	s.mu.Unlock()

	s.cmds <- cmd
	return nil
}

// Snapshot returns the latest published snapshot.
func (s *Store) Snapshot() Snapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snap
}

// Subscribe returns a channel that always holds the most recent snapshot.
// Stale snapshots are dropped when the reader falls behind. The channel is
// closed by Close.
func (s *Store) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	s.snapMu.Lock()
	defer s.snapMu.Unlock()
	ch <- s.snap
	if s.subsClosed {
		close(ch)
		return ch
	}
	s.subs = append(s.subs, ch)
	return ch
}

// Close stops accepting commands, waits for every in-flight remote operation
// and its resolutions, then stops the loop.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.work.Wait()
	close(s.cmds)
	<-s.done

	s.snapMu.Lock()
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
	s.subsClosed = true
	s.snapMu.Unlock()
	return nil
}

func (s *Store) loop() {
	defer close(s.done)
	for cmd := range s.cmds {
		s.apply(cmd)
		s.work.Done()
	}
}

func (s *Store) apply(cmd Command) {
	switch c := cmd.(type) {
	case Notify:
		s.notifier.Notify(c.Notification)
	case OperationFailed:
		s.logger.Error("operation failed", "op", c.Op.String(), "id", c.ID, "error", c.Err)
		s.notifier.Notify(Notification{Severity: SeverityError, Message: c.Error()})
	}

	prev := s.state
	next := Reduce(prev, cmd)
	if next != prev {
		s.state = next
		s.publish(Snapshot{State: next, View: Project(next)})
	}

	if key, ok := remoteKey(cmd); ok {
		s.spawn(key, cmd)
	}
}

func (s *Store) spawn(key string, cmd Command) {
	s.work.Add(1)
	s.seq.run(key, func() {
		defer s.work.Done()
		for _, res := range s.exec.Execute(s.ctx, cmd) {
			s.work.Add(1)
			s.cmds <- res
		}
	})
}

func (s *Store) publish(snap Snapshot) {
	s.snapMu.Lock()
	defer s.snapMu.Unlock()
	s.snap = snap
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// --- Intents ---
//
// The methods below validate a user action against the latest snapshot and
// dispatch the matching command. Validation errors are returned directly and
// never enter the queue.

// AddTag adds an existing tag to the user.
func (s *Store) AddTag(tagID string) error {
	tagID, err := s.validateNewTag(tagID)
	if err != nil {
		return err
	}
	return s.Dispatch(CreateAssociation{TagID: tagID})
}

// CreateTagAndAdd creates a new tag and adds it to the user.
func (s *Store) CreateTagAndAdd(tagID string) error {
	tagID, err := s.validateNewTag(tagID)
	if err != nil {
		return err
	}
	return s.Dispatch(CreateTagAndAssociation{TagID: tagID})
}

// UpdateStory replaces the story of an association.
func (s *Store) UpdateStory(userID, tagID, story string) error {
	return s.Update(userID, tagID, StoryPatch(story))
}

// SetRelevance ranks an association.
func (s *Store) SetRelevance(userID, tagID string, relevance int) error {
	return s.Update(userID, tagID, RelevancePatch(relevance))
}

// Drop handles an association moved from one bucket to another. Dropping into
// the same bucket does nothing.
func (s *Store) Drop(a Association, from, to int) error {
	if from == to {
		return nil
	}
	return s.SetRelevance(a.UserID, a.TagID, to)
}

// Update applies a patch to an association.
func (s *Store) Update(userID, tagID string, patch Patch) error {
	if patch.Empty() {
		return ErrEmptyPatch
	}
	if patch.Relevance != nil && !ValidRelevance(*patch.Relevance) {
		return fmt.Errorf("%w: got %d", ErrInvalidRelevance, *patch.Relevance)
	}
	if strings.TrimSpace(tagID) == "" || userID == "" {
		return ErrEmptyTag
	}
	return s.Dispatch(UpdateAssociation{UserID: userID, TagID: tagID, Patch: patch})
}

// Remove deletes an association. Associations whose create is still pending
// cannot be removed yet.
func (s *Store) Remove(a Association) error {
	if a.Pending() {
		return fmt.Errorf("remove %s: %w", a.TagID, ErrPendingCreate)
	}
	return s.Dispatch(DeleteAssociation{Association: a})
}

// UpdateProfile edits the user's profile.
func (s *Store) UpdateProfile(p Profile) error {
	return s.Dispatch(UpdateProfile{Profile: p})
}

// Load upserts associations fetched from the server.
func (s *Store) Load(associations []Association) error {
	return s.Dispatch(AssociationsLoaded{Associations: associations})
}

// Seed loads the profile and the full association list. Associations the
// server no longer returns are dropped, so Seed also serves a reload.
func (s *Store) Seed(initial Initial) error {
	if err := s.Dispatch(ProfileLoaded{Profile: initial.Profile}); err != nil {
		return err
	}
	return s.Dispatch(AssociationsLoaded{Associations: initial.Associations, Replace: true})
}

// Reset returns the state to its initial shape.
func (s *Store) Reset() error {
	return s.Dispatch(Reset{})
}

func (s *Store) validateNewTag(tagID string) (string, error) {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return "", ErrEmptyTag
	}
	if _, ok := s.Snapshot().State.FindByTag(tagID); ok {
		return "", fmt.Errorf("%w: %s", ErrAlreadyAdded, tagID)
	}
	return tagID, nil
}
