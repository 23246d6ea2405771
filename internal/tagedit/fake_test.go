package tagedit

import (
	"context"
	"fmt"
	"sync"
)

// fakeService records calls and can hold or fail them per "op:tag" key.
type fakeService struct {
	mu     sync.Mutex
	userID string
	calls  []string
	gates  map[string]chan struct{}
	fails  map[string]error
	stored map[string]Association
}

func newFakeService() *fakeService {
	return &fakeService{
		userID: "u1",
		gates:  make(map[string]chan struct{}),
		fails:  make(map[string]error),
		stored: make(map[string]Association),
	}
}

// hold makes the next calls for key block until the returned func is called.
func (f *fakeService) hold(key string) (release func()) {
	ch := make(chan struct{})
	f.mu.Lock()
	f.gates[key] = ch
	f.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

func (f *fakeService) fail(key string, err error) {
	f.mu.Lock()
	f.fails[key] = err
	f.mu.Unlock()
}

func (f *fakeService) enter(key string) error {
	f.mu.Lock()
	f.calls = append(f.calls, key)
	gate := f.gates[key]
	err := f.fails[key]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return err
}

func (f *fakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeService) CreateTag(_ context.Context, tagID string) error {
	return f.enter("create-tag:" + tagID)
}

func (f *fakeService) CreateAssociation(_ context.Context, tagID string) (Association, error) {
	if err := f.enter("create:" + tagID); err != nil {
		return Association{}, err
	}
	a := Association{UserID: f.userID, TagID: tagID}
	f.mu.Lock()
	f.stored[tagID] = a
	f.mu.Unlock()
	return a, nil
}

func (f *fakeService) UpdateAssociation(_ context.Context, userID, tagID string, patch Patch) (Association, error) {
	if err := f.enter("update:" + tagID); err != nil {
		return Association{}, err
	}
	if userID != f.userID {
		return Association{}, fmt.Errorf("unknown user %q", userID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.stored[tagID]
	if !ok {
		a = Association{UserID: userID, TagID: tagID}
	}
	a = patch.Apply(a)
	f.stored[tagID] = a
	return a, nil
}

func (f *fakeService) DeleteAssociation(_ context.Context, a Association) error {
	if err := f.enter("delete:" + a.TagID); err != nil {
		return err
	}
	f.mu.Lock()
	delete(f.stored, a.TagID)
	f.mu.Unlock()
	return nil
}

func (f *fakeService) UpdateProfile(_ context.Context, p Profile) (Profile, error) {
	if err := f.enter("profile"); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// recorder collects notifications.
type recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

func (r *recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}
