package tagedit

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gravitrone/nebula-tags/cli/internal/api"
)

// Remote implements Service over the HTTP API.
type Remote struct {
	client *api.Client
}

// NewRemote wraps an API client.
func NewRemote(client *api.Client) *Remote {
	return &Remote{client: client}
}

// CreateTag creates a tag.
func (r *Remote) CreateTag(ctx context.Context, tagID string) error {
	if _, err := r.client.CreateTag(ctx, api.CreateTagInput{ID: tagID}); err != nil {
		return fmt.Errorf("create tag %s: %w", tagID, err)
	}
	return nil
}

// CreateAssociation adds tagID to the current user.
func (r *Remote) CreateAssociation(ctx context.Context, tagID string) (Association, error) {
	ut, err := r.client.AddUserTag(ctx, api.AddUserTagInput{TagID: tagID})
	if err != nil {
		return Association{}, fmt.Errorf("add tag %s: %w", tagID, err)
	}
	return fromUserTag(*ut), nil
}

// UpdateAssociation sends the fields present in patch.
func (r *Remote) UpdateAssociation(ctx context.Context, userID, tagID string, patch Patch) (Association, error) {
	ut, err := r.client.UpdateUserTag(ctx, userID, tagID, api.UpdateUserTagInput{
		Story:     patch.Story,
		Relevance: patch.Relevance,
	})
	if err != nil {
		return Association{}, fmt.Errorf("update tag %s: %w", tagID, err)
	}
	return fromUserTag(*ut), nil
}

// DeleteAssociation removes a from the user. An association the server no
// longer has counts as removed.
func (r *Remote) DeleteAssociation(ctx context.Context, a Association) error {
	if err := r.client.RemoveUserTag(ctx, a.UserID, a.TagID); err != nil && !api.IsNotFound(err) {
		return fmt.Errorf("remove tag %s: %w", a.TagID, err)
	}
	return nil
}

// UpdateProfile saves the profile.
func (r *Remote) UpdateProfile(ctx context.Context, p Profile) (Profile, error) {
	u, err := r.client.UpdateMe(ctx, api.UpdateUserInput{
		Name:        &p.Name,
		Description: &p.Description,
	})
	if err != nil {
		return Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return Profile{Name: u.Name, Description: u.Description}, nil
}

// ListAssociations fetches the current user's associations.
func (r *Remote) ListAssociations(ctx context.Context) ([]Association, error) {
	uts, err := r.client.ListUserTags(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	out := make([]Association, 0, len(uts))
	for _, ut := range uts {
		out = append(out, fromUserTag(ut))
	}
	return out, nil
}

// Profile fetches the current user's profile.
func (r *Remote) Profile(ctx context.Context) (Profile, error) {
	u, err := r.client.Me(ctx)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return Profile{Name: u.Name, Description: u.Description}, nil
}

// Initial is what the editor loads before it renders.
type Initial struct {
	Profile      Profile
	Associations []Association
}

// FetchInitial loads the profile and associations concurrently.
func (r *Remote) FetchInitial(ctx context.Context) (Initial, error) {
	var out Initial
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := r.Profile(ctx)
		if err != nil {
			return err
		}
		out.Profile = p
		return nil
	})
	g.Go(func() error {
		as, err := r.ListAssociations(ctx)
		if err != nil {
			return err
		}
		out.Associations = as
		return nil
	})
	if err := g.Wait(); err != nil {
		return Initial{}, err
	}
	return out, nil
}

func fromUserTag(ut api.UserTag) Association {
	a := Association{
		UserID:    ut.UserID,
		TagID:     ut.TagID,
		Story:     ut.Story,
		Relevance: ut.Relevance,
	}
	// Fall back to the composite id when the split fields are missing.
	if (a.UserID == "" || a.TagID == "") && ut.ID != "" {
		if userID, tagID, err := ParseAssociationID(ut.ID); err == nil {
			a.UserID, a.TagID = userID, tagID
		}
	}
	return a
}
