package api

import (
	"context"
	"fmt"
	"net/url"
)

// CreateTag creates a new tag.
func (c *Client) CreateTag(ctx context.Context, input CreateTagInput) (*Tag, error) {
	data, err := c.post(ctx, "/api/tags", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Tag](data)
}

// ListUserTags returns the current user's tags.
func (c *Client) ListUserTags(ctx context.Context, params QueryParams) ([]UserTag, error) {
	data, err := c.get(ctx, buildQuery("/api/me/tags", params))
	if err != nil {
		return nil, err
	}
	return decodeList[UserTag](data)
}

// AddUserTag associates an existing tag with the current user.
func (c *Client) AddUserTag(ctx context.Context, input AddUserTagInput) (*UserTag, error) {
	data, err := c.post(ctx, "/api/me/tags", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[UserTag](data)
}

// UpdateUserTag changes the story and/or relevance of a user tag.
func (c *Client) UpdateUserTag(ctx context.Context, userID, tagID string, input UpdateUserTagInput) (*UserTag, error) {
	data, err := c.patch(ctx, userTagPath(userID, tagID), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[UserTag](data)
}

// RemoveUserTag deletes a user tag.
func (c *Client) RemoveUserTag(ctx context.Context, userID, tagID string) error {
	_, err := c.del(ctx, userTagPath(userID, tagID))
	return err
}

func userTagPath(userID, tagID string) string {
	return fmt.Sprintf("/api/users/%s/tags/%s", url.PathEscape(userID), url.PathEscape(tagID))
}
