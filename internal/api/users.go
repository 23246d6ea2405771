package api

import "context"

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	data, err := c.get(ctx, "/api/me")
	if err != nil {
		return nil, err
	}
	return decodeOne[User](data)
}

// UpdateMe updates the authenticated user's profile.
func (c *Client) UpdateMe(ctx context.Context, input UpdateUserInput) (*User, error) {
	data, err := c.patch(ctx, "/api/me", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[User](data)
}
