package api

// --- API Response Envelope ---

type apiResponse[T any] struct {
	Data  T       `json:"data"`
	Error *apiErr `json:"error,omitempty"`
}

type apiErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --- Tag ---

// Tag is a shared label users can associate themselves with.
type Tag struct {
	ID string `json:"id"`
}

// CreateTagInput defines the fields required to create a tag.
type CreateTagInput struct {
	ID string `json:"id"`
}

// --- User Tag ---

// UserTag links a user to a tag with a story and a relevance rank.
type UserTag struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	TagID     string `json:"tag_id"`
	Story     string `json:"story"`
	Relevance int    `json:"relevance"`
}

// AddUserTagInput defines the fields required to add a tag to the current user.
type AddUserTagInput struct {
	TagID string `json:"tag_id"`
}

// UpdateUserTagInput defines the fields for updating a user tag. Nil fields are
// left untouched by the server.
type UpdateUserTagInput struct {
	Story     *string `json:"story,omitempty"`
	Relevance *int    `json:"relevance,omitempty"`
}

// --- User ---

// User is the authenticated account profile.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateUserInput defines the editable profile fields.
type UpdateUserInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// --- Auth ---

// LoginInput defines the credentials for logging in.
type LoginInput struct {
	Username string `json:"username"`
}

// LoginResponse contains the session information after successful login.
type LoginResponse struct {
	APIKey   string `json:"api_key"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// --- Query ---

// QueryParams is a map of query string parameters.
type QueryParams map[string]string
