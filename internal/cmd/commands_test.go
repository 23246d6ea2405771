package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/nebula-tags/cli/internal/api"
	"github.com/gravitrone/nebula-tags/cli/internal/config"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginCmdRejectsEmptyUsername(t *testing.T) {
	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, _ = io.WriteString(w, "\n")
	_ = w.Close()
	os.Stdin = r

	_, err = run(t, LoginCmd())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username is required")
}

func TestRunInteractiveLoginSavesConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	fake := &fakeNebula{user: api.User{ID: "u1"}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	var out bytes.Buffer
	err := RunInteractiveLogin(context.Background(), strings.NewReader("alice\n"), &out, srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "logged in as alice")
	assert.Equal(t, "Bearer nbl_test", fake.authorization())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "nbl_test", cfg.APIKey)
	assert.Equal(t, "u1", cfg.UserID)
	assert.Equal(t, srv.URL, cfg.BaseURL)
}

func TestTagsCmdNotLoggedInErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := run(t, TagsCmd(), "list")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestTagsCmdUnknownSubcommandDeterministicError(t *testing.T) {
	_, err := run(t, TagsCmd(), "nope")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestTagsListGroupsByRelevance(t *testing.T) {
	loggedIn(t,
		api.UserTag{UserID: "u1", TagID: "go", Relevance: 2},
		api.UserTag{UserID: "u1", TagID: "rust", Story: "since\n2019", Relevance: 5},
	)

	out, err := run(t, TagsCmd(), "list")
	require.NoError(t, err)
	assert.Equal(t, "relevance 5\n  rust - since 2019\nrelevance 2\n  go\n", out)
}

func TestTagsTimeoutFlagOverridesConfig(t *testing.T) {
	fake := loggedIn(t, api.UserTag{UserID: "u1", TagID: "go", Relevance: 2})
	fake.slowDown(200 * time.Millisecond)

	_, err := run(t, TagsCmd(), "list", "--timeout", "20ms")
	require.Error(t, err)

	out, err := run(t, TagsCmd(), "list", "--timeout", "5s")
	require.NoError(t, err)
	assert.Contains(t, out, "go")
}

func TestTagsListEmpty(t *testing.T) {
	loggedIn(t)

	out, err := run(t, TagsCmd(), "list")
	require.NoError(t, err)
	assert.Equal(t, "no tags found\n", out)
}

func TestTagsAdd(t *testing.T) {
	fake := loggedIn(t)

	out, err := run(t, TagsCmd(), "add", "rust")
	require.NoError(t, err)
	assert.Equal(t, "rust added\n", out)

	_, ok := fake.tag("rust")
	assert.True(t, ok)
}

func TestTagsAddAlreadyAdded(t *testing.T) {
	loggedIn(t, api.UserTag{UserID: "u1", TagID: "rust"})

	_, err := run(t, TagsCmd(), "add", "rust")
	assert.ErrorContains(t, err, "tag already added")
}

func TestTagsCreate(t *testing.T) {
	fake := loggedIn(t)

	out, err := run(t, TagsCmd(), "create", "zig")
	require.NoError(t, err)
	assert.Equal(t, "zig added\n", out)
	assert.Equal(t, []string{"zig"}, fake.createdTags())
}

func TestTagsStory(t *testing.T) {
	fake := loggedIn(t, api.UserTag{UserID: "u1", TagID: "rust", Relevance: 4})

	out, err := run(t, TagsCmd(), "story", "rust", "ten", "years")
	require.NoError(t, err)
	assert.Equal(t, "your story was updated\n", out)

	ut, _ := fake.tag("rust")
	assert.Equal(t, "ten years", ut.Story)
	assert.Equal(t, 4, ut.Relevance)
}

func TestTagsRank(t *testing.T) {
	fake := loggedIn(t, api.UserTag{UserID: "u1", TagID: "rust", Relevance: 4})

	out, err := run(t, TagsCmd(), "rank", "rust", "0")
	require.NoError(t, err)
	assert.Empty(t, out)

	ut, _ := fake.tag("rust")
	assert.Equal(t, 0, ut.Relevance)
}

func TestTagsRankRejectsInvalid(t *testing.T) {
	loggedIn(t, api.UserTag{UserID: "u1", TagID: "rust"})

	_, err := run(t, TagsCmd(), "rank", "rust", "9")
	assert.ErrorContains(t, err, "relevance must be between 0 and 5")

	_, err = run(t, TagsCmd(), "rank", "rust", "high")
	assert.ErrorContains(t, err, "relevance must be between 0 and 5")
}

func TestTagsRankUnknownTag(t *testing.T) {
	loggedIn(t)

	_, err := run(t, TagsCmd(), "rank", "rust", "2")
	assert.ErrorContains(t, err, "not in your list")
}

func TestTagsRankServerFailure(t *testing.T) {
	fake := loggedIn(t, api.UserTag{UserID: "u1", TagID: "rust", Relevance: 1})
	fake.failUpdates()

	_, err := run(t, TagsCmd(), "rank", "rust", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update u1--rust")
	assert.Contains(t, err.Error(), "db down")
}

func TestTagsRemove(t *testing.T) {
	fake := loggedIn(t, api.UserTag{UserID: "u1", TagID: "rust"})

	out, err := run(t, TagsCmd(), "rm", "rust")
	require.NoError(t, err)
	assert.Equal(t, "removed rust\n", out)

	_, ok := fake.tag("rust")
	assert.False(t, ok)
}

func TestProfileShowAndSet(t *testing.T) {
	fake := loggedIn(t)

	out, err := run(t, ProfileCmd(), "set", "--description", "builds things")
	require.NoError(t, err)
	assert.Equal(t, "your profile was updated\n", out)
	assert.Equal(t, "Alice", fake.profile().Name)
	assert.Equal(t, "builds things", fake.profile().Description)

	out, err = run(t, ProfileCmd(), "show")
	require.NoError(t, err)
	assert.Equal(t, "name: Alice\ndescription: builds things\n", out)
}

func TestProfileSetRequiresAFlag(t *testing.T) {
	loggedIn(t)

	_, err := run(t, ProfileCmd(), "set")
	assert.ErrorContains(t, err, "nothing to update")
}
