package tagedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectPendingIDsOrder(t *testing.T) {
	s := reduceAll(NewState(),
		AssociationsLoaded{Associations: []Association{
			{UserID: "u1", TagID: "go", Relevance: 5},
			{UserID: "u1", TagID: "c", Relevance: 1},
		}},
		DeleteAssociation{Association: Association{UserID: "u1", TagID: "c", Relevance: 1}},
		UpdateAssociation{UserID: "u1", TagID: "go", Patch: StoryPatch("x")},
		CreateAssociation{TagID: "zig"},
	)

	assert.Equal(t, []string{"pending--zig", "u1--go", "u1--c"}, Project(s).PendingIDs)
}

func TestProjectBucketsByRelevance(t *testing.T) {
	s := reduceAll(NewState(), AssociationsLoaded{Associations: []Association{
		{UserID: "u1", TagID: "a", Relevance: 1},
		{UserID: "u1", TagID: "b", Relevance: 5},
		{UserID: "u1", TagID: "c", Relevance: 1},
		{UserID: "u1", TagID: "d", Relevance: 0},
		{UserID: "u1", TagID: "e", Relevance: 9},
	}})

	v := Project(s)
	require.Len(t, v.Buckets[1], 2)
	assert.Equal(t, "a", v.Buckets[1][0].TagID)
	assert.Equal(t, "c", v.Buckets[1][1].TagID)
	require.Len(t, v.Buckets[5], 1)
	assert.Equal(t, []string{"d", "e"}, []string{v.Buckets[0][0].TagID, v.Buckets[0][1].TagID})
	assert.Equal(t, 5, v.Len())
}

func TestProjectAddedGoesToBucketZero(t *testing.T) {
	s := reduceAll(NewState(),
		CreateAssociation{TagID: "rust"},
		CreateAssociationConfirmed{Association: Association{UserID: "u1", TagID: "rust", Relevance: 3}},
	)

	v := Project(s)
	require.Len(t, v.Buckets[0], 1)
	assert.Empty(t, v.Buckets[3])

	b, i := v.Locate("u1--rust")
	assert.Equal(t, 0, b)
	assert.Equal(t, 0, i)
	b, i = v.Locate("missing")
	assert.Equal(t, -1, b)
	assert.Equal(t, -1, i)
}

func TestProjectShowsInFlightStory(t *testing.T) {
	s := reduceAll(NewState(),
		AssociationsLoaded{Associations: []Association{{UserID: "u1", TagID: "go", Relevance: 2, Story: "old"}}},
		UpdateAssociation{UserID: "u1", TagID: "go", Patch: StoryPatch("new")},
	)

	v := Project(s)
	require.Len(t, v.Buckets[2], 1)
	assert.Equal(t, "new", v.Buckets[2][0].Story)
	assert.True(t, v.IsPending("u1--go"))
}

func TestProjectRecomputesFromScratch(t *testing.T) {
	s := reduceAll(NewState(), AssociationsLoaded{Associations: []Association{{UserID: "u1", TagID: "go", Relevance: 2}}})
	first := Project(s)
	first.Buckets[2][0].Story = "mutated"

	second := Project(s)
	assert.Empty(t, second.Buckets[2][0].Story)
}

func TestProjectNilState(t *testing.T) {
	v := Project(nil)
	assert.Equal(t, 0, v.Len())
	assert.Empty(t, v.PendingIDs)
}

func TestProjectKeepsRankWhenStoryEditStacksOnIt(t *testing.T) {
	s := reduceAll(NewState(),
		AssociationsLoaded{Associations: []Association{rust("u1", 1)}},
		UpdateAssociation{UserID: "u1", TagID: "rust", Patch: RelevancePatch(2)},
	)
	b, _ := Project(s).Locate("u1--rust")
	require.Equal(t, 2, b)

	s = Reduce(s, UpdateAssociation{UserID: "u1", TagID: "rust", Patch: StoryPatch("x")})
	v := Project(s)
	b, i := v.Locate("u1--rust")
	require.Equal(t, 2, b)
	assert.Equal(t, 2, v.Buckets[b][i].Relevance)
	assert.Equal(t, "x", v.Buckets[b][i].Story)
	assert.Empty(t, v.Buckets[1])

	// The rank lands first; the story edit is still in flight.
	ranked := rust("u1", 2)
	s = Reduce(s, UpdateAssociationConfirmed{Association: ranked, Patch: RelevancePatch(2), RequestedID: "u1--rust"})
	require.True(t, s.Update.Has("u1--rust"))
	b, _ = Project(s).Locate("u1--rust")
	assert.Equal(t, 2, b)

	storied := ranked
	storied.Story = "x"
	s = Reduce(s, UpdateAssociationConfirmed{Association: storied, Patch: StoryPatch("x"), RequestedID: "u1--rust"})
	assert.Equal(t, 0, s.Update.Len())
	b, _ = Project(s).Locate("u1--rust")
	assert.Equal(t, 2, b)
}

func TestProjectEveryBucketHoldsItsRelevance(t *testing.T) {
	s := reduceAll(NewState(),
		AssociationsLoaded{Associations: []Association{rust("u1", 1), {UserID: "u1", TagID: "go", Relevance: 3}}},
		UpdateAssociation{UserID: "u1", TagID: "rust", Patch: RelevancePatch(4)},
		UpdateAssociation{UserID: "u1", TagID: "rust", Patch: StoryPatch("a")},
		UpdateAssociation{UserID: "u1", TagID: "go", Patch: StoryPatch("b")},
	)

	v := Project(s)
	for b := 1; b < BucketCount; b++ {
		for _, a := range v.Buckets[b] {
			assert.Equal(t, b, a.Relevance, a.ID())
		}
	}
}
