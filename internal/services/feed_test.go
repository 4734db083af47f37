package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedService_Feed(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.createTestUser(t, "a")
	b := env.createTestUser(t, "b")
	c := env.createTestUser(t, "c")

	first := env.createTestPost(t, a.ID, "first", "japanese")
	second := env.createTestPost(t, b.ID, "**second**")

	require.NoError(t, env.votes.Set(ctx, first, b.ID, Up))
	require.NoError(t, env.votes.Set(ctx, first, c.ID, Down))
	require.NoError(t, env.follows.Follow(ctx, b.ID, a.ID))
	_, err := env.comments.Add(ctx, first, c.ID, "nice")
	require.NoError(t, err)

	feed, err := env.feed.Feed(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	// 最新在前
	assert.Equal(t, second, feed[0].ID)
	assert.Equal(t, first, feed[1].ID)

	top := feed[0]
	assert.Equal(t, "b", top.Author)
	assert.Nil(t, top.UserVote)
	assert.False(t, top.IsFollowing)
	assert.NotNil(t, top.Tags)
	assert.Empty(t, top.Tags)
	assert.Contains(t, string(top.ContentHTML), "<strong>second</strong>")

	item := feed[1]
	assert.Equal(t, "a", item.Author)
	assert.Equal(t, a.ID, item.AuthorID)
	assert.Equal(t, int64(1), item.Upvotes)
	assert.Equal(t, int64(1), item.Downvotes)
	require.NotNil(t, item.UserVote)
	assert.Equal(t, 1, *item.UserVote)
	assert.True(t, item.IsFollowing)
	assert.Equal(t, []string{"japanese"}, tagNames(item.Tags))
	assert.Equal(t, int64(1), item.CommentCount)

	// 同一数据换一个 viewer
	feed, err = env.feed.Feed(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, feed[1].UserVote)
	assert.Equal(t, -1, *feed[1].UserVote)
	assert.False(t, feed[1].IsFollowing)
}

func TestFeedService_EmptyFeed(t *testing.T) {
	env := newTestEnv(t)
	a := env.createTestUser(t, "a")

	feed, err := env.feed.Feed(context.Background(), a.ID)
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestFeedService_Post(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.createTestUser(t, "a")
	postID := env.createTestPost(t, a.ID, "solo", "chinese")

	item, err := env.feed.Post(ctx, a.ID, postID)
	require.NoError(t, err)
	assert.Equal(t, "solo", item.Content)
	assert.Equal(t, []string{"chinese"}, tagNames(item.Tags))

	_, err = env.feed.Post(ctx, a.ID, 9999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestFeedService_Profile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.createTestUser(t, "a")
	b := env.createTestUser(t, "b")

	env.createTestPost(t, a.ID, "one")
	env.createTestPost(t, a.ID, "two")
	env.createTestPost(t, b.ID, "other")
	require.NoError(t, env.follows.Follow(ctx, b.ID, a.ID))

	profile, posts, err := env.feed.Profile(ctx, b.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", profile.Username)
	assert.Equal(t, int64(2), profile.PostCount)
	assert.Equal(t, int64(1), profile.FollowerCount)
	assert.Equal(t, int64(0), profile.FollowingCount)
	assert.True(t, profile.IsFollowing)
	require.Len(t, posts, 2)
	assert.Equal(t, "two", posts[0].Content)
	assert.Equal(t, "one", posts[1].Content)

	_, _, err = env.feed.Profile(ctx, b.ID, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
