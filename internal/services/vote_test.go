package services

import (
	"context"
	"testing"

	"perapera/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countVotes(t *testing.T, env *testEnv, postID, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, env.db.Model(&models.Vote{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error)
	return count
}

func TestVoteService_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.createTestUser(t, "author")
	voter := env.createTestUser(t, "voter")
	postID := env.createTestPost(t, author.ID, "你好")

	require.NoError(t, env.votes.Set(ctx, postID, voter.ID, Up))
	require.NoError(t, env.votes.Set(ctx, postID, voter.ID, Down))

	assert.Equal(t, int64(1), countVotes(t, env, postID, voter.ID))

	tally, err := env.votes.Tally(ctx, postID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), tally.Upvotes)
	assert.Equal(t, int64(1), tally.Downvotes)
	require.NotNil(t, tally.Mine)
	assert.Equal(t, -1, *tally.Mine)
}

func TestVoteService_SameDirectionTwiceThenClear(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.createTestUser(t, "author")
	voter := env.createTestUser(t, "voter")
	postID := env.createTestPost(t, author.ID, "こんにちは")

	require.NoError(t, env.votes.Set(ctx, postID, voter.ID, Up))
	require.NoError(t, env.votes.Set(ctx, postID, voter.ID, Up))
	assert.Equal(t, int64(1), countVotes(t, env, postID, voter.ID))

	require.NoError(t, env.votes.Clear(ctx, postID, voter.ID))
	assert.Equal(t, int64(0), countVotes(t, env, postID, voter.ID))

	// 再次清除不报错
	require.NoError(t, env.votes.Clear(ctx, postID, voter.ID))

	tally, err := env.votes.Tally(ctx, postID, voter.ID)
	require.NoError(t, err)
	assert.Zero(t, tally.Upvotes)
	assert.Nil(t, tally.Mine)
}

func TestVoteService_Toggle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.createTestUser(t, "author")
	voter := env.createTestUser(t, "voter")
	postID := env.createTestPost(t, author.ID, "hola")

	tally, err := env.votes.Toggle(ctx, postID, voter.ID, Up)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tally.Upvotes)
	require.NotNil(t, tally.Mine)
	assert.Equal(t, 1, *tally.Mine)

	// 换方向覆盖
	tally, err = env.votes.Toggle(ctx, postID, voter.ID, Down)
	require.NoError(t, err)
	assert.Equal(t, int64(0), tally.Upvotes)
	assert.Equal(t, int64(1), tally.Downvotes)

	// 再点同一方向取消
	tally, err = env.votes.Toggle(ctx, postID, voter.ID, Down)
	require.NoError(t, err)
	assert.Zero(t, tally.Downvotes)
	assert.Nil(t, tally.Mine)
	assert.Equal(t, int64(0), countVotes(t, env, postID, voter.ID))
}

func TestVoteService_Errors(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	voter := env.createTestUser(t, "voter")

	assert.ErrorIs(t, env.votes.Set(ctx, 404, voter.ID, Up), ErrNotFound)
	assert.ErrorIs(t, env.votes.Clear(ctx, 404, voter.ID), ErrPostNotFound)
	_, err := env.votes.Toggle(ctx, 404, voter.ID, Up)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.votes.Tally(ctx, 404, voter.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	postID := env.createTestPost(t, voter.ID, "x")
	assert.ErrorIs(t, env.votes.Set(ctx, postID, voter.ID, Direction(2)), ErrValidation)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("up")
	require.NoError(t, err)
	assert.Equal(t, Up, d)

	d, err = ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, Down, d)

	_, err = ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}
