package services

import (
	"context"
	"testing"

	"perapera/internal/models"
	"perapera/internal/testutil"
	"perapera/internal/utils"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	utils.PasswordCost = bcrypt.MinCost
}

type testEnv struct {
	db       *gorm.DB
	users    *UserService
	posts    *PostService
	votes    *VoteService
	follows  *FollowService
	tags     *TagService
	comments *CommentService
	feed     *FeedService
}

func newTestEnv(t *testing.T) *testEnv {
	conn := testutil.NewDB(t)
	follows := NewFollowService(conn)
	return &testEnv{
		db:       conn,
		users:    NewUserService(conn),
		posts:    NewPostService(conn),
		votes:    NewVoteService(conn),
		follows:  follows,
		tags:     NewTagService(conn),
		comments: NewCommentService(conn),
		feed:     NewFeedService(conn, follows),
	}
}

// createTestUser 注册用户并返回
func (e *testEnv) createTestUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.users.Register(context.Background(), username, "password123")
	require.NoError(t, err, "Failed to create test user")
	return user
}

// createTestPost 发帖并返回 ID
func (e *testEnv) createTestPost(t *testing.T, authorID uint, content string, tags ...string) uint {
	t.Helper()
	post, err := e.posts.Create(context.Background(), authorID, content, tags)
	require.NoError(t, err, "Failed to create test post")
	return post.ID
}
