package services

import (
	"context"
	"html/template"
	"time"

	"perapera/internal/models"
	"perapera/internal/utils"

	"gorm.io/gorm"
)

// FeedPost 客户端渲染用的帖子视图，每次请求重新计算
type FeedPost struct {
	ID           uint          `json:"id"`
	Content      string        `json:"content"`
	ContentHTML  template.HTML `json:"content_html"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Author       string        `json:"author"`
	AuthorID     uint          `json:"author_id"`
	Upvotes      int64         `json:"upvotes"`
	Downvotes    int64         `json:"downvotes"`
	UserVote     *int          `json:"user_vote"`
	IsFollowing  bool          `json:"is_following"`
	Tags         []models.Tag  `json:"tags"`
	CommentCount int64         `json:"comment_count"`
}

// Profile 用户主页信息
type Profile struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	CreatedAt      time.Time `json:"created_at"`
	PostCount      int64     `json:"post_count"`
	FollowerCount  int64     `json:"follower_count"`
	FollowingCount int64     `json:"following_count"`
	IsFollowing    bool      `json:"is_following"`
}

// FeedService 组合帖子、投票、关注和标签，只读
type FeedService struct {
	db      *gorm.DB
	follows *FollowService
}

func NewFeedService(db *gorm.DB, follows *FollowService) *FeedService {
	return &FeedService{db: db, follows: follows}
}

// Feed 所有帖子，最新在前
func (s *FeedService) Feed(ctx context.Context, viewerID uint) ([]FeedPost, error) {
	return s.assemble(s.db.WithContext(ctx), viewerID, 0)
}

// Post 单个帖子的完整视图
func (s *FeedService) Post(ctx context.Context, viewerID, postID uint) (*FeedPost, error) {
	conn := s.db.WithContext(ctx)
	var post models.Post
	if err := conn.
		Preload("User").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		Where("id = ?", postID).
		Limit(1).
		Find(&post).Error; err != nil {
		return nil, err
	}
	if post.ID == 0 {
		return nil, ErrPostNotFound
	}

	items, err := s.decorate(conn, viewerID, []models.Post{post})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Profile 用户主页：计数 + 该用户的帖子
func (s *FeedService) Profile(ctx context.Context, viewerID uint, username string) (*Profile, []FeedPost, error) {
	conn := s.db.WithContext(ctx)

	var user models.User
	if err := conn.Where("username = ?", username).Limit(1).Find(&user).Error; err != nil {
		return nil, nil, err
	}
	if user.ID == 0 {
		return nil, nil, ErrUserNotFound
	}

	profile := &Profile{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
	if err := conn.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&profile.PostCount).Error; err != nil {
		return nil, nil, err
	}

	var err error
	profile.FollowerCount, profile.FollowingCount, err = s.follows.Counts(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	if viewerID != 0 && viewerID != user.ID {
		if profile.IsFollowing, err = s.follows.IsFollowing(ctx, viewerID, user.ID); err != nil {
			return nil, nil, err
		}
	}

	posts, err := s.assemble(conn, viewerID, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return profile, posts, nil
}

// assemble authorID 为 0 时返回全部帖子
func (s *FeedService) assemble(conn *gorm.DB, viewerID, authorID uint) ([]FeedPost, error) {
	query := conn.
		Preload("User").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		Order("created_at DESC, id DESC")
	if authorID != 0 {
		query = query.Where("user_id = ?", authorID)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return s.decorate(conn, viewerID, posts)
}

// decorate 批量补齐投票、关注、评论数，避免逐条查询
func (s *FeedService) decorate(conn *gorm.DB, viewerID uint, posts []models.Post) ([]FeedPost, error) {
	items := make([]FeedPost, 0, len(posts))
	if len(posts) == 0 {
		return items, nil
	}

	postIDs := make([]uint, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		authorIDs = append(authorIDs, p.UserID)
	}

	tallies, err := voteTallies(conn, postIDs)
	if err != nil {
		return nil, err
	}
	mine, err := viewerVotes(conn, viewerID, postIDs)
	if err != nil {
		return nil, err
	}
	followed, err := followedAmong(conn, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}
	comments, err := commentCounts(conn, postIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		tags := p.Tags
		if tags == nil {
			tags = []models.Tag{}
		}
		item := FeedPost{
			ID:           p.ID,
			Content:      p.Content,
			ContentHTML:  utils.RenderMarkdown(p.Content),
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
			Author:       p.User.Username,
			AuthorID:     p.UserID,
			Upvotes:      tallies[p.ID].Upvotes,
			Downvotes:    tallies[p.ID].Downvotes,
			IsFollowing:  followed[p.UserID],
			Tags:         tags,
			CommentCount: comments[p.ID],
		}
		if v, ok := mine[p.ID]; ok {
			item.UserVote = &v
		}
		items = append(items, item)
	}
	return items, nil
}
