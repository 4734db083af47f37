package services

import (
	"context"
	"strings"
	"time"

	"perapera/internal/models"

	"gorm.io/gorm"
)

// CommentView 返回给客户端的评论
type CommentView struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	AuthorID  uint      `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Add 任何登录用户都可以评论任何帖子
func (s *CommentService) Add(ctx context.Context, postID, authorID uint, content string) (*CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	var comment models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := postExists(tx, postID); err != nil {
			return err
		}
		comment = models.Comment{
			PostID:  postID,
			UserID:  authorID,
			Content: content,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Preload("User").First(&comment, comment.ID).Error
	})
	if err != nil {
		return nil, err
	}

	view := toCommentView(comment)
	return &view, nil
}

// Delete 只能删除自己的评论，否则视为不存在
func (s *CommentService) Delete(ctx context.Context, id, requesterID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, requesterID).
		Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// List 帖子下的评论，按时间正序
func (s *CommentService) List(ctx context.Context, postID uint) ([]CommentView, error) {
	conn := s.db.WithContext(ctx)
	if err := postExists(conn, postID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := conn.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = toCommentView(c)
	}
	return views, nil
}

func toCommentView(c models.Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		Author:    c.User.Username,
		AuthorID:  c.UserID,
		CreatedAt: c.CreatedAt,
	}
}

// commentCounts 批量统计评论数量
func commentCounts(tx *gorm.DB, postIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	type countResult struct {
		PostID uint
		Count  int64
	}
	var results []countResult
	err := tx.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		out[r.PostID] = r.Count
	}
	return out, nil
}
