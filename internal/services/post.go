package services

import (
	"context"
	"errors"
	"strings"

	"perapera/internal/models"

	"gorm.io/gorm"
)

// PostService 帖子存储及标签关联
type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// Create 在同一事务里写入帖子和标签关联，目录外的标签名被忽略
func (s *PostService) Create(ctx context.Context, authorID uint, content string, tagNames []string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	var post models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}

		post = models.Post{
			UserID:  authorID,
			Content: content,
			Tags:    tags,
		}
		// 标签目录只读，只写 post_tags 关联
		return tx.Omit("Tags.*").Create(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, post.ID)
}

// Update 只有作者可以修改，非作者与不存在一律 ErrPostNotFound
func (s *PostService) Update(ctx context.Context, id, requesterID uint, content string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	result := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND user_id = ?", id, requesterID).
		Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrPostNotFound
	}
	return s.Get(ctx, id)
}

// Delete 只有作者可以删除，连同投票、评论、标签关联一起删除
func (s *PostService) Delete(ctx context.Context, id, requesterID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ? AND user_id = ?", id, requesterID).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// Get 按 ID 读取帖子及作者、标签
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}
