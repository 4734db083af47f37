package services

import (
	"context"

	"perapera/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowService 用户之间的有向关注图
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow 关注，重复关注不报错
func (s *FollowService) Follow(ctx context.Context, followerID, followedID uint) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	edge := models.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error
}

// Unfollow 取消关注，关系不存在时什么也不做
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID uint) error {
	return s.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// Counts 返回粉丝数和关注数
func (s *FollowService) Counts(ctx context.Context, userID uint) (followers, following int64, err error) {
	conn := s.db.WithContext(ctx)
	if err = conn.Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&followers).Error; err != nil {
		return
	}
	err = conn.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&following).Error
	return
}

// Followers 关注了 userID 的用户名，按用户名排序
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]string, error) {
	names := make([]string, 0)
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("users.username ASC").
		Pluck("users.username", &names).Error
	return names, err
}

// Following userID 关注的用户名，按用户名排序
func (s *FollowService) Following(ctx context.Context, userID uint) ([]string, error) {
	names := make([]string, 0)
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("users.username ASC").
		Pluck("users.username", &names).Error
	return names, err
}

// followedAmong 批量判断 viewer 是否关注了这些作者
func followedAmong(tx *gorm.DB, viewerID uint, authorIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool)
	if viewerID == 0 || len(authorIDs) == 0 {
		return out, nil
	}

	var ids []uint
	err := tx.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id IN ?", viewerID, authorIDs).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
