package services

import (
	"context"
	"errors"

	"perapera/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Direction 投票方向
type Direction int

const (
	Up   Direction = models.VoteUp
	Down Direction = models.VoteDown
)

// ParseDirection 解析 "up"/"down"
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, ErrInvalidDirection
}

func (d Direction) valid() bool {
	return d == Up || d == Down
}

// Tally 单个帖子的投票汇总，Mine 为 nil 表示当前用户未投票
type Tally struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
	Mine      *int  `json:"user_vote"`
}

// VoteService 每个 (post, user) 一个槽位：up / down / none
type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// Set 写入或覆盖投票
func (s *VoteService) Set(ctx context.Context, postID, voterID uint, dir Direction) error {
	if !dir.valid() {
		return ErrInvalidDirection
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := postExists(tx, postID); err != nil {
			return err
		}
		return upsertVote(tx, postID, voterID, dir)
	})
}

// Clear 删除投票，不存在时什么也不做
func (s *VoteService) Clear(ctx context.Context, postID, voterID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := postExists(tx, postID); err != nil {
			return err
		}
		return tx.Where("post_id = ? AND user_id = ?", postID, voterID).Delete(&models.Vote{}).Error
	})
}

// Toggle 再次点击当前方向即取消，否则写入/覆盖
func (s *VoteService) Toggle(ctx context.Context, postID, voterID uint, dir Direction) (*Tally, error) {
	if !dir.valid() {
		return nil, ErrInvalidDirection
	}

	var tally *Tally
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := postExists(tx, postID); err != nil {
			return err
		}

		var current models.Vote
		err := tx.Where("post_id = ? AND user_id = ?", postID, voterID).First(&current).Error
		switch {
		case err == nil && Direction(current.Value) == dir:
			if err := tx.Delete(&current).Error; err != nil {
				return err
			}
		case err == nil || errors.Is(err, gorm.ErrRecordNotFound):
			if err := upsertVote(tx, postID, voterID, dir); err != nil {
				return err
			}
		default:
			return err
		}

		tally, err = tallyOf(tx, postID, voterID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tally, nil
}

// Tally 返回赞/踩数量及 viewer 自己的投票
func (s *VoteService) Tally(ctx context.Context, postID, viewerID uint) (*Tally, error) {
	conn := s.db.WithContext(ctx)
	if err := postExists(conn, postID); err != nil {
		return nil, err
	}
	return tallyOf(conn, postID, viewerID)
}

func upsertVote(tx *gorm.DB, postID, voterID uint, dir Direction) error {
	vote := models.Vote{
		PostID: postID,
		UserID: voterID,
		Value:  int(dir),
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&vote).Error
}

func tallyOf(tx *gorm.DB, postID, viewerID uint) (*Tally, error) {
	tallies, err := voteTallies(tx, []uint{postID})
	if err != nil {
		return nil, err
	}
	mine, err := viewerVotes(tx, viewerID, []uint{postID})
	if err != nil {
		return nil, err
	}

	t := tallies[postID]
	if v, ok := mine[postID]; ok {
		t.Mine = &v
	}
	return &t, nil
}

// voteTallies 批量统计赞/踩数量
func voteTallies(tx *gorm.DB, postIDs []uint) (map[uint]Tally, error) {
	out := make(map[uint]Tally, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	type row struct {
		PostID    uint
		Upvotes   int64
		Downvotes int64
	}
	var rows []row
	err := tx.Model(&models.Vote{}).
		Select("post_id, "+
			"COALESCE(SUM(CASE WHEN value = 1 THEN 1 ELSE 0 END), 0) AS upvotes, "+
			"COALESCE(SUM(CASE WHEN value = -1 THEN 1 ELSE 0 END), 0) AS downvotes").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.PostID] = Tally{Upvotes: r.Upvotes, Downvotes: r.Downvotes}
	}
	return out, nil
}

// viewerVotes 批量查询 viewer 的投票值
func viewerVotes(tx *gorm.DB, viewerID uint, postIDs []uint) (map[uint]int, error) {
	out := make(map[uint]int)
	if viewerID == 0 || len(postIDs) == 0 {
		return out, nil
	}

	var votes []models.Vote
	err := tx.Select("post_id", "value").
		Where("user_id = ? AND post_id IN ?", viewerID, postIDs).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	for _, v := range votes {
		out[v.PostID] = v.Value
	}
	return out, nil
}

func postExists(tx *gorm.DB, postID uint) error {
	var count int64
	if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrPostNotFound
	}
	return nil
}
