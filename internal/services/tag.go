package services

import (
	"context"
	"strings"

	"perapera/internal/models"

	"gorm.io/gorm"
)

// TagService 只读的标签目录
type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

// NormalizeTagNames 去空白、转小写、去重，保留首次出现的顺序
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// resolveTags 只返回目录中存在的标签，未知名称直接忽略
func resolveTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	names = NormalizeTagNames(names)
	tags := make([]models.Tag, 0, len(names))
	if len(names) == 0 {
		return tags, nil
	}
	err := tx.Where("name IN ?", names).Order("name ASC").Find(&tags).Error
	return tags, err
}
