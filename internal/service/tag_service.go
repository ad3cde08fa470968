package service

import (
	"errors"
	"strings"

	"github.com/mysite/internal/db"
	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("tag not found")

// TagService wraps tag related operations.
type TagService struct {
	db *gorm.DB
}

// NewTagService creates a TagService instance.
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

// GetBySlug resolves a tag by its slug.
func (s *TagService) GetBySlug(slug string) (*db.Tag, error) {
	return findTagBySlug(s.db, slug)
}

// List returns all tags ordered by name.
func (s *TagService) List() ([]db.Tag, error) {
	var tags []db.Tag
	if err := s.db.Order("name asc").Order("id asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// FindOrCreate 按名称查找标签，不存在时创建，返回顺序与输入一致。
func (s *TagService) FindOrCreate(names []string) ([]db.Tag, error) {
	tags := make([]db.Tag, 0, len(names))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		seen := make(map[string]struct{}, len(names))
		for _, raw := range names {
			name := strings.TrimSpace(raw)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}

			var tag db.Tag
			if err := tx.Where(db.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func findTagBySlug(gdb *gorm.DB, slug string) (*db.Tag, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrTagNotFound
	}

	var tag db.Tag
	if err := gdb.Where("slug = ?", slug).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func orderTagsByName(tx *gorm.DB) *gorm.DB {
	return tx.Order("tags.name asc")
}
