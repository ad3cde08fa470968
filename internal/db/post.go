package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post 定义了文章模型
type Post struct {
	gorm.Model
	Title    string    `gorm:"size:250;not null"`
	Slug     string    `gorm:"size:250;not null;index:idx_posts_publish_slug,priority:2"`
	Body     string    `gorm:"type:text"`
	Publish  time.Time `gorm:"not null;index:idx_posts_publish_slug,priority:1"`
	Status   string    `gorm:"size:10;not null;default:draft;index"`
	AuthorID *uint
	Author   *User
	Tags     []Tag     `gorm:"many2many:post_tags;"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE;"`

	// SharedTags 仅在相似文章查询中由 SQL 聚合填充。
	SharedTags int64 `gorm:"->;-:migration"`
}

// BeforeSave derives the slug from the title and normalises the publish time to UTC.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(p.Slug) == "" {
		p.Slug = slug.Make(p.Title)
	}
	if p.Publish.IsZero() {
		p.Publish = time.Now()
	}
	p.Publish = p.Publish.UTC()
	if strings.TrimSpace(p.Status) == "" {
		p.Status = PostStatusDraft
	}
	return nil
}

// IsPublished reports whether the post is visible to readers.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// Path 返回文章详情页的规范路径，日期部分按给定时区计算。
func (p *Post) Path(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	t := p.Publish.In(loc)
	return fmt.Sprintf("/articles/%04d/%02d/%02d/%s/", t.Year(), int(t.Month()), t.Day(), p.Slug)
}

// SharePath returns the path of the share form for this post.
func (p *Post) SharePath() string {
	return fmt.Sprintf("/articles/%d/share/", p.ID)
}
