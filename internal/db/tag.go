package db

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Tag 定义了标签模型
type Tag struct {
	gorm.Model
	Name  string `gorm:"size:100;uniqueIndex;not null"`
	Slug  string `gorm:"size:100;uniqueIndex;not null"`
	Posts []Post `gorm:"many2many:post_tags;"`
}

// BeforeSave fills the slug from the name when it is missing.
func (t *Tag) BeforeSave(tx *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	if strings.TrimSpace(t.Slug) == "" {
		t.Slug = slug.Make(t.Name)
	}
	return nil
}

// Path returns the tag filtered post list path.
func (t *Tag) Path() string {
	return fmt.Sprintf("/articles/tag/%s/", t.Slug)
}
