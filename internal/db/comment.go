package db

import "time"

// Comment 是读者对文章的评论，随文章一起删除。
type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	PostID    uint      `gorm:"not null;index"`
	Name      string    `gorm:"size:80;not null"`
	Email     string    `gorm:"size:254;not null"`
	Body      string    `gorm:"type:text;not null"`
	Active    bool      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
