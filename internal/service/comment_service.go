package service

import (
	"github.com/mysite/internal/db"
	"gorm.io/gorm"
)

// CommentService handles reader comments.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// Submit validates form and stores it as an active comment on post.
// Validation failures are returned as *ValidationError and nothing is written.
func (s *CommentService) Submit(post *db.Post, form CommentForm) (*db.Comment, error) {
	if post == nil || post.ID == 0 {
		return nil, ErrPostNotFound
	}

	form = form.normalized()
	if err := validateForm(form); err != nil {
		return nil, err
	}

	comment := db.Comment{
		PostID: post.ID,
		Name:   form.Name,
		Email:  form.Email,
		Body:   form.Body,
		Active: true,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListActive 返回文章下已通过审核的评论，按创建时间升序。
func (s *CommentService) ListActive(postID uint) ([]db.Comment, error) {
	comments := []db.Comment{}
	if err := s.db.Where("post_id = ? AND active = ?", postID, true).
		Order("created_at asc").
		Order("id asc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
