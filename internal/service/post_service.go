package service

import (
	"errors"
	"strings"
	"time"

	"github.com/mysite/internal/db"
	"github.com/mysite/internal/paginate"
	"gorm.io/gorm"
)

const (
	DefaultPostsPerPage = 3
	DefaultSimilarLimit = 4
)

var ErrPostNotFound = errors.New("post not found")

// PostService wraps post related database operations.
type PostService struct {
	db      *gorm.DB
	loc     *time.Location
	perPage int
}

// PostFilter describes filters for listing published posts.
type PostFilter struct {
	TagSlug string
	// Page 为原始的页码参数，非法值由分页器纠正。
	Page string
}

// PostListResult aggregates one page of published posts.
type PostListResult struct {
	Posts []db.Post
	Tag   *db.Tag
	Page  paginate.Page
}

// PostInput represents fields accepted when creating a post.
type PostInput struct {
	Title    string
	Slug     string
	Body     string
	TagIDs   []uint
	AuthorID *uint
}

// NewPostService creates a PostService. Publish dates are matched in loc.
func NewPostService(gdb *gorm.DB, loc *time.Location, perPage int) *PostService {
	if loc == nil {
		loc = time.UTC
	}
	if perPage <= 0 {
		perPage = DefaultPostsPerPage
	}
	return &PostService{db: gdb, loc: loc, perPage: perPage}
}

// PublishedPosts 是已发布文章的命名查询范围。
func PublishedPosts(tx *gorm.DB) *gorm.DB {
	return tx.Where("posts.status = ?", db.PostStatusPublished)
}

// Location returns the time zone used for date based lookups.
func (s *PostService) Location() *time.Location {
	return s.loc
}

// ListPublished returns one page of published posts, newest first,
// optionally restricted to a tag.
func (s *PostService) ListPublished(filter PostFilter) (*PostListResult, error) {
	result := &PostListResult{}

	var tagID uint
	if slug := strings.TrimSpace(filter.TagSlug); slug != "" {
		tag, err := findTagBySlug(s.db, slug)
		if err != nil {
			return nil, err
		}
		result.Tag = tag
		tagID = tag.ID
	}

	var total int64
	if err := s.publishedQuery(tagID).Count(&total).Error; err != nil {
		return nil, err
	}

	result.Page = paginate.Resolve(total, s.perPage, filter.Page)

	var posts []db.Post
	if err := s.publishedQuery(tagID).
		Preload("Tags", orderTagsByName).
		Preload("Author").
		Order("posts.publish desc").
		Order("posts.id desc").
		Offset(result.Page.Offset()).
		Limit(result.Page.PerPage).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	result.Posts = posts
	return result, nil
}

// GetPublished fetches a published post by id.
func (s *PostService) GetPublished(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.Scopes(PublishedPosts).
		Preload("Tags", orderTagsByName).
		Preload("Author").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPublishedByDate 根据发布日期（按服务时区计算）与 slug 查找唯一的已发布文章。
func (s *PostService) GetPublishedByDate(year, month, day int, slug string) (*db.Post, error) {
	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, s.loc)
	if start.Year() != year || int(start.Month()) != month || start.Day() != day {
		return nil, ErrPostNotFound
	}
	end := start.AddDate(0, 0, 1)

	var post db.Post
	if err := s.db.Scopes(PublishedPosts).
		Preload("Tags", orderTagsByName).
		Preload("Author").
		Where("posts.slug = ?", strings.TrimSpace(slug)).
		Where("posts.publish >= ? AND posts.publish < ?", start.UTC(), end.UTC()).
		Order("posts.publish desc").
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Similar ranks other published posts by the number of tags they share with
// post, newest first on ties. The ranking runs as a single query.
func (s *PostService) Similar(post *db.Post, limit int) ([]db.Post, error) {
	if post == nil || post.ID == 0 {
		return []db.Post{}, nil
	}
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	postTagIDs := s.db.Table("post_tags").
		Select("tag_id").
		Where("post_id = ?", post.ID)

	ranked := s.db.Table("post_tags").
		Select("post_id, COUNT(*) AS shared_tags").
		Where("tag_id IN (?)", postTagIDs).
		Where("post_id <> ?", post.ID).
		Group("post_id")

	posts := []db.Post{}
	if err := s.db.Model(&db.Post{}).
		Scopes(PublishedPosts).
		Select("posts.*, ranked.shared_tags").
		Joins("JOIN (?) AS ranked ON ranked.post_id = posts.id", ranked).
		Preload("Tags", orderTagsByName).
		Preload("Author").
		Order("ranked.shared_tags desc").
		Order("posts.publish desc").
		Order("posts.id desc").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Create persists a draft post and associates tags in a transaction.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	post := db.Post{
		Title:    strings.TrimSpace(input.Title),
		Slug:     strings.TrimSpace(input.Slug),
		Body:     input.Body,
		Status:   db.PostStatusDraft,
		AuthorID: input.AuthorID,
	}
	return s.saveWithTags(&post, input.TagIDs)
}

// Publish 将文章标记为已发布；publishedAt 为空时使用当前时间。
func (s *PostService) Publish(id uint, publishedAt *time.Time) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	post.Status = db.PostStatusPublished
	post.Publish = time.Now()
	if publishedAt != nil && !publishedAt.IsZero() {
		post.Publish = *publishedAt
	}

	if err := s.db.Save(&post).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Tags", orderTagsByName).First(&post, post.ID).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post together with its comments and tag links.
func (s *PostService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var post db.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&db.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

func (s *PostService) publishedQuery(tagID uint) *gorm.DB {
	query := s.db.Model(&db.Post{}).Scopes(PublishedPosts)
	if tagID != 0 {
		query = query.Where("posts.id IN (?)", s.db.Table("post_tags").Select("post_id").Where("tag_id = ?", tagID))
	}
	return query
}

func (s *PostService) saveWithTags(post *db.Post, tagIDs []uint) (*db.Post, error) {
	return post, s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}

		var tags []db.Tag
		if len(tagIDs) > 0 {
			if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
				return err
			}

			if len(tags) != len(tagIDs) {
				return ErrTagNotFound
			}
		}

		if err := tx.Model(post).Association("Tags").Replace(tags); err != nil {
			return err
		}

		return tx.Preload("Tags", orderTagsByName).First(post, post.ID).Error
	})
}
