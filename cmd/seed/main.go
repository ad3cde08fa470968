package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mysite/internal/config"
	"github.com/mysite/internal/db"
	"github.com/mysite/internal/service"
	"gorm.io/gorm"
)

var seedLog = log.New(os.Stdout, "[seed] ", log.LstdFlags)

type seedPost struct {
	Title    string
	Body     string
	Tags     []string
	Draft    bool
	Comments []service.CommentForm
}

var demoPosts = []seedPost{
	{
		Title: "Who was Django Reinhardt?",
		Body:  "Django Reinhardt was a **Belgian-born** jazz guitarist.\n\nHe invented *gypsy jazz* together with Stéphane Grappelli.",
		Tags:  []string{"music", "jazz"},
		Comments: []service.CommentForm{
			{Name: "Ann", Email: "ann@example.com", Body: "Great introduction!"},
			{Name: "Bob", Email: "bob@example.com", Body: "Minor Swing is my favourite."},
		},
	},
	{
		Title: "Notes on Minor Swing",
		Body:  "A short study of the **chord changes** in Minor Swing.",
		Tags:  []string{"music", "jazz", "guitar"},
	},
	{
		Title: "Choosing a first guitar",
		Body:  "Steel or nylon strings? A few things to consider before buying.",
		Tags:  []string{"guitar"},
	},
	{
		Title: "Writing web services in Go",
		Body:  "Handlers, services and a small persistence layer.\n\n```go\nr := gin.Default()\n```",
		Tags:  []string{"go", "web"},
	},
	{
		Title: "Paginating query results",
		Body:  "Offset pagination is simple and good enough for a small blog.",
		Tags:  []string{"go", "databases"},
	},
	{
		Title: "Unfinished thoughts",
		Body:  "This draft is not visible on the site.",
		Tags:  []string{"misc"},
		Draft: true,
	},
}

type options struct {
	Username string
	Password string
	Start    time.Time
}

// 测试数据生成器
func main() {
	username := flag.String("username", "admin", "author username")
	password := flag.String("password", "admin123", "author password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 初始化数据库
	if err := db.Init(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseDSN,
	}); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	created, err := seed(db.DB, cfg.Location(), options{
		Username: *username,
		Password: *password,
		Start:    time.Now().AddDate(0, 0, -len(demoPosts)),
	})
	if err != nil {
		log.Fatalf("failed to seed data: %v", err)
	}
	seedLog.Printf("done: %d posts created, author %q", created, *username)
}

// seed 创建作者、标签、文章与评论；已存在同标题文章时跳过。
func seed(gdb *gorm.DB, loc *time.Location, opts options) (int, error) {
	author, err := db.EnsureUser(gdb, opts.Username, opts.Password)
	if err != nil {
		return 0, fmt.Errorf("ensure author: %w", err)
	}

	posts := service.NewPostService(gdb, loc, service.DefaultPostsPerPage)
	tags := service.NewTagService(gdb)
	comments := service.NewCommentService(gdb)

	created := 0
	for i, item := range demoPosts {
		var existing int64
		if err := gdb.Model(&db.Post{}).Where("title = ?", item.Title).Count(&existing).Error; err != nil {
			return created, err
		}
		if existing > 0 {
			seedLog.Printf("skip %q: already exists", item.Title)
			continue
		}

		postTags, err := tags.FindOrCreate(item.Tags)
		if err != nil {
			return created, fmt.Errorf("tags for %q: %w", item.Title, err)
		}
		tagIDs := make([]uint, 0, len(postTags))
		for _, tag := range postTags {
			tagIDs = append(tagIDs, tag.ID)
		}

		post, err := posts.Create(service.PostInput{
			Title:    item.Title,
			Body:     item.Body,
			TagIDs:   tagIDs,
			AuthorID: &author.ID,
		})
		if err != nil {
			return created, fmt.Errorf("create %q: %w", item.Title, err)
		}

		if !item.Draft {
			publishAt := opts.Start.AddDate(0, 0, i)
			if post, err = posts.Publish(post.ID, &publishAt); err != nil {
				return created, fmt.Errorf("publish %q: %w", item.Title, err)
			}
		}

		for _, form := range item.Comments {
			if _, err := comments.Submit(post, form); err != nil {
				return created, fmt.Errorf("comment on %q: %w", item.Title, err)
			}
		}

		created++
		seedLog.Printf("created %q (%s)", post.Title, post.Status)
	}
	return created, nil
}
