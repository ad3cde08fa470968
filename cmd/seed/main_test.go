package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/mysite/internal/db"
	"github.com/mysite/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:seed-%d?mode=memory&cache=shared&_foreign_keys=on", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestSeedIsRepeatable(t *testing.T) {
	gdb := setupSeedTestDB(t)
	opts := options{Username: "admin", Password: "secret", Start: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}

	created, err := seed(gdb, time.UTC, opts)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if created != len(demoPosts) {
		t.Fatalf("expected %d posts, got %d", len(demoPosts), created)
	}

	created, err = seed(gdb, time.UTC, opts)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected second run to create nothing, got %d", created)
	}

	var users int64
	gdb.Model(&db.User{}).Count(&users)
	if users != 1 {
		t.Fatalf("expected one author, got %d", users)
	}
}

func TestSeedPublishesAllButDrafts(t *testing.T) {
	gdb := setupSeedTestDB(t)
	if _, err := seed(gdb, time.UTC, options{Username: "admin", Password: "secret", Start: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	result, err := service.NewPostService(gdb, time.UTC, 10).ListPublished(service.PostFilter{})
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if result.Page.Total != int64(len(demoPosts)-1) {
		t.Fatalf("expected %d published posts, got %d", len(demoPosts)-1, result.Page.Total)
	}
	if result.Posts[0].Author == nil || result.Posts[0].Author.Username != "admin" {
		t.Fatalf("expected author to be preloaded")
	}

	first := result.Posts[len(result.Posts)-1]
	similar, err := service.NewPostService(gdb, time.UTC, 10).Similar(&first, 0)
	if err != nil {
		t.Fatalf("similar: %v", err)
	}
	if len(similar) == 0 || similar[0].Title != "Notes on Minor Swing" {
		t.Fatalf("expected the jazz post to be most similar, got %+v", similar)
	}
}
