// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/database"
)

// GIF 是一张 2x1 的最小 GIF 图片
var GIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

// NewDB 打开迁移好的内存 SQLite（单连接，外键开启）
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(":memory:")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.New().String(), Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateGroup(t testing.TB, db *gorm.DB, slug string) *model.Group {
	t.Helper()
	g := &model.Group{ID: uuid.New().String(), Title: "Тестовая группа " + slug, Slug: slug, Description: "Тестовое описание"}
	require.NoError(t, db.Create(g).Error)
	return g
}

// CreatePost 写入帖子；seq 用来拉开 created_at，保证排序确定
func CreatePost(t testing.TB, db *gorm.DB, author *model.User, group *model.Group, text string, seq int) *model.Post {
	t.Helper()
	p := &model.Post{
		ID:        uuid.New().String(),
		Text:      text,
		AuthorID:  author.ID,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(seq) * time.Minute),
	}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, db.Omit("Author", "Group").Create(p).Error)
	return p
}

func CreatePosts(t testing.TB, db *gorm.DB, author *model.User, group *model.Group, n int) []*model.Post {
	t.Helper()
	out := make([]*model.Post, n)
	for i := 0; i < n; i++ {
		out[i] = CreatePost(t, db, author, group, fmt.Sprintf("Пост num%d", i), i)
	}
	return out
}

// CreateComment 写入评论；seq 的含义同 CreatePost
func CreateComment(t testing.TB, db *gorm.DB, post *model.Post, author *model.User, text string, seq int) *model.Comment {
	t.Helper()
	c := &model.Comment{
		ID:        uuid.New().String(),
		Text:      text,
		AuthorID:  author.ID,
		PostID:    post.ID,
		CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).Add(time.Duration(seq) * time.Minute),
	}
	require.NoError(t, db.Omit("Author", "Post").Create(c).Error)
	return c
}

func Follow(t testing.TB, db *gorm.DB, follower, author *model.User) {
	t.Helper()
	require.NoError(t, repository.NewFollowRepository(db).Create(context.Background(), follower.ID, author.ID))
}

func CountRows(t testing.TB, db *gorm.DB, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}
