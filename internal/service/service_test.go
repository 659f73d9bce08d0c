package service

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/cache"
	"github.com/d60-Lab/yatube/pkg/storage"
)

type fixture struct {
	db       *gorm.DB
	feed     *FeedService
	rel      RelationshipService
	posts    *PostService
	comments *CommentService
	accounts *AccountService
	media    *storage.DiskStorage
	cache    cache.PageCache
}

func newFixture(t *testing.T, db *gorm.DB, opts FeedOptions) *fixture {
	t.Helper()
	postRepo := repository.NewPostRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	pc := cache.NewMemoryCache(64, time.Minute)
	media := storage.NewDiskStorage(t.TempDir(), "/media/")
	feed := NewFeedService(postRepo, groupRepo, userRepo, followRepo, commentRepo, pc, opts)
	return &fixture{
		db:       db,
		feed:     feed,
		rel:      NewRelationshipService(userRepo, followRepo, opts.PageSize),
		posts:    NewPostService(postRepo, groupRepo, media, feed),
		comments: NewCommentService(postRepo, commentRepo),
		accounts: NewAccountService(userRepo, TokenOptions{Secret: "test-secret", Expire: time.Hour, Issuer: "yatube"}),
		media:    media,
		cache:    pc,
	}
}
