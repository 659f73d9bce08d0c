package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/cache"
	"github.com/d60-Lab/yatube/pkg/logger"
	"github.com/d60-Lab/yatube/pkg/paginator"
)

const indexCacheKey = "feed:index:"

// PostPage 一页帖子
type PostPage = paginator.Page[*model.Post]

// GroupFeed 分组页
type GroupFeed struct {
	Group *model.Group
	Page  PostPage
}

// ProfileFeed 个人主页
type ProfileFeed struct {
	Author         *model.User
	Page           PostPage
	PostsCount     int64
	FollowersCount int64
	FollowingCount int64
	// Following 当前访问者是否已关注该作者；匿名访问为 false
	Following bool
	// IsSelf 访问者就是作者本人
	IsSelf bool
}

// PostDetail 帖子详情页
type PostDetail struct {
	Post             *model.Post
	Comments         []*model.Comment
	AuthorPostsCount int64
}

// FeedOptions 来自 config.Feed / config.Cache
type FeedOptions struct {
	PageSize          int
	InvalidateOnWrite bool
}

// FeedService 组装首页、分组、个人主页与关注流四种帖子列表。
// 首页结果经过页面缓存；写路径通过 PostsChanged 通知。
type FeedService struct {
	posts    repository.PostRepository
	groups   repository.GroupRepository
	users    repository.UserRepository
	follows  repository.FollowRepository
	comments repository.CommentRepository
	cache    cache.PageCache
	opts     FeedOptions
}

func NewFeedService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
	comments repository.CommentRepository,
	pageCache cache.PageCache,
	opts FeedOptions,
) *FeedService {
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	return &FeedService{
		posts:    posts,
		groups:   groups,
		users:    users,
		follows:  follows,
		comments: comments,
		cache:    pageCache,
		opts:     opts,
	}
}

func (s *FeedService) PageSize() int { return s.opts.PageSize }

func (s *FeedService) page(ctx context.Context, f repository.PostFilter, rawPage string) (PostPage, error) {
	count, err := s.posts.Count(ctx, f)
	if err != nil {
		return PostPage{}, err
	}
	req := paginator.Resolve(rawPage, s.opts.PageSize, count)
	items, err := s.posts.List(ctx, f, req.Offset(), req.Limit())
	if err != nil {
		return PostPage{}, err
	}
	return paginator.New(req, items), nil
}

// Global 全部帖子，新的在前。命中缓存时直接返回缓存内容，TTL 内可能包含已删除的帖子。
func (s *FeedService) Global(ctx context.Context, rawPage string) (PostPage, error) {
	f := repository.PostFilter{}
	count, err := s.posts.Count(ctx, f)
	if err != nil {
		return PostPage{}, fmt.Errorf("global feed: %w", err)
	}
	// 按解析后的页码缓存，键的数量不超过总页数
	req := paginator.Resolve(rawPage, s.opts.PageSize, count)
	key := indexCacheKey + strconv.Itoa(req.Number)
	if s.cache != nil {
		data, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("page cache get failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			var cached PostPage
			if uErr := json.Unmarshal(data, &cached); uErr == nil {
				return cached, nil
			}
		}
	}

	items, err := s.posts.List(ctx, f, req.Offset(), req.Limit())
	if err != nil {
		return PostPage{}, fmt.Errorf("global feed: %w", err)
	}
	p := paginator.New(req, items)
	if s.cache != nil {
		if payload, err := json.Marshal(p); err == nil {
			if err := s.cache.Set(ctx, key, payload); err != nil {
				logger.Warn("page cache set failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return p, nil
}

// Group 某分组的帖子；分组不存在返回 ErrNotFound，没有帖子返回空页
func (s *FeedService) Group(ctx context.Context, slug, rawPage string) (*GroupFeed, error) {
	g, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", slug, err)
	}
	p, err := s.page(ctx, repository.PostFilter{GroupID: g.ID}, rawPage)
	if err != nil {
		return nil, fmt.Errorf("group feed: %w", err)
	}
	return &GroupFeed{Group: g, Page: p}, nil
}

// Profile 作者主页；viewerID 为空表示匿名访问
func (s *FeedService) Profile(ctx context.Context, username, viewerID, rawPage string) (*ProfileFeed, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", username, err)
	}
	p, err := s.page(ctx, repository.PostFilter{AuthorID: author.ID}, rawPage)
	if err != nil {
		return nil, fmt.Errorf("profile feed: %w", err)
	}
	out := &ProfileFeed{Author: author, Page: p, PostsCount: p.Count, IsSelf: viewerID == author.ID}
	if out.FollowersCount, err = s.follows.CountFollowers(ctx, author.ID); err != nil {
		return nil, err
	}
	if out.FollowingCount, err = s.follows.CountFollowings(ctx, author.ID); err != nil {
		return nil, err
	}
	if viewerID != "" && !out.IsSelf {
		if out.Following, err = s.follows.Exists(ctx, viewerID, author.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Follow 访问者关注的作者们的帖子；未关注任何人时为空页
func (s *FeedService) Follow(ctx context.Context, viewerID, rawPage string) (PostPage, error) {
	if viewerID == "" {
		return PostPage{}, ErrUnauthenticated
	}
	p, err := s.page(ctx, repository.PostFilter{FollowerID: viewerID}, rawPage)
	if err != nil {
		return PostPage{}, fmt.Errorf("follow feed: %w", err)
	}
	return p, nil
}

// Detail 帖子、评论（新的在前）及作者发帖总数
func (s *FeedService) Detail(ctx context.Context, postID string) (*PostDetail, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", postID, err)
	}
	comments, err := s.comments.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	count, err := s.posts.Count(ctx, repository.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: comments, AuthorPostsCount: count}, nil
}

// Groups 所有分组，供发帖表单选择
func (s *FeedService) Groups(ctx context.Context) ([]*model.Group, error) {
	return s.groups.List(ctx)
}

// PostsChanged 写路径在帖子新增、修改、删除后调用。
// 默认不清缓存，首页在 TTL 内允许陈旧；开启 InvalidateOnWrite 后立即清空。
func (s *FeedService) PostsChanged(ctx context.Context) {
	if s.cache == nil || !s.opts.InvalidateOnWrite {
		return
	}
	if err := s.Clear(ctx); err != nil {
		logger.Warn("page cache invalidation failed", zap.Error(err))
	}
}

// Clear 清空页面缓存
func (s *FeedService) Clear(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Clear(ctx)
}

// IsNotFound 便于表现层判断
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
