package service

import (
    "context"
    "fmt"

    "go.uber.org/zap"

    "github.com/d60-Lab/yatube/internal/model"
    "github.com/d60-Lab/yatube/internal/repository"
    "github.com/d60-Lab/yatube/pkg/logger"
    "github.com/d60-Lab/yatube/pkg/paginator"
)

// UserPage 一页用户
type UserPage = paginator.Page[*model.User]

// RelationshipService 关系链服务
type RelationshipService interface {
    Follow(ctx context.Context, followerID, authorUsername string) error
    Unfollow(ctx context.Context, followerID, authorUsername string) error
    ListFollowing(ctx context.Context, username, rawPage string) (UserPage, error)
    ListFollowers(ctx context.Context, username, rawPage string) (UserPage, error)
}

type relationshipService struct {
    users      repository.UserRepository
    followRepo repository.FollowRepository
    pageSize   int
}

func NewRelationshipService(users repository.UserRepository, followRepo repository.FollowRepository, pageSize int) RelationshipService {
    if pageSize <= 0 {
        pageSize = 10
    }
    return &relationshipService{users: users, followRepo: followRepo, pageSize: pageSize}
}

// Follow 关注作者。关注自己或已关注时不做任何事，重复调用结果相同。
func (s *relationshipService) Follow(ctx context.Context, followerID, authorUsername string) error {
    if followerID == "" {
        return ErrUnauthenticated
    }
    author, err := s.users.GetByUsername(ctx, authorUsername)
    if err != nil {
        return fmt.Errorf("follow %q: %w", authorUsername, err)
    }
    if author.ID == followerID {
        return nil
    }
    exists, err := s.followRepo.Exists(ctx, followerID, author.ID)
    if err != nil {
        return err
    }
    if exists {
        return nil
    }
    if err := s.followRepo.Create(ctx, followerID, author.ID); err != nil {
        return err
    }
    logger.Debug("follow created", zap.String("follower", followerID), zap.String("author", author.ID))
    return nil
}

// Unfollow 取消关注；没有关注关系时不做任何事
func (s *relationshipService) Unfollow(ctx context.Context, followerID, authorUsername string) error {
    if followerID == "" {
        return ErrUnauthenticated
    }
    author, err := s.users.GetByUsername(ctx, authorUsername)
    if err != nil {
        return fmt.Errorf("unfollow %q: %w", authorUsername, err)
    }
    return s.followRepo.Delete(ctx, followerID, author.ID)
}

func (s *relationshipService) ListFollowing(ctx context.Context, username, rawPage string) (UserPage, error) {
    u, err := s.users.GetByUsername(ctx, username)
    if err != nil {
        return UserPage{}, fmt.Errorf("following of %q: %w", username, err)
    }
    cnt, err := s.followRepo.CountFollowings(ctx, u.ID)
    if err != nil {
        return UserPage{}, err
    }
    req := paginator.Resolve(rawPage, s.pageSize, cnt)
    items, err := s.followRepo.ListFollowings(ctx, u.ID, req.Offset(), req.Limit())
    if err != nil {
        return UserPage{}, err
    }
    res := make([]*model.User, 0, len(items))
    for _, it := range items {
        if it.Author != nil {
            res = append(res, it.Author)
        }
    }
    return paginator.New(req, res), nil
}

func (s *relationshipService) ListFollowers(ctx context.Context, username, rawPage string) (UserPage, error) {
    u, err := s.users.GetByUsername(ctx, username)
    if err != nil {
        return UserPage{}, fmt.Errorf("followers of %q: %w", username, err)
    }
    cnt, err := s.followRepo.CountFollowers(ctx, u.ID)
    if err != nil {
        return UserPage{}, err
    }
    req := paginator.Resolve(rawPage, s.pageSize, cnt)
    items, err := s.followRepo.ListFollowers(ctx, u.ID, req.Offset(), req.Limit())
    if err != nil {
        return UserPage{}, err
    }
    res := make([]*model.User, 0, len(items))
    for _, it := range items {
        if it.Follower != nil {
            res = append(res, it.Follower)
        }
    }
    return paginator.New(req, res), nil
}
