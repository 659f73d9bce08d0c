package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
)

type CommentService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
}

func NewCommentService(posts repository.PostRepository, comments repository.CommentRepository) *CommentService {
	return &CommentService{posts: posts, comments: comments}
}

// Add 添加评论；作者总是当前用户
func (s *CommentService) Add(ctx context.Context, postID, authorID, text string) (*model.Comment, error) {
	if authorID == "" {
		return nil, ErrUnauthenticated
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", postID, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		ve := &ValidationError{}
		ve.Add("text", "This field is required.")
		return nil, ve
	}
	c := &model.Comment{Text: text, AuthorID: authorID, PostID: post.ID}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}
