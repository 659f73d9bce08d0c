package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/logger"
	"github.com/d60-Lab/yatube/pkg/storage"
)

// ImagePrefix 帖子图片的存储前缀
const ImagePrefix = "posts/"

// DefaultMaxImageSize 单张图片上限
const DefaultMaxImageSize = 10 << 20

var unsafeFilename = regexp.MustCompile(`[^\p{L}\p{N}_.-]`)

// Upload 上传的文件
type Upload struct {
	Filename string
	Reader   io.Reader
}

// PostInput 创建/编辑帖子的表单数据。
// GroupID 为 nil 表示未提交该字段（编辑时保留原值），指向空串表示不属于任何分组。
// Image 为 nil 表示不修改图片。
type PostInput struct {
	Text    string
	GroupID *string
	Image   *Upload
}

// FeedNotifier 帖子变更通知，由 FeedService 实现
type FeedNotifier interface {
	PostsChanged(ctx context.Context)
}

type PostService struct {
	posts        repository.PostRepository
	groups       repository.GroupRepository
	media        storage.Storage
	feed         FeedNotifier
	maxImageSize int64
}

func NewPostService(posts repository.PostRepository, groups repository.GroupRepository, media storage.Storage, feed FeedNotifier) *PostService {
	return &PostService{posts: posts, groups: groups, media: media, feed: feed, maxImageSize: DefaultMaxImageSize}
}

type preparedImage struct {
	filename    string
	data        []byte
	contentType string
}

// validate 校验表单，返回待保存的图片（可能为 nil）
func (s *PostService) validate(ctx context.Context, in *PostInput) (*preparedImage, error) {
	var ve ValidationError
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		ve.Add("text", "This field is required.")
	}
	if in.GroupID != nil && *in.GroupID != "" {
		if _, err := s.groups.GetByID(ctx, *in.GroupID); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			ve.Add("group", "Select a valid choice.")
		}
	}
	var img *preparedImage
	if in.Image != nil && in.Image.Reader != nil {
		data, err := io.ReadAll(io.LimitReader(in.Image.Reader, s.maxImageSize+1))
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		mt := mimetype.Detect(data)
		switch {
		case int64(len(data)) > s.maxImageSize:
			ve.Add("image", "The file is too large.")
		case len(data) == 0 || !strings.HasPrefix(mt.String(), "image/"):
			ve.Add("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
		default:
			img = &preparedImage{filename: in.Image.Filename, data: data, contentType: mt.String()}
		}
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return img, nil
}

// storeImage 保存到 posts/<filename>，重名时追加短后缀
func (s *PostService) storeImage(ctx context.Context, img *preparedImage) (string, error) {
	name := cleanFilename(img.filename)
	key := ImagePrefix + name
	exists, err := s.media.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if exists {
		ext := path.Ext(name)
		key = ImagePrefix + strings.TrimSuffix(name, ext) + "_" + uuid.New().String()[:7] + ext
	}
	if err := s.media.Save(ctx, key, bytes.NewReader(img.data), img.contentType); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return key, nil
}

func (s *PostService) dropImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.media.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotExist) {
		logger.Warn("delete image failed", zap.String("key", key), zap.Error(err))
	}
}

func cleanFilename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeFilename.ReplaceAllString(name, "")
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", ".")
	}
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}

// Create 发帖；作者固定为 authorID
func (s *PostService) Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error) {
	if authorID == "" {
		return nil, ErrUnauthenticated
	}
	img, err := s.validate(ctx, &in)
	if err != nil {
		return nil, err
	}
	p := &model.Post{Text: in.Text, AuthorID: authorID}
	if in.GroupID != nil && *in.GroupID != "" {
		gid := *in.GroupID
		p.GroupID = &gid
	}
	if img != nil {
		if p.Image, err = s.storeImage(ctx, img); err != nil {
			return nil, err
		}
	}
	if err := s.posts.Create(ctx, p); err != nil {
		s.dropImage(ctx, p.Image)
		return nil, fmt.Errorf("create post: %w", err)
	}
	logger.Info("post created", zap.String("post", p.ID), zap.String("author", authorID))
	s.feed.PostsChanged(ctx)
	return p, nil
}

// ForEdit 取出帖子用于编辑表单；非作者返回 ErrForbidden
func (s *PostService) ForEdit(ctx context.Context, postID, editorID string) (*model.Post, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", postID, err)
	}
	if p.AuthorID != editorID {
		return nil, ErrForbidden
	}
	return p, nil
}

// Edit 原地更新；未提交的分组与图片保持不变
func (s *PostService) Edit(ctx context.Context, postID, editorID string, in PostInput) (*model.Post, error) {
	p, err := s.ForEdit(ctx, postID, editorID)
	if err != nil {
		return nil, err
	}
	img, err := s.validate(ctx, &in)
	if err != nil {
		return p, err
	}
	p.Text = in.Text
	if in.GroupID != nil {
		if *in.GroupID == "" {
			p.GroupID = nil
		} else {
			gid := *in.GroupID
			p.GroupID = &gid
		}
	}
	oldImage := p.Image
	if img != nil {
		if p.Image, err = s.storeImage(ctx, img); err != nil {
			return nil, err
		}
	}
	if err := s.posts.Update(ctx, p); err != nil {
		if p.Image != oldImage {
			s.dropImage(ctx, p.Image)
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	if p.Image != oldImage {
		s.dropImage(ctx, oldImage)
	}
	s.feed.PostsChanged(ctx)
	return s.posts.GetByID(ctx, p.ID)
}

// Delete 删除帖子、评论与图片；仅作者可操作
func (s *PostService) Delete(ctx context.Context, postID, editorID string) (*model.Post, error) {
	p, err := s.ForEdit(ctx, postID, editorID)
	if err != nil {
		return nil, err
	}
	if err := s.posts.Delete(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("delete post: %w", err)
	}
	s.dropImage(ctx, p.Image)
	logger.Info("post deleted", zap.String("post", p.ID))
	s.feed.PostsChanged(ctx)
	return p, nil
}
