// Package web 提供站点的 HTML 页面
package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/logger"
)

// Handler 网页处理器
type Handler struct {
	feed     *service.FeedService
	posts    *service.PostService
	comments *service.CommentService
	rel      service.RelationshipService
	accounts *service.AccountService
}

func NewHandler(
	feed *service.FeedService,
	posts *service.PostService,
	comments *service.CommentService,
	rel service.RelationshipService,
	accounts *service.AccountService,
) *Handler {
	return &Handler{feed: feed, posts: posts, comments: comments, rel: rel, accounts: accounts}
}

// Register 挂载全部页面路由
func (h *Handler) Register(r gin.IRouter, writeLimit gin.HandlerFunc) {
	r.GET("/", h.Index)
	r.GET("/group/:slug/", h.GroupPosts)
	r.GET("/profile/:username/", h.Profile)
	r.GET("/posts/:id/", h.PostDetail)
	r.GET("/about/author/", h.static("about_author.tmpl", "Об авторе"))
	r.GET("/about/tech/", h.static("about_tech.tmpl", "Технологии"))

	r.GET("/auth/signup/", h.SignUpForm)
	r.POST("/auth/signup/", writeLimit, h.SignUp)
	r.GET("/auth/login/", h.LoginForm)
	r.POST("/auth/login/", writeLimit, h.Login)
	r.GET("/auth/logout/", h.Logout)

	auth := r.Group("/", middleware.RequireLogin())
	auth.GET("/create/", h.CreateForm)
	auth.POST("/create/", writeLimit, h.Create)
	auth.GET("/posts/:id/edit/", h.EditForm)
	auth.POST("/posts/:id/edit/", writeLimit, h.Edit)
	auth.POST("/posts/:id/delete/", writeLimit, h.Delete)
	auth.POST("/posts/:id/comment/", writeLimit, h.AddComment)
	auth.POST("/posts/:id/", writeLimit, h.AddComment)
	auth.GET("/follow/", h.FollowIndex)
	auth.GET("/profile/:username/follow/", h.ProfileFollow)
	auth.GET("/profile/:username/unfollow/", h.ProfileUnfollow)
}

// render 补齐所有模板共用的数据
func (h *Handler) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	if u := middleware.CurrentUser(c); u != nil {
		data["User"] = u
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string(nil)
	}
	c.HTML(status, name, data)
}

// NotFound 也用作 NoRoute
func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "404.tmpl", "Страница не найдена", gin.H{"Path": c.Request.URL.Path})
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		h.NotFound(c)
		return
	}
	logger.Error("page failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	_ = c.Error(err)
	h.render(c, http.StatusInternalServerError, "500.tmpl", "Ошибка", nil)
}

func (h *Handler) static(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.render(c, http.StatusOK, name, title, nil)
	}
}

func profilePath(username string) string { return "/profile/" + username + "/" }

func postPath(id string) string { return "/posts/" + id + "/" }

func viewerID(c *gin.Context) string {
	if u := middleware.CurrentUser(c); u != nil {
		return u.ID
	}
	return ""
}

// safeNext 只接受站内相对地址
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func postTitle(p *model.Post) string {
	return "Пост " + p.Excerpt()
}
