package handler

import (
    "errors"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/yatube/internal/service"
    "github.com/d60-Lab/yatube/pkg/response"
)

// Handler JSON API 处理器
type Handler struct {
    feed       *service.FeedService
    relService service.RelationshipService
    accounts   *service.AccountService
}

func NewHandler(feed *service.FeedService, relService service.RelationshipService, accounts *service.AccountService) *Handler {
    return &Handler{feed: feed, relService: relService, accounts: accounts}
}

// Register 挂载 /api/v1 路由；auth 为 bearer 校验中间件
func (h *Handler) Register(api gin.IRouter, auth, limit gin.HandlerFunc) {
    api.POST("/auth/token", limit, h.IssueToken)

    api.GET("/posts", h.ListPosts)
    api.GET("/groups/:slug/posts", h.GroupPosts)
    api.GET("/profiles/:username/posts", h.ProfilePosts)
    api.GET("/feed", auth, h.Feed)

    api.POST("/relations/follow", auth, limit, h.Follow)
    api.POST("/relations/unfollow", auth, limit, h.Unfollow)
    api.GET("/relations/:username/following", h.ListFollowing)
    api.GET("/relations/:username/followers", h.ListFans)
}

// fail 把服务层错误映射成统一响应
func fail(c *gin.Context, err error) {
    switch {
    case errors.Is(err, service.ErrNotFound):
        response.NotFound(c, "not found")
    case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidCredentials):
        response.Unauthorized(c, err.Error())
    case errors.Is(err, service.ErrForbidden):
        response.Forbidden(c, err.Error())
    case errors.Is(err, service.ErrValidation):
        response.BadRequest(c, err.Error())
    default:
        response.InternalError(c, err)
    }
}
