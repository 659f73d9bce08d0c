package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/yatube/internal/api/middleware"
    "github.com/d60-Lab/yatube/pkg/response"
)

// ListPosts 全站帖子
// @Summary 全站帖子（新的在前，首页缓存）
// @Tags 帖子
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=service.PostPage}
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
    page, err := h.feed.Global(c.Request.Context(), c.Query("page"))
    if err != nil {
        fail(c, err)
        return
    }
    response.Success(c, page)
}

// GroupPosts 分组帖子
// @Summary 分组帖子
// @Tags 帖子
// @Produce json
// @Param slug path string true "分组 slug"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=service.PostPage}
// @Failure 404 {object} response.Response
// @Router /api/v1/groups/{slug}/posts [get]
func (h *Handler) GroupPosts(c *gin.Context) {
    res, err := h.feed.Group(c.Request.Context(), c.Param("slug"), c.Query("page"))
    if err != nil {
        fail(c, err)
        return
    }
    response.Success(c, gin.H{"group": res.Group, "page": res.Page})
}

// ProfilePosts 作者帖子
// @Summary 作者帖子与关注计数
// @Tags 帖子
// @Produce json
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 404 {object} response.Response
// @Router /api/v1/profiles/{username}/posts [get]
func (h *Handler) ProfilePosts(c *gin.Context) {
    res, err := h.feed.Profile(c.Request.Context(), c.Param("username"), "", c.Query("page"))
    if err != nil {
        fail(c, err)
        return
    }
    response.Success(c, gin.H{
        "author":          res.Author,
        "posts_count":     res.PostsCount,
        "followers_count": res.FollowersCount,
        "following_count": res.FollowingCount,
        "page":            res.Page,
    })
}

// Feed 关注流
// @Summary 我关注的作者的帖子
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=service.PostPage}
// @Failure 401 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) Feed(c *gin.Context) {
    page, err := h.feed.Follow(c.Request.Context(), middleware.UserID(c), c.Query("page"))
    if err != nil {
        fail(c, err)
        return
    }
    response.Success(c, page)
}
