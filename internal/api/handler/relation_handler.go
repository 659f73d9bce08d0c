package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/yatube/internal/api/middleware"
    "github.com/d60-Lab/yatube/pkg/response"
)

type followRequest struct {
    Username string `json:"username" binding:"required,max=150,username"`
}

// Follow 关注作者
// @Summary 关注作者
// @Tags 关系链
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body followRequest true "被关注的作者"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/follow [post]
func (h *Handler) Follow(c *gin.Context) {
    var req followRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    if err := h.relService.Follow(c.Request.Context(), middleware.UserID(c), req.Username); err != nil {
        fail(c, err)
        return
    }
    response.Success(c, nil)
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关系链
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body followRequest true "取消关注的作者"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/unfollow [post]
func (h *Handler) Unfollow(c *gin.Context) {
    var req followRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    if err := h.relService.Unfollow(c.Request.Context(), middleware.UserID(c), req.Username); err != nil {
        fail(c, err)
        return
    }
    response.Success(c, nil)
}

// ListFollowing 查询某用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=service.UserPage}
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/{username}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
    page, err := h.relService.ListFollowing(c.Request.Context(), c.Param("username"), c.Query("page"))
    if err != nil {
        fail(c, err)
        return
    }
    response.Success(c, page)
}

// ListFans 查询某用户的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=service.UserPage}
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/{username}/followers [get]
func (h *Handler) ListFans(c *gin.Context) {
    page, err := h.relService.ListFollowers(c.Request.Context(), c.Param("username"), c.Query("page"))
    if err != nil {
        fail(c, err)
        return
    }
    response.Success(c, page)
}
