package handler

import (
    "time"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/yatube/pkg/response"
)

type tokenRequest struct {
    Username string `json:"username" binding:"required"`
    Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
    Token     string    `json:"token"`
    ExpiresAt time.Time `json:"expires_at"`
}

// IssueToken 用户名密码换取 bearer token
// @Summary 获取访问令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body tokenRequest true "登录信息"
// @Success 200 {object} response.Response{data=tokenResponse}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/v1/auth/token [post]
func (h *Handler) IssueToken(c *gin.Context) {
    var req tokenRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    u, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
    if err != nil {
        fail(c, err)
        return
    }
    token, exp, err := h.accounts.IssueToken(u)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, tokenResponse{Token: token, ExpiresAt: exp})
}
