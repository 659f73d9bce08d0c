package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/pkg/response"
)

// TokenParser 校验 bearer token 并返回用户 id
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// JWTAuth 要求 Authorization: Bearer <token>
func JWTAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		uid, err := parser.ParseToken(strings.TrimSpace(token))
		if err != nil {
			response.Unauthorized(c, "invalid token")
			return
		}
		c.Set(ctxUserIDKey, uid)
		c.Next()
	}
}

// UserID API 调用方的用户 id；网页 session 与 bearer token 都会设置
func UserID(c *gin.Context) string {
	return currentUserID(c)
}
