package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/pkg/logger"
)

const (
	sessionUserKey = "uid"
	ctxUserKey     = "current_user"
	ctxUserIDKey   = "current_user_id"

	LoginPath = "/auth/login/"
)

// UserLoader 按 id 加载用户
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// LoadUser 从 cookie session 中恢复当前用户；用户不存在时清空 session
func LoadUser(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		id, _ := sess.Get(sessionUserKey).(string)
		if id == "" {
			c.Next()
			return
		}
		u, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			logger.Debug("session user not loaded", zap.String("user", id), zap.Error(err))
			sess.Delete(sessionUserKey)
			_ = sess.Save()
			c.Next()
			return
		}
		c.Set(ctxUserKey, u)
		c.Set(ctxUserIDKey, u.ID)
		c.Next()
	}
}

// RequireLogin 未登录时跳转登录页，登录后回到原地址
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			target := LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser 当前登录用户，匿名访问返回 nil
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}

// Login 把用户写入 session
func Login(c *gin.Context, u *model.User) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(sessionUserKey, u.ID)
	if err := sess.Save(); err != nil {
		return err
	}
	c.Set(ctxUserKey, u)
	c.Set(ctxUserIDKey, u.ID)
	return nil
}

// Logout 清空 session 并让 cookie 过期
func Logout(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	c.Set(ctxUserKey, nil)
	c.Set(ctxUserIDKey, "")
	return sess.Save()
}

func currentUserID(c *gin.Context) string {
	return c.GetString(ctxUserIDKey)
}
