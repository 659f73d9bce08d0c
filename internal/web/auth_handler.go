package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/logger"
)

const badCredentials = "Пожалуйста, введите правильные имя пользователя и пароль."

func (h *Handler) SignUpForm(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.tmpl", "Регистрация", gin.H{"Form": service.SignUpInput{}})
}

// SignUp 注册后直接登录并跳到首页
func (h *Handler) SignUp(c *gin.Context) {
	var in service.SignUpInput
	if err := c.ShouldBind(&in); err != nil {
		h.fail(c, err)
		return
	}
	u, err := h.accounts.SignUp(c.Request.Context(), in)
	if errs := service.FieldErrors(err); errs != nil {
		in.Password = ""
		h.render(c, http.StatusOK, "signup.tmpl", "Регистрация", gin.H{"Form": in, "Errors": errs})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := middleware.Login(c, u); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.tmpl", "Войти", gin.H{"Next": c.Query("next"), "Username": "", "Error": ""})
}

func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	next := c.PostForm("next")
	u, err := h.accounts.Authenticate(c.Request.Context(), username, c.PostForm("password"))
	if errors.Is(err, service.ErrInvalidCredentials) {
		logger.Info("login rejected", zap.String("username", username), zap.String("ip", c.ClientIP()))
		h.render(c, http.StatusOK, "login.tmpl", "Войти", gin.H{
			"Next":     next,
			"Username": username,
			"Error":    badCredentials,
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := middleware.Login(c, u); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, safeNext(next))
}

func (h *Handler) Logout(c *gin.Context) {
	if err := middleware.Logout(c); err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "logged_out.tmpl", "Вы вышли из системы", nil)
}
