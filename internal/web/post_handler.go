package web

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/service"
)

// postForm 表单回显
type postForm struct {
	Text  string
	Group string
	Image string
}

func formFromPost(p *model.Post) postForm {
	f := postForm{Text: p.Text, Image: p.Image}
	if p.GroupID != nil {
		f.Group = *p.GroupID
	}
	return f
}

// readPostInput 读取表单；返回的 closer 在请求结束前关闭上传文件
func readPostInput(c *gin.Context) (service.PostInput, func(), error) {
	in := service.PostInput{Text: c.PostForm("text")}
	if g, ok := c.GetPostForm("group"); ok {
		in.GroupID = &g
	}
	closer := func() {}
	fh, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		return in, closer, err
	case fh != nil && fh.Size > 0:
		var f multipart.File
		if f, err = fh.Open(); err != nil {
			return in, closer, err
		}
		closer = func() { _ = f.Close() }
		in.Image = &service.Upload{Filename: fh.Filename, Reader: f}
	}
	return in, closer, nil
}

func (h *Handler) renderPostForm(c *gin.Context, isEdit bool, postID string, form postForm, errs map[string]string) {
	groups, err := h.feed.Groups(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	pageTitle := "Новый пост"
	if isEdit {
		pageTitle = "Редактировать пост"
	}
	h.render(c, http.StatusOK, "create.tmpl", pageTitle, gin.H{
		"IsEdit": isEdit,
		"PostID": postID,
		"Form":   form,
		"Groups": groups,
		"Errors": errs,
	})
}

func (h *Handler) CreateForm(c *gin.Context) {
	h.renderPostForm(c, false, "", postForm{}, nil)
}

// Create 发帖成功后跳到作者主页
func (h *Handler) Create(c *gin.Context) {
	u := middleware.CurrentUser(c)
	in, closeUpload, err := readPostInput(c)
	defer closeUpload()
	if err != nil {
		h.fail(c, err)
		return
	}
	_, err = h.posts.Create(c.Request.Context(), u.ID, in)
	if errs := service.FieldErrors(err); errs != nil {
		form := postForm{Text: in.Text}
		if in.GroupID != nil {
			form.Group = *in.GroupID
		}
		h.renderPostForm(c, false, "", form, errs)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(u.Username))
}

// EditForm 非作者被送回首页
func (h *Handler) EditForm(c *gin.Context) {
	p, err := h.posts.ForEdit(c.Request.Context(), c.Param("id"), viewerID(c))
	if errors.Is(err, service.ErrForbidden) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.renderPostForm(c, true, p.ID, formFromPost(p), nil)
}

func (h *Handler) Edit(c *gin.Context) {
	id := c.Param("id")
	in, closeUpload, err := readPostInput(c)
	defer closeUpload()
	if err != nil {
		h.fail(c, err)
		return
	}
	p, err := h.posts.Edit(c.Request.Context(), id, viewerID(c), in)
	if errors.Is(err, service.ErrForbidden) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if errs := service.FieldErrors(err); errs != nil {
		form := formFromPost(p)
		form.Text = in.Text
		if in.GroupID != nil {
			form.Group = *in.GroupID
		}
		h.renderPostForm(c, true, id, form, errs)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, postPath(p.ID))
}

func (h *Handler) Delete(c *gin.Context) {
	u := middleware.CurrentUser(c)
	_, err := h.posts.Delete(c.Request.Context(), c.Param("id"), u.ID)
	if errors.Is(err, service.ErrForbidden) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(u.Username))
}

// AddComment 无效评论直接忽略，总是回到帖子页
func (h *Handler) AddComment(c *gin.Context) {
	id := c.Param("id")
	_, err := h.comments.Add(c.Request.Context(), id, viewerID(c), c.PostForm("text"))
	if err != nil && !errors.Is(err, service.ErrValidation) {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, postPath(id))
}
