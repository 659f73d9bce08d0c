package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
)

// Index 首页
func (h *Handler) Index(c *gin.Context) {
	page, err := h.feed.Global(c.Request.Context(), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.tmpl", "Последние обновления на сайте", gin.H{"Page": page})
}

func (h *Handler) GroupPosts(c *gin.Context) {
	res, err := h.feed.Group(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "group_list.tmpl", "Записи сообщества "+res.Group.Title, gin.H{
		"Group": res.Group,
		"Page":  res.Page,
	})
}

func (h *Handler) Profile(c *gin.Context) {
	res, err := h.feed.Profile(c.Request.Context(), c.Param("username"), viewerID(c), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "profile.tmpl", "Профайл пользователя "+res.Author.DisplayName(), gin.H{"Profile": res})
}

func (h *Handler) PostDetail(c *gin.Context) {
	h.renderDetail(c, nil)
}

func (h *Handler) renderDetail(c *gin.Context, errs map[string]string) {
	d, err := h.feed.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	u := middleware.CurrentUser(c)
	h.render(c, http.StatusOK, "post_detail.tmpl", postTitle(d.Post), gin.H{
		"Detail":   d,
		"IsAuthor": u != nil && u.ID == d.Post.AuthorID,
		"Errors":   errs,
	})
}

// FollowIndex 关注作者的帖子
func (h *Handler) FollowIndex(c *gin.Context) {
	page, err := h.feed.Follow(c.Request.Context(), viewerID(c), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "follow.tmpl", "Избранные авторы", gin.H{"Page": page})
}

func (h *Handler) ProfileFollow(c *gin.Context) {
	username := c.Param("username")
	if err := h.rel.Follow(c.Request.Context(), viewerID(c), username); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(username))
}

func (h *Handler) ProfileUnfollow(c *gin.Context) {
	username := c.Param("username")
	if err := h.rel.Unfollow(c.Request.Context(), viewerID(c), username); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(username))
}
