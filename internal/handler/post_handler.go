package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mysite/internal/db"
	"github.com/mysite/internal/service"
)

// ListPosts 渲染已发布文章列表，可通过 tag_slug 按标签过滤，page 查询参数分页。
func (a *API) ListPosts(c *gin.Context) {
	result, err := a.posts.ListPublished(service.PostFilter{
		TagSlug: c.Param("tag_slug"),
		Page:    c.Query("page"),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	title := ""
	if result.Tag != nil {
		title = result.Tag.Name
	}

	a.renderHTML(c, http.StatusOK, "list.html", gin.H{
		"title": title,
		"posts": result.Posts,
		"page":  result.Page,
		"tag":   result.Tag,
	})
}

// ShowPostDetail renders a post with its comments and similar posts, and
// accepts new comments on POST.
func (a *API) ShowPostDetail(c *gin.Context) {
	year, errYear := parseIntParam(c, "year")
	month, errMonth := parseIntParam(c, "month")
	day, errDay := parseIntParam(c, "day")
	if errYear != nil || errMonth != nil || errDay != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	post, err := a.posts.GetPublishedByDate(year, month, day, c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	// 评论在处理提交之前读取，新评论不会出现在本次响应中
	comments, err := a.comments.ListActive(post.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var (
		form       service.CommentForm
		formErrors = map[string]string{}
		newComment *db.Comment
	)

	if c.Request.Method == http.MethodPost {
		if !bindForm(c, &form) {
			return
		}

		comment, err := a.comments.Submit(post, form)
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			formErrors = verr.Fields
		case err != nil:
			abortWithError(c, err)
			return
		default:
			newComment = comment
		}
	}

	similar, err := a.posts.Similar(post, a.similarLimit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "detail.html", gin.H{
		"title":        post.Title,
		"post":         post,
		"comments":     comments,
		"commentForm":  form,
		"formErrors":   formErrors,
		"newComment":   newComment,
		"similarPosts": similar,
	})
}

// SharePost 展示分享表单，POST 时通过邮件推荐文章。
func (a *API) SharePost(c *gin.Context) {
	// 分享路由与详情路由共用第一段参数名，此处它承载文章 ID
	id, err := parseUintParam(c, "year")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	post, err := a.posts.GetPublished(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var (
		form service.ShareForm
		errs = map[string]string{}
		sent bool
	)

	if c.Request.Method == http.MethodPost {
		if !bindForm(c, &form) {
			return
		}

		err := a.shares.Share(c.Request.Context(), post, form, a.absoluteURL(c, post.Path(a.loc)))
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			errs = verr.Fields
		case err != nil:
			abortWithError(c, err)
			return
		default:
			sent = true
		}
	}

	a.renderHTML(c, http.StatusOK, "share.html", gin.H{
		"title":  "Share " + post.Title,
		"post":   post,
		"form":   form,
		"errors": errs,
		"sent":   sent,
	})
}
