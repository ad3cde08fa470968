package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mysite/internal/config"
	"github.com/mysite/internal/mail"
	"github.com/mysite/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	posts        *service.PostService
	comments     *service.CommentService
	shares       *service.ShareService
	siteName     string
	baseURL      string
	loc          *time.Location
	similarLimit int
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, sender mail.Sender, cfg config.AppConfig) *API {
	loc := cfg.Location()
	siteName := strings.TrimSpace(cfg.SiteName)
	if siteName == "" {
		siteName = "My Blog"
	}

	return &API{
		posts:        service.NewPostService(db, loc, cfg.PostsPerPage),
		comments:     service.NewCommentService(db),
		shares:       service.NewShareService(sender, cfg.Mail.From),
		siteName:     siteName,
		baseURL:      strings.TrimRight(strings.TrimSpace(cfg.SiteBaseURL), "/"),
		loc:          loc,
		similarLimit: cfg.SimilarPostsLimit,
	}
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = a.siteName
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().In(a.loc).Year()
	}
	if _, exists := payload["csrfToken"]; !exists {
		payload["csrfToken"] = c.GetString(csrfContextKey)
	}

	c.HTML(status, template, payload)
}

// RenderHTML 在渲染模板时附加站点名称与 CSRF 令牌。
func (a *API) RenderHTML(c *gin.Context, status int, template string, data gin.H) {
	a.renderHTML(c, status, template, data)
}
