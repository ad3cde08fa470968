package router

import (
	"html/template"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/mysite/internal/config"
	"github.com/mysite/internal/db"
	"github.com/mysite/internal/handler"
	"github.com/mysite/internal/mail"
	"github.com/mysite/internal/view"
)

const sessionName = "mysite_session"

// SetupRouter 配置 Gin 引擎和路由，数据库使用 db.DB。
func SetupRouter(cfg config.AppConfig, sender mail.Sender) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   14 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	if cfg.CSRFEnabled {
		r.Use(handler.CSRFProtect())
	}

	// 模板与静态资源均已嵌入二进制
	r.SetHTMLTemplate(template.Must(view.Templates(cfg.Location())))
	r.StaticFS("/static", view.Static())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/articles/")
	})

	if sender == nil {
		sender = mail.NewConsoleSender(os.Stdout)
	}
	api := handler.NewAPI(db.DB, sender, cfg)

	// gin 要求同一位置的通配参数同名，分享路由的 :year 实为文章 ID
	articles := r.Group("/articles")
	{
		articles.GET("/", api.ListPosts)
		articles.GET("/tag/:tag_slug/", api.ListPosts)
		articles.GET("/:year/share/", api.SharePost)
		articles.POST("/:year/share/", api.SharePost)
		articles.GET("/:year/:month/:day/:slug/", api.ShowPostDetail)
		articles.POST("/:year/:month/:day/:slug/", api.ShowPostDetail)
	}

	return r
}
