package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CSRFFormField = "csrfmiddlewaretoken"
	CSRFHeader    = "X-CSRFToken"

	csrfSessionKey = "csrf_token"
	csrfContextKey = "csrfToken"
)

// CSRFProtect 为每个会话签发令牌，并拒绝令牌不匹配的写请求。
// 需要在 sessions 中间件之后注册。
func CSRFProtect() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(csrfSessionKey).(string)
		if token == "" {
			token = uuid.NewString()
			session.Set(csrfSessionKey, token)
			if err := session.Save(); err != nil {
				c.Error(err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
		}
		c.Set(csrfContextKey, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			c.Next()
			return
		}

		submitted := c.GetHeader(CSRFHeader)
		if submitted == "" {
			submitted = c.PostForm(CSRFFormField)
		}
		if subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
