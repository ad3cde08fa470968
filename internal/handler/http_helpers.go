package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/mysite/internal/service"
)

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parseIntParam(c *gin.Context, key string) (int, error) {
	value, err := strconv.Atoi(c.Param(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return value, nil
}

func bindForm(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindWith(dst, binding.Form); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return false
	}
	return true
}

// abortWithError 将未找到类错误映射为 404，其余记录到上下文并返回 500。
func abortWithError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrPostNotFound) || errors.Is(err, service.ErrTagNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}

func (a *API) absoluteURL(c *gin.Context, path string) string {
	if a.baseURL != "" {
		return a.baseURL + path
	}

	scheme := "http"
	if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + path
}
