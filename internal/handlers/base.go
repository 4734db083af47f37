package handlers

import (
	"errors"
	"net/http"

	"perapera/internal/middleware"
	"perapera/internal/models"
	"perapera/internal/services"
	"perapera/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError 按错误类别映射状态码；未知错误只记日志，不向客户端泄露细节
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		c.JSON(statusFor(svcErr.Kind), gin.H{"error": svcErr.Msg})
		return
	}

	_ = c.Error(err)
	log.Error("request failed",
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(kind, services.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(kind, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, services.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// currentUser 受保护路由上 AuthRequired 已保证存在
func currentUser(c *gin.Context) *models.User {
	user, _ := middleware.CurrentUser(c)
	return user
}

// paramID 解析路径 ID，非法 ID 等同于不存在
func paramID(c *gin.Context, name string, notFound error) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return 0, false
	}
	return id, true
}

func respondOK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
