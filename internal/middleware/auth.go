package middleware

import (
	"errors"
	"net/http"

	"perapera/internal/models"
	"perapera/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const CheckUserKey = "user"
const SessionUserKey = "user_id"

// AuthRequired 未登录直接返回 401
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// LoadUser retrieves user from session and sets to context
func LoadUser(users *services.UserService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(SessionUserKey).(uint)

		if ok {
			user, err := users.FindByID(c.Request.Context(), userID)
			switch {
			case err == nil:
				c.Set(CheckUserKey, user)
			case errors.Is(err, services.ErrUserNotFound):
				// 会话指向的用户已不存在
				session.Delete(SessionUserKey)
				_ = session.Save()
			default:
				// 查询失败时保留会话，本次请求按未登录处理
				log.Warn("load session user failed", zap.Uint("user_id", userID), zap.Error(err))
			}
		}
		c.Next()
	}
}

// CurrentUser 取出 LoadUser 放入的用户
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(CheckUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
