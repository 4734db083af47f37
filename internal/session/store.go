package session

import (
	"net/http"
	"time"

	"perapera/internal/config"

	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"gorm.io/gorm"
)

const (
	CookieName = "perapera_session"
	MaxAge     = 7 * 24 * time.Hour
)

// NewStore 服务端会话存储在数据库 sessions 表中，客户端只持有 HTTP-only cookie
func NewStore(conn *gorm.DB, cfg *config.Config) sessions.Store {
	store := gormsessions.NewStore(conn, cfg.SessionCleanup, []byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store
}
