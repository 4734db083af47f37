package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"perapera/internal/config"
	"perapera/internal/session"
	"perapera/internal/services"
	"perapera/internal/testutil"
	"perapera/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.PasswordCost = bcrypt.MinCost
}

func TestLoadUser(t *testing.T) {
	conn := testutil.NewDB(t)
	users := services.NewUserService(conn)
	user, err := users.Register(context.Background(), "kim", "password123")
	require.NoError(t, err)

	cfg := &config.Config{Env: config.EnvDevelopment, SessionSecret: "test-secret"}
	r := gin.New()
	r.Use(sessions.Sessions(session.CookieName, session.NewStore(conn, cfg)))
	r.Use(LoadUser(users, zap.NewNop()))
	r.POST("/login", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set(SessionUserKey, user.ID)
		if err := s.Save(); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/me", AuthRequired(), func(c *gin.Context) {
		u, _ := CurrentUser(c)
		c.String(http.StatusOK, u.Username)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	me := func() (int, string) {
		t.Helper()
		resp, err := client.Get(srv.URL + "/me")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	resp, err := client.Post(srv.URL+"/login", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	code, name := me()
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "kim", name)

	t.Run("Lookup failure keeps the session", func(t *testing.T) {
		require.NoError(t, conn.Exec("ALTER TABLE users RENAME TO users_offline").Error)
		code, _ := me()
		assert.Equal(t, http.StatusUnauthorized, code)

		require.NoError(t, conn.Exec("ALTER TABLE users_offline RENAME TO users").Error)
		code, name := me()
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "kim", name)
	})

	t.Run("Deleted user clears the session", func(t *testing.T) {
		require.NoError(t, conn.Exec("DELETE FROM users WHERE id = ?", user.ID).Error)
		code, _ := me()
		assert.Equal(t, http.StatusUnauthorized, code)

		// 用户恢复后旧会话也不再生效
		require.NoError(t, conn.Exec(
			"INSERT INTO users (id, username, password, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			user.ID, user.Username, user.Password, user.CreatedAt, user.UpdatedAt,
		).Error)
		code, _ = me()
		assert.Equal(t, http.StatusUnauthorized, code)
	})
}
