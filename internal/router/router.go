package router

import (
	"time"

	"perapera/internal/config"
	"perapera/internal/handlers"
	"perapera/internal/middleware"
	"perapera/internal/services"
	"perapera/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New 组装服务、会话和全部 API 路由
func New(cfg *config.Config, conn *gorm.DB, log *zap.Logger) *gin.Engine {
	r := gin.New()

	// Services
	users := services.NewUserService(conn)
	follows := services.NewFollowService(conn)
	posts := services.NewPostService(conn)
	votes := services.NewVoteService(conn)
	comments := services.NewCommentService(conn)
	tags := services.NewTagService(conn)
	feed := services.NewFeedService(conn, follows)

	// Middleware
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(sessions.Sessions(session.CookieName, session.NewStore(conn, cfg)))
	r.Use(middleware.LoadUser(users, log))

	RegisterRoutes(r, &Handlers{
		Auth:   handlers.NewAuthHandler(users, log),
		Post:   handlers.NewPostHandler(posts, comments, feed, log),
		Vote:   handlers.NewVoteHandler(votes, log),
		User:   handlers.NewUserHandler(users, follows, feed, log),
		Tag:    handlers.NewTagHandler(tags, log),
		Health: handlers.NewHealthHandler(conn, log),
	})
	return r
}

type Handlers struct {
	Auth   *handlers.AuthHandler
	Post   *handlers.PostHandler
	Vote   *handlers.VoteHandler
	User   *handlers.UserHandler
	Tag    *handlers.TagHandler
	Health *handlers.HealthHandler
}

func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/healthz", h.Health.Check) // 健康检查

	api := r.Group("/api")

	// 公共路由 (Public Routes)
	api.POST("/auth/register", h.Auth.Register) // 注册并登录
	api.POST("/auth/login", h.Auth.Login)       // 登录
	api.POST("/auth/logout", h.Auth.Logout)     // 退出登录
	api.GET("/auth/me", h.Auth.Me)              // 当前用户，未登录为 null

	// 受保护路由 (Protected Routes)
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.PUT("/auth/password", h.Auth.ChangePassword) // 修改密码
		authorized.GET("/tags", h.Tag.List)                     // 标签目录

		authorized.GET("/posts", h.Post.List)          // 信息流
		authorized.POST("/posts", h.Post.Create)       // 发帖
		authorized.PUT("/posts/:id", h.Post.Update)    // 编辑帖子
		authorized.DELETE("/posts/:id", h.Post.Delete) // 删除帖子

		authorized.POST("/posts/:id/upvote", h.Vote.Upvote)     // 赞
		authorized.POST("/posts/:id/downvote", h.Vote.Downvote) // 踩
		authorized.DELETE("/posts/:id/vote", h.Vote.Clear)      // 取消投票
		authorized.POST("/posts/:id/vote", h.Vote.Toggle)       // 切换投票

		authorized.GET("/posts/:id/comments", h.Post.ListComments)   // 评论列表
		authorized.POST("/posts/:id/comments", h.Post.CreateComment) // 发表评论
		authorized.DELETE("/comments/:id", h.Post.DeleteComment)     // 删除评论

		authorized.GET("/users/:username", h.User.Profile)             // 用户主页
		authorized.GET("/users/:username/followers", h.User.Followers) // 粉丝列表
		authorized.GET("/users/:username/following", h.User.Following) // 关注列表

		authorized.POST("/follow/:username", h.User.Follow)     // 关注
		authorized.POST("/unfollow/:username", h.User.Unfollow) // 取消关注
	}
}
