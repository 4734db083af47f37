package handlers

import (
	"net/http"

	"perapera/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	users   *services.UserService
	follows *services.FollowService
	feed    *services.FeedService
	log     *zap.Logger
}

func NewUserHandler(users *services.UserService, follows *services.FollowService, feed *services.FeedService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		users:   users,
		follows: follows,
		feed:    feed,
		log:     log,
	}
}

// Profile 用户主页 /api/users/:username
func (h *UserHandler) Profile(c *gin.Context) {
	viewer := currentUser(c)

	profile, posts, err := h.feed.Profile(c.Request.Context(), viewer.ID, c.Param("username"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile, "posts": posts})
}

func (h *UserHandler) Followers(c *gin.Context) {
	target, err := h.users.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	names, err := h.follows.Followers(c.Request.Context(), target.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *UserHandler) Following(c *gin.Context) {
	target, err := h.users.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	names, err := h.follows.Following(c.Request.Context(), target.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

// Follow 先确认目标存在，再检查是否关注自己
func (h *UserHandler) Follow(c *gin.Context) {
	viewer := currentUser(c)

	target, err := h.users.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.follows.Follow(c.Request.Context(), viewer.ID, target.ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c)
}

// Unfollow 未关注时也返回成功
func (h *UserHandler) Unfollow(c *gin.Context) {
	viewer := currentUser(c)

	target, err := h.users.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.follows.Unfollow(c.Request.Context(), viewer.ID, target.ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c)
}
