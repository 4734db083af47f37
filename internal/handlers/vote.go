package handlers

import (
	"net/http"

	"perapera/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VoteHandler struct {
	votes *services.VoteService
	log   *zap.Logger
}

func NewVoteHandler(votes *services.VoteService, log *zap.Logger) *VoteHandler {
	return &VoteHandler{votes: votes, log: log}
}

type toggleRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// Upvote 点赞，已踩则覆盖
func (h *VoteHandler) Upvote(c *gin.Context) {
	h.set(c, services.Up)
}

// Downvote 点踩，已赞则覆盖
func (h *VoteHandler) Downvote(c *gin.Context) {
	h.set(c, services.Down)
}

func (h *VoteHandler) set(c *gin.Context, dir services.Direction) {
	user := currentUser(c)
	id, found := paramID(c, "id", services.ErrPostNotFound)
	if !found {
		return
	}

	if err := h.votes.Set(c.Request.Context(), id, user.ID, dir); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c)
}

// Clear 取消投票
func (h *VoteHandler) Clear(c *gin.Context) {
	user := currentUser(c)
	id, found := paramID(c, "id", services.ErrPostNotFound)
	if !found {
		return
	}

	if err := h.votes.Clear(c.Request.Context(), id, user.ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c)
}

// Toggle 再次点击当前方向取消投票，返回最新计数
func (h *VoteHandler) Toggle(c *gin.Context) {
	user := currentUser(c)
	id, found := paramID(c, "id", services.ErrPostNotFound)
	if !found {
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, services.ErrInvalidDirection)
		return
	}
	dir, err := services.ParseDirection(req.Direction)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	tally, err := h.votes.Toggle(c.Request.Context(), id, user.ID, dir)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tally)
}
