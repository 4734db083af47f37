package handlers

import (
	"net/http"

	"perapera/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TagHandler struct {
	tags *services.TagService
	log  *zap.Logger
}

func NewTagHandler(tags *services.TagService, log *zap.Logger) *TagHandler {
	return &TagHandler{tags: tags, log: log}
}

// List 标签目录，按名称排序
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}
