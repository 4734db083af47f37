package handlers

import (
	"encoding/json"
	"net/http"

	"perapera/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostHandler struct {
	posts    *services.PostService
	comments *services.CommentService
	feed     *services.FeedService
	log      *zap.Logger
}

func NewPostHandler(posts *services.PostService, comments *services.CommentService, feed *services.FeedService, log *zap.Logger) *PostHandler {
	return &PostHandler{
		posts:    posts,
		comments: comments,
		feed:     feed,
		log:      log,
	}
}

type createPostRequest struct {
	Content string          `json:"content"`
	Tags    json.RawMessage `json:"tags"`
}

// tagNames tags 不是数组时忽略，数组里非字符串的元素也忽略
func (r createPostRequest) tagNames() []string {
	var items []any
	if len(r.Tags) == 0 || json.Unmarshal(r.Tags, &items) != nil {
		return nil
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		if name, ok := item.(string); ok {
			names = append(names, name)
		}
	}
	return names
}

type contentRequest struct {
	Content string `json:"content"`
}

// List 首页信息流，最新在前
func (h *PostHandler) List(c *gin.Context) {
	user := currentUser(c)

	posts, err := h.feed.Feed(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, services.ErrContentRequired)
		return
	}

	post, err := h.posts.Create(c.Request.Context(), user.ID, req.Content, req.tagNames())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	// 返回从库里读回的完整视图
	item, err := h.feed.Post(c.Request.Context(), user.ID, post.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update 只有作者可以编辑，其他人看到的是 404
func (h *PostHandler) Update(c *gin.Context) {
	user := currentUser(c)
	id, found := paramID(c, "id", services.ErrPostNotFound)
	if !found {
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, services.ErrContentRequired)
		return
	}

	if _, err := h.posts.Update(c.Request.Context(), id, user.ID, req.Content); err != nil {
		respondError(c, h.log, err)
		return
	}

	item, err := h.feed.Post(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *PostHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	id, found := paramID(c, "id", services.ErrPostNotFound)
	if !found {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), id, user.ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c)
}

func (h *PostHandler) ListComments(c *gin.Context) {
	id, found := paramID(c, "id", services.ErrPostNotFound)
	if !found {
		return
	}

	comments, err := h.comments.List(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	user := currentUser(c)
	id, found := paramID(c, "id", services.ErrPostNotFound)
	if !found {
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, services.ErrContentRequired)
		return
	}

	comment, err := h.comments.Add(c.Request.Context(), id, user.ID, req.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment 只允许删除自己的评论
func (h *PostHandler) DeleteComment(c *gin.Context) {
	user := currentUser(c)
	id, found := paramID(c, "id", services.ErrCommentNotFound)
	if !found {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), id, user.ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c)
}
