package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
	"github.com/biabrauna/econsciente-api/internal/services"
)

// PostHandler lida com publicações, curtidas e comentários
type PostHandler struct {
	postService    *services.PostService
	commentService *services.CommentService
}

// NewPostHandler cria um novo PostHandler
func NewPostHandler(postService *services.PostService, commentService *services.CommentService) *PostHandler {
	return &PostHandler{
		postService:    postService,
		commentService: commentService,
	}
}

// Create publica uma nova foto
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.WriteBindError(c, err)
		return
	}

	post, err := h.postService.Create(c.Request.Context(), user.ID, req.URL)
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostResponse(post))
}

// List retorna o feed, opcionalmente filtrado por autor
func (h *PostHandler) List(c *gin.Context) {
	var query dto.ListPostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.WriteBindError(c, err)
		return
	}

	var (
		posts []*entities.Post
		err   error
	)
	if query.UserID != "" {
		posts, err = h.postService.ListByUser(c.Request.Context(), query.UserID)
	} else {
		page := repositories.Pagination{Page: query.Page, PageSize: query.Limit}.Normalize()
		posts, err = h.postService.List(c.Request.Context(), page)
	}
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponses(posts))
}

// Get retorna um post
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// Like curte o post
func (h *PostHandler) Like(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.postService.Like(ctx, c.Param("id"), user.ID); err != nil {
		dto.WriteError(c, err)
		return
	}

	post, err := h.postService.Get(ctx, c.Param("id"))
	if err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// Unlike remove a curtida
func (h *PostHandler) Unlike(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.postService.Unlike(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Message(c, "message.unliked"))
}

// ListComments lista os comentários do post, mais recentes primeiro
func (h *PostHandler) ListComments(c *gin.Context) {
	comments, err := h.commentService.ListByPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentResponses(comments))
}

// CountComments conta os comentários do post
func (h *PostHandler) CountComments(c *gin.Context) {
	count, err := h.commentService.Count(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// CreateComment comenta no post
func (h *PostHandler) CreateComment(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.WriteBindError(c, err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), c.Param("id"), user.ID, req.Texto)
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// RemoveComment apaga um comentário do próprio autor
func (h *PostHandler) RemoveComment(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.commentService.Remove(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Message(c, "message.comment_removed"))
}
