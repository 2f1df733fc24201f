package post_http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	model "kaizen-board/internal/domain/models"
	ports "kaizen-board/internal/domain/ports/output"
)

type PostCreator interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error)
}

type CreatePostHandler struct {
	postService PostCreator
	board       *BoardHandler
	validate    *validator.Validate
	log         ports.Logger
}

func NewCreatePostHandler(postService PostCreator, board *BoardHandler, validate *validator.Validate, log ports.Logger) *CreatePostHandler {
	return &CreatePostHandler{
		postService: postService,
		board:       board,
		validate:    validate,
		log:         log,
	}
}

type CreatePostRequestInternal struct {
	Title string `validate:"required"`
}

type createPostJSONRequest struct {
	Title string `json:"title"`
}

// create returns false when the request failed for a reason the caller must report.
func (h *CreatePostHandler) create(c *gin.Context, title string) bool {
	req := &CreatePostRequestInternal{Title: strings.TrimSpace(title)}
	if err := h.validate.Struct(req); err != nil {
		h.log.Debug("CreatePost validation failed, ignoring", slog.String("error", err.Error()))
		return true
	}

	_, err := h.postService.CreatePost(c.Request.Context(), &model.CreatePostDTO{Title: req.Title})
	if err != nil {
		if isSilent(err) {
			h.log.Debug("CreatePost ignored", slog.String("error", err.Error()))
			return true
		}
		h.log.Error("Failed to create post", slog.String("error", err.Error()))
		return false
	}
	return true
}

func (h *CreatePostHandler) CreatePostForm(c *gin.Context) {
	h.create(c, c.PostForm("title"))
	redirectToBoard(c)
}

func (h *CreatePostHandler) CreatePostJSON(c *gin.Context) {
	var body createPostJSONRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.log.Debug("CreatePost malformed body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	if !h.create(c, body.Title) {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create post"})
		return
	}
	h.board.refresh(c)
}
