package post_http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	model "kaizen-board/internal/domain/models"
	ports "kaizen-board/internal/domain/ports/output"
)

type PostResolver interface {
	MarkAsDone(ctx context.Context, id int64) (*model.Post, error)
}

type MarkDoneHandler struct {
	postService PostResolver
	board       *BoardHandler
	validate    *validator.Validate
	log         ports.Logger
}

func NewMarkDoneHandler(postService PostResolver, board *BoardHandler, validate *validator.Validate, log ports.Logger) *MarkDoneHandler {
	return &MarkDoneHandler{
		postService: postService,
		board:       board,
		validate:    validate,
		log:         log,
	}
}

func (h *MarkDoneHandler) resolve(c *gin.Context, rawID string) bool {
	id, ok := parsePostID(h.validate, rawID)
	if !ok {
		h.log.Debug("MarkAsDone invalid id, ignoring", slog.String("id", rawID))
		return true
	}

	if _, err := h.postService.MarkAsDone(c.Request.Context(), id); err != nil {
		if isSilent(err) {
			h.log.Debug("MarkAsDone ignored", slog.Int64("post_id", id), slog.String("error", err.Error()))
			return true
		}
		h.log.Error("Failed to resolve post", slog.Int64("post_id", id), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (h *MarkDoneHandler) MarkDoneForm(c *gin.Context) {
	h.resolve(c, c.PostForm("id"))
	redirectToBoard(c)
}

func (h *MarkDoneHandler) MarkDoneJSON(c *gin.Context) {
	if !h.resolve(c, c.Param("id")) {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to resolve post"})
		return
	}
	h.board.refresh(c)
}
