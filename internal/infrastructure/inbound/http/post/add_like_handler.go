package post_http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	model "kaizen-board/internal/domain/models"
	ports "kaizen-board/internal/domain/ports/output"
)

type PostLiker interface {
	AddLike(ctx context.Context, id int64) (*model.Post, error)
}

type AddLikeHandler struct {
	postService PostLiker
	board       *BoardHandler
	validate    *validator.Validate
	log         ports.Logger
}

func NewAddLikeHandler(postService PostLiker, board *BoardHandler, validate *validator.Validate, log ports.Logger) *AddLikeHandler {
	return &AddLikeHandler{
		postService: postService,
		board:       board,
		validate:    validate,
		log:         log,
	}
}

type PostIDRequestInternal struct {
	PostID int64 `validate:"required,gt=0"`
}

func parsePostID(v *validator.Validate, raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	if err := v.Struct(&PostIDRequestInternal{PostID: id}); err != nil {
		return 0, false
	}
	return id, true
}

func (h *AddLikeHandler) like(c *gin.Context, rawID string) bool {
	id, ok := parsePostID(h.validate, rawID)
	if !ok {
		h.log.Debug("AddLike invalid id, ignoring", slog.String("id", rawID))
		return true
	}

	if _, err := h.postService.AddLike(c.Request.Context(), id); err != nil {
		if isSilent(err) {
			h.log.Debug("AddLike ignored", slog.Int64("post_id", id), slog.String("error", err.Error()))
			return true
		}
		h.log.Error("Failed to like post", slog.Int64("post_id", id), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (h *AddLikeHandler) AddLikeForm(c *gin.Context) {
	h.like(c, c.PostForm("id"))
	redirectToBoard(c)
}

func (h *AddLikeHandler) AddLikeJSON(c *gin.Context) {
	if !h.like(c, c.Param("id")) {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to like post"})
		return
	}
	h.board.refresh(c)
}
