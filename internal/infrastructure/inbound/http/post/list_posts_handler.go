package post_http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"kaizen-board/internal/custom_errors"
	model "kaizen-board/internal/domain/models"
	ports "kaizen-board/internal/domain/ports/output"
)

type PostLister interface {
	ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.Post, error)
}

type BoardHandler struct {
	postService PostLister
	order       model.ListOrder
	dateLayout  string
	log         ports.Logger
}

func NewBoardHandler(postService PostLister, order model.ListOrder, dateLayout string, log ports.Logger) *BoardHandler {
	if order == "" {
		order = model.OrderByLikes
	}
	return &BoardHandler{
		postService: postService,
		order:       order,
		dateLayout:  dateLayout,
		log:         log,
	}
}

type listPostsResponse struct {
	Posts []*model.Post `json:"posts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ShowBoard renders the board. A failed read renders as an empty board.
func (h *BoardHandler) ShowBoard(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context(), &model.PostFilters{Order: h.order})
	if err != nil {
		h.log.Error("Failed to load board, rendering empty list", slog.String("error", err.Error()))
		posts = nil
	}

	c.HTML(http.StatusOK, boardTemplate, NewBoardView(posts, h.order, h.dateLayout))
}

func (h *BoardHandler) ListPosts(c *gin.Context) {
	order := h.order
	if raw := c.Query("order"); raw != "" {
		parsed, err := model.ParseListOrder(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid order"})
			return
		}
		order = parsed
	}

	h.respondWithBoard(c, order)
}

// respondWithBoard re-reads the whole board and writes it as JSON.
func (h *BoardHandler) respondWithBoard(c *gin.Context, order model.ListOrder) {
	posts, err := h.postService.ListPosts(c.Request.Context(), &model.PostFilters{Order: order})
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrInvalidOrder):
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid order"})
		default:
			h.log.Error("Failed to list posts", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list posts"})
		}
		return
	}
	if posts == nil {
		posts = []*model.Post{}
	}

	c.JSON(http.StatusOK, listPostsResponse{Posts: posts})
}

func (h *BoardHandler) refresh(c *gin.Context) {
	h.respondWithBoard(c, h.order)
}

func redirectToBoard(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// isSilent reports whether err is one the board swallows without user feedback.
func isSilent(err error) bool {
	return errors.Is(err, custom_errors.ErrPostValidation) ||
		errors.Is(err, custom_errors.ErrPostNotFound) ||
		errors.Is(err, custom_errors.ErrPostResolved) ||
		errors.Is(err, custom_errors.ErrLikesLimit)
}
