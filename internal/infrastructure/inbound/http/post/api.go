package post_http

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	model "kaizen-board/internal/domain/models"
	post_service "kaizen-board/internal/domain/ports/input/post"
	ports "kaizen-board/internal/domain/ports/output"
)

var validate = validator.New()

type PostHTTPService struct {
	boardHandler      *BoardHandler
	createPostHandler *CreatePostHandler
	addLikeHandler    *AddLikeHandler
	markDoneHandler   *MarkDoneHandler
}

func NewPostHTTPService(postService post_service.Service, order model.ListOrder, dateLayout string, log ports.Logger) *PostHTTPService {
	board := NewBoardHandler(postService, order, dateLayout, log)
	return &PostHTTPService{
		boardHandler:      board,
		createPostHandler: NewCreatePostHandler(postService, board, validate, log),
		addLikeHandler:    NewAddLikeHandler(postService, board, validate, log),
		markDoneHandler:   NewMarkDoneHandler(postService, board, validate, log),
	}
}

func (s *PostHTTPService) RegisterRoutes(r gin.IRouter) {
	r.GET("/", s.boardHandler.ShowBoard)
	r.POST("/posts", s.createPostHandler.CreatePostForm)
	r.POST("/posts/like", s.addLikeHandler.AddLikeForm)
	r.POST("/posts/resolve", s.markDoneHandler.MarkDoneForm)

	api := r.Group("/api/posts")
	api.GET("", s.boardHandler.ListPosts)
	api.POST("", s.createPostHandler.CreatePostJSON)
	api.POST("/:id/like", s.addLikeHandler.AddLikeJSON)
	api.POST("/:id/resolve", s.markDoneHandler.MarkDoneJSON)
}
