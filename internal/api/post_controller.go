package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/klass-lk/markpost/internal/model"
	"github.com/klass-lk/markpost/internal/service"
)

// PostController serves the JSON surface under /posts.
type PostController struct {
	postService *service.PostService
	logger      zerolog.Logger
}

func NewPostController(postService *service.PostService, logger zerolog.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

func (c *PostController) Register(group *gin.RouterGroup) {
	group.GET("", c.ListPosts)
	group.GET("/:id", c.GetPost)
	group.POST("", c.CreatePost)
	group.PATCH("/:id", c.UpdatePost)
	group.POST("/:id", c.UpdatePost)
	group.DELETE("/:id", c.DeletePost)
	group.POST("/:id/delete", c.DeletePost)
}

func (c *PostController) ListPosts(ctx *gin.Context) {
	posts, err := c.postService.ListPosts(ctx.Request.Context())
	if err != nil {
		SendError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, posts)
}

func (c *PostController) GetPost(ctx *gin.Context) {
	post, err := c.postService.GetPost(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		SendError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, post)
}

func (c *PostController) CreatePost(ctx *gin.Context) {
	var req model.CreatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		SendError(ctx, c.logger, service.ErrMissingFields)
		return
	}

	post, err := c.postService.CreatePost(ctx.Request.Context(), req)
	if err != nil {
		SendError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, post)
}

func (c *PostController) UpdatePost(ctx *gin.Context) {
	var req model.UpdatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		SendError(ctx, c.logger, ErrMalformedRequest)
		return
	}

	post, err := c.postService.UpdatePost(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		SendError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, post)
}

func (c *PostController) DeletePost(ctx *gin.Context) {
	var req model.DeletePostRequest
	// DELETE requests may carry no body at all.
	_ = ctx.ShouldBind(&req)

	post, err := c.postService.DeletePost(ctx.Request.Context(), ctx.Param("id"), req.Password)
	if err != nil {
		SendError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, post)
}
