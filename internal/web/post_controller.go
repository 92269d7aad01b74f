package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/klass-lk/markpost/internal/model"
	"github.com/klass-lk/markpost/internal/service"
)

// PostController serves the rendered front end: a listing page, create and
// edit forms, and form-post mutation routes that redirect back to the
// listing on success.
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
	group.GET("/", c.Index)
	group.GET("/new", c.New)
	group.POST("/new", c.Create)
	group.GET("/edit/:id", c.Edit)
	group.POST("/edit/:id", c.Update)
	group.POST("/delete/:id", c.Delete)
}

func (c *PostController) Index(ctx *gin.Context) {
	posts, err := c.postService.ListPosts(ctx.Request.Context())
	if err != nil {
		c.renderError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "index.html", gin.H{"Posts": posts})
}

func (c *PostController) New(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "modify.html", gin.H{
		"Heading": "New Post",
		"Submit":  "Create",
	})
}

func (c *PostController) Edit(ctx *gin.Context) {
	post, err := c.postService.GetPost(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.renderError(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "modify.html", gin.H{
		"Heading": "Edit Post",
		"Submit":  "Update",
		"Post":    post,
	})
}

func (c *PostController) Create(ctx *gin.Context) {
	var req model.CreatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.renderError(ctx, service.ErrMissingFields)
		return
	}

	if _, err := c.postService.CreatePost(ctx.Request.Context(), req); err != nil {
		c.renderError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

func (c *PostController) Update(ctx *gin.Context) {
	var req model.UpdatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.String(http.StatusBadRequest, "Bad Request")
		return
	}

	if _, err := c.postService.UpdatePost(ctx.Request.Context(), ctx.Param("id"), req); err != nil {
		c.renderError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

func (c *PostController) Delete(ctx *gin.Context) {
	var req model.DeletePostRequest
	_ = ctx.ShouldBind(&req)

	if _, err := c.postService.DeletePost(ctx.Request.Context(), ctx.Param("id"), req.Password); err != nil {
		c.renderError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

func (c *PostController) renderError(ctx *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		status := http.StatusBadRequest
		switch svcErr {
		case service.ErrNotFound:
			status = http.StatusNotFound
		case service.ErrForbidden:
			status = http.StatusForbidden
		}
		ctx.String(status, svcErr.Message)
		return
	}

	c.logger.Error().Err(err).Str("path", ctx.FullPath()).Msg("store operation failed")
	ctx.String(http.StatusInternalServerError, "Server Error")
}
