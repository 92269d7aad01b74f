package server

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Controller registers its routes on a router group.
type Controller interface {
	Register(group *gin.RouterGroup)
}

// Server wraps a gin engine with CORS configuration and controller
// registration.
type Server struct {
	engine     *gin.Engine
	corsConfig *cors.Config
}

func New(logger zerolog.Logger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), RequestLogger(logger))
	return &Server{
		engine: engine,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) WithCORS(config *cors.Config) *Server {
	s.corsConfig = config
	s.engine.Use(cors.New(*config))
	return s
}

func (s *Server) DefaultCORS() *Server {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.MaxAge = 12 * time.Hour
	return s.WithCORS(&config)
}

func (s *Server) CustomCORS(allowOrigins []string, allowMethods []string, allowHeaders []string, maxAge time.Duration) *Server {
	config := cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: allowMethods,
		AllowHeaders: allowHeaders,
		MaxAge:       maxAge,
	}
	return s.WithCORS(&config)
}

// LoadTemplates parses the HTML templates used by the rendered front end.
func (s *Server) LoadTemplates(pattern string) *Server {
	s.engine.LoadHTMLGlob(pattern)
	return s
}

// ServeStatic mounts a static asset directory.
func (s *Server) ServeStatic(relativePath, root string) *Server {
	s.engine.Static(relativePath, root)
	return s
}

func (s *Server) RegisterController(path string, controller Controller) {
	controller.Register(s.engine.Group(path))
}

func (s *Server) Start(port int) error {
	return s.engine.Run(fmt.Sprintf(":%d", port))
}
