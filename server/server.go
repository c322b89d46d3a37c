package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"recipe-server/confs"
	"recipe-server/db"
	"recipe-server/handlers"
	httpHandler "recipe-server/handlers/http"
	"recipe-server/logger"
	"recipe-server/repositories"
	"recipe-server/session"
	"recipe-server/usecases"
	"recipe-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app    *gin.Engine
	db     db.Database
	cfg    *confs.Config
	logger *logger.Logger
	feed   *ws.Manager
}

func NewServer(database db.Database, cfg *confs.Config, log *logger.Logger) *Server {
	app := gin.New()
	app.Use(gin.Recovery(), requestLogger(log))

	s := &Server{
		app:    app,
		db:     database,
		cfg:    cfg,
		logger: log,
		feed:   ws.NewManager(log.Logger),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	// Setup CORS middleware
	s.app.Use(cors.New(corsConfig(s.cfg.CORS.AllowedOrigins)))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserRepository(s.db)
	recipeRepo := repositories.NewRecipeRepository(s.db)

	sessions := session.NewManager(session.Config{
		Secret:     s.cfg.Session.Secret,
		CookieName: s.cfg.Session.CookieName,
		TTL:        s.cfg.Session.TTL,
		Secure:     s.cfg.Session.Secure,
	})

	// Initialize use cases
	authUseCase := usecases.NewAuthUseCase(userRepo, s.logger)
	recipeUseCase := usecases.NewRecipeUseCase(recipeRepo, s.feed, s.logger)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(authUseCase, sessions, s.logger)
	recipeHandler := httpHandler.NewRecipeHandler(recipeUseCase, s.logger)
	feedHandler := handlers.NewFeedHandler(s.feed, s.cfg.CORS.AllowedOrigins, s.logger)

	s.app.POST("/signup", authHandler.Signup)
	s.app.POST("/login", authHandler.Login)

	// Everything below answers 401 before touching any state.
	authed := s.app.Group("", sessions.RequireSession())
	{
		authed.GET("/check_session", authHandler.CheckSession)
		authed.DELETE("/logout", authHandler.Logout)

		recipes := authed.Group("/recipes")
		{
			recipes.GET("", recipeHandler.GetAllRecipes)
			recipes.POST("", recipeHandler.CreateRecipe)
			recipes.GET("/feed", feedHandler.HandleFeed)
		}
	}
}

// corsConfig only lets listed origins send the session cookie. The "*"
// wildcard opens the API to any origin without credentials.
func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}
	config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	return config
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.app
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	s.feed.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
