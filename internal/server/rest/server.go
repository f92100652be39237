// Package rest exposes the HTTP/JSON API: auth endpoints, the request gate
// and the owner-scoped books and quotes resources.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/l1t48/Test-backend/internal/common"
	"github.com/l1t48/Test-backend/internal/logging"
	"github.com/l1t48/Test-backend/internal/server/auth"
	"github.com/l1t48/Test-backend/internal/server/models"
	"github.com/l1t48/Test-backend/internal/server/services"
)

// UserService is the auth flow the handlers depend on.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	ExtractIdentity(claims *auth.Claims) (*services.Identity, error)
}

// TokenValidator checks session tokens presented by clients.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

type BookService interface {
	List(ctx context.Context, ownerID int64) ([]*models.Book, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Book, error)
	Create(ctx context.Context, ownerID int64, in services.BookInput) (*models.Book, error)
	Update(ctx context.Context, ownerID, id int64, in services.BookInput) (*models.Book, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type QuoteService interface {
	Recent(ctx context.Context, ownerID int64) ([]*models.Quote, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Quote, error)
	Create(ctx context.Context, ownerID int64, in services.QuoteInput) (*models.Quote, error)
	Update(ctx context.Context, ownerID, id int64, in services.QuoteInput) (*models.Quote, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// Options holds transport settings for Server.
type Options struct {
	Address         string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Server is the HTTP API server.
type Server struct {
	opts    Options
	logger  logging.Logger
	users   UserService
	tokens  TokenValidator
	books   BookService
	quotes  QuoteService
	cookie  *auth.SessionCookie
	handler *gin.Engine
}

// NewServer builds the gin engine with middleware and routes. gin's mode
// is process-wide and must be set by the caller beforehand.
func NewServer(opts Options, l logging.Logger, us UserService, tv TokenValidator, bs BookService, qs QuoteService, cookie *auth.SessionCookie) *Server {
	s := &Server{
		opts:   opts,
		logger: l.With("module", "http_server"),
		users:  us,
		tokens: tv,
		books:  bs,
		quotes: qs,
		cookie: cookie,
	}
	registerValidatorTagNames()
	s.handler = s.routes()
	return s
}

// Handler returns the root http.Handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(s.requestID(), s.accessLog(), s.recovery())

	if len(s.opts.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = s.opts.AllowedOrigins
		corsConfig.AllowCredentials = true
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", common.AuthorizationHeaderName, common.RequestIDHeaderName}
		corsConfig.ExposeHeaders = []string{"Location", common.RequestIDHeaderName}
		r.Use(cors.New(corsConfig))
	}

	api := r.Group("/api")

	api.GET("/test", s.handleTestGet)
	api.POST("/test", s.handleTestPost)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.handleRegister)
	authGroup.POST("/login", s.handleLogin)
	authGroup.POST("/logout", s.handleLogout)
	authGroup.GET("/user-data", s.requireAuth(), s.handleUserData)

	books := api.Group("/books", s.requireAuth())
	books.GET("", s.handleListBooks)
	books.GET("/:id", s.handleGetBook)
	books.POST("", s.handleCreateBook)
	books.PUT("/:id", s.handleUpdateBook)
	books.DELETE("/:id", s.handleDeleteBook)

	quotes := api.Group("/quotes", s.requireAuth())
	quotes.GET("", s.handleListQuotes)
	quotes.GET("/:id", s.handleGetQuote)
	quotes.POST("", s.handleCreateQuote)
	quotes.PUT("/:id", s.handleUpdateQuote)
	quotes.DELETE("/:id", s.handleDeleteQuote)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully within
// ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.opts.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
