// Package httpapi exposes the account core over HTTP: registration, login,
// and the session-gated profile endpoints consumed by the external UI.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillforge/resumekeeper/internal/logging"
	"github.com/skillforge/resumekeeper/internal/server/auth"
	"github.com/skillforge/resumekeeper/internal/server/services"
	"github.com/skillforge/resumekeeper/internal/timex"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

type Server struct {
	addr          string
	engine        *gin.Engine
	accounts      *services.AccountService
	tokens        *auth.TokenManager
	logger        logging.Logger
	clock         timex.Clock
	secureCookies bool
}

// NewServer wires the routes. A nil clock means wall time. secureCookies
// should be true in production so the session cookie is only sent over TLS.
func NewServer(addr string, accounts *services.AccountService, tokens *auth.TokenManager,
	logger logging.Logger, clock timex.Clock, secureCookies bool) *Server {

	gin.SetMode(gin.ReleaseMode)

	if clock == nil {
		clock = timex.RealClock{}
	}

	s := &Server{
		addr:          addr,
		accounts:      accounts,
		tokens:        tokens,
		logger:        logger,
		clock:         clock,
		secureCookies: secureCookies,
	}

	engine := gin.New()
	// The limiter keys on the client address, so forwarded-for headers must
	// not be honored: a direct client could rotate them to mint a fresh
	// limiter key per request. ClientIP() falls back to the socket address.
	_ = engine.SetTrustedProxies(nil)
	engine.Use(gin.Recovery(), RequestLogger(logger))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/user")
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)

	protected := api.Group("", AuthRequired(tokens, logger))
	protected.POST("/update", s.handleUpdate)
	protected.GET("/profile", s.handleProfile)

	s.engine = engine
	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
