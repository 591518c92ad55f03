// Package api exposes the contract over HTTP: the host surface that
// authenticates callers, builds the per-call environment, and dispatches
// init/handle/query messages.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/remindkeeper/internal/contract"
	"github.com/dmitrijs2005/remindkeeper/internal/logging"
)

type Server struct {
	address       string
	contract      *contract.Contract
	logger        logging.Logger
	secretKey     []byte
	tokenValidity time.Duration

	// mu serializes all contract calls: the contract assumes
	// single-threaded execution, so the host provides it.
	mu     sync.Mutex
	height uint64
}

func NewServer(address string, l logging.Logger, c *contract.Contract, secretKey string, tokenValidity time.Duration) *Server {
	return &Server{
		address:       address,
		logger:        l.With("module", "http_server"),
		contract:      c,
		secretKey:     []byte(secretKey),
		tokenValidity: tokenValidity,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.requestID)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", s.handlePing)
		r.Post("/token", s.handleToken)
		r.Post("/init", s.handleInit)
		r.Post("/query", s.handleQuery)
		r.With(s.callerAuth).Post("/handle", s.handleHandle)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.Router()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// nextEnv produces the execution environment for one contract call. Callers
// must hold mu.
func (s *Server) nextEnv(sender contract.Identity) contract.Env {
	s.height++
	return contract.Env{
		BlockHeight: s.height,
		BlockTime:   uint64(time.Now().Unix()),
		Sender:      sender,
	}
}
