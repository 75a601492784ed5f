package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flatbank/flatbank/internal/domain/port/core"
	"github.com/flatbank/flatbank/internal/domain/usecase/auth"
	"github.com/flatbank/flatbank/internal/infrastructure/config"
)

// Server owns the listener and the per-connection goroutines.
type Server struct {
	cfg      config.ServerConfig
	router   *Router
	auth     *auth.Service
	logger   core.Logger
	listener net.Listener
	wg       sync.WaitGroup
}

// NewServer creates a TCP server dispatching into the router.
func NewServer(cfg config.ServerConfig, router *Router, authSvc *auth.Service, logger core.Logger) *Server {
	return &Server{
		cfg:    cfg,
		router: router,
		auth:   authSvc,
		logger: logger,
	}
}

// Addr returns the listener address once Run has bound it.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run binds the listener and serves until ctx is canceled, then waits up to
// the shutdown timeout for in-flight connections to finish.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.listener = ln

	s.logger.Info("server listening", map[string]any{
		"addr": ln.Addr().String(),
	})

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			s.logger.Error("accept failed", map[string]any{"error": err.Error()})
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, conn)
		}()
	}

	return s.waitForConnections()
}

func (s *Server) waitForConnections() error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("server stopped", nil)
		return nil
	case <-time.After(s.cfg.ShutdownTimeout):
		return fmt.Errorf("shutdown timed out after %s with connections still open", s.cfg.ShutdownTimeout)
	}
}

// serveConn runs the request loop for one connection. The session slot is
// released on every exit path, so an abnormal disconnect frees the login.
func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	connID := uuid.NewString()
	sess := &Session{}

	s.logger.Info("connection opened", map[string]any{
		"conn_id": connID,
		"remote":  conn.RemoteAddr().String(),
	})

	defer func() {
		if sess.LoggedIn() {
			s.auth.Logout(sess.User.ID)
		}
		conn.Close()
		s.logger.Info("connection closed", map[string]any{"conn_id": connID})
	}()

	for {
		if ctx.Err() != nil {
			return
		}
		req, err := ReadRequest(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				s.logger.Warn("request read failed", map[string]any{
					"conn_id": connID,
					"error":   err.Error(),
				})
			}
			return
		}

		op := req.OpString()
		status, message := s.router.Handle(ctx, sess, op, req.PayloadString())

		s.logger.Debug("request handled", map[string]any{
			"conn_id": connID,
			"op":      op,
			"status":  status,
		})

		if err := WriteResponse(conn, status, message); err != nil {
			s.logger.Warn("response write failed", map[string]any{
				"conn_id": connID,
				"error":   err.Error(),
			})
			return
		}
	}
}
