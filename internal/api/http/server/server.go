// Package server runs the HTTP transport server.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/reflora/server/internal/logger"
	"github.com/reflora/server/internal/model"
)

// HTTPServer serves the API on a listener produced by the security layer.
type HTTPServer struct {
	server  *http.Server
	address string
	logger  *logger.Logger
}

// New creates an HTTPServer for the given address and handler.
func New(address string, h http.Handler, l *logger.Logger) *HTTPServer {
	return &HTTPServer{
		server:  &http.Server{Handler: h},
		address: address,
		logger:  l,
	}
}

// Start blocks serving requests until Stop is called or the listener fails.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	s.logger.Info("http server listening", "address", s.address)

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully, waiting for in-flight requests.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Address returns the address the server listens on.
func (s *HTTPServer) Address() string {
	return s.address
}
