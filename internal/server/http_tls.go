package server

import (
	"crypto/tls"
	"fmt"
	"net/http"
)

// configureTLS sets up TLS configuration based on the mode
func (s *Server) configureTLS(httpServer *http.Server) error {
	addr := httpServer.Addr

	switch s.TLSConfig.Mode {
	case "server":
		return s.configureServerTLS(httpServer, addr)
	case "disabled", "":
		fmt.Printf("Starting server on http://%s\n", addr)
		fmt.Println("TLS mode: Disabled (HTTP only)")
		return nil
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled' or 'server')", s.TLSConfig.Mode)
	}
}

// configureServerTLS sets up server-only TLS
func (s *Server) configureServerTLS(httpServer *http.Server, addr string) error {
	fmt.Printf("Starting server with HTTPS on https://%s\n", addr)

	if s.TLSConfig.CertFile == "" || s.TLSConfig.KeyFile == "" {
		return fmt.Errorf("TLS certificate and key files are required for server TLS mode")
	}

	// Fail fast on unreadable or mismatched cert material
	if _, err := tls.LoadX509KeyPair(s.TLSConfig.CertFile, s.TLSConfig.KeyFile); err != nil {
		return fmt.Errorf("failed to load server cert/key: %w", err)
	}

	httpServer.TLSConfig = &tls.Config{
		MinVersion: s.minTLSVersion(),
	}

	return nil
}

// minTLSVersion maps the configured version string to a tls constant
func (s *Server) minTLSVersion() uint16 {
	switch s.TLSConfig.MinVersion {
	case "1.3":
		return tls.VersionTLS13
	default:
		return tls.VersionTLS12
	}
}
