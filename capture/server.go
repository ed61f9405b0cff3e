package capture

import (
	"context"
	"fmt"
	"net"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Server serves a sketch directory over loopback for the duration of a
// capture session. Sketches loaded from file:// URLs cannot fetch their
// own assets, so the browser is pointed at this server instead.
type Server struct {
	srv *http.Server
	url string
}

// StartServer begins serving dir on an ephemeral loopback port.
func StartServer(dir string) (*Server, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("capture server: %w", err)
	}

	srv := &http.Server{Handler: http.FileServer(http.Dir(dir))}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("capture server stopped")
		}
	}()

	url := fmt.Sprintf("http://%s", ln.Addr().String())
	log.WithFields(log.Fields{"dir": dir, "url": url}).
		Debug("capture server started")

	return &Server{srv: srv, url: url}, nil
}

// URL returns the server's base URL.
func (s *Server) URL() string { return s.url }

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
