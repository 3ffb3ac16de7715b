// Package debugserver is a small HTTP+websocket introspection server for a
// running gateway: runtime stats, the device registry snapshot, and a live
// feed of inbound/outbound messages. It is not part of the wire protocol
// the gateway speaks to the broker — it exists purely so an operator or the
// admin CLI can look inside a running process.
package debugserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rustyeddy/gwmodule/gateway"
)

// Server serves the debug HTTP API and the /api/events websocket feed for
// a single Gateway: a *http.Server plus a *http.ServeMux registered a
// handler at a time.
type Server struct {
	*http.Server
	mux *http.ServeMux

	gw  *gateway.Gateway
	log *slog.Logger
}

// New builds a Server bound to addr (e.g. ":8011") for gw. It does not
// start listening until Start is called.
func New(addr string, gw *gateway.Gateway, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	mux := http.NewServeMux()
	s := &Server{
		Server: &http.Server{Addr: addr, Handler: mux},
		mux:    mux,
		gw:     gw,
		log:    log,
	}
	mux.HandleFunc("/ping", s.handlePing)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/devices", s.handleDevices)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("POST /api/devices/{key}/readings", s.handlePostReading)
	mux.HandleFunc("POST /api/devices/{key}/alarms", s.handlePostAlarm)
	mux.HandleFunc("POST /api/devices/{key}/firmware/install", s.handlePostFirmwareInstall)
	mux.HandleFunc("POST /api/devices/{key}/firmware/abort", s.handlePostFirmwareAbort)
	mux.HandleFunc("POST /api/publish", s.handlePublish)
	return s
}

// Handle registers an additional handler on the server's mux, letting a
// caller (e.g. cmd/gwmoduled mounting logging.Service) extend the debug
// API beyond the built-in stats/devices/events routes.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
}

// Start runs the server until done is closed, then shuts it down
// gracefully.
func (s *Server) Start(done <-chan struct{}) {
	s.log.Info("starting debug server", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("debug server stopped", "error", err)
		}
	}()
	<-done
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Shutdown(ctx)
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.log, s.gw.Stats())
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.log, s.gw.Devices())
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error("encode response", "error", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
