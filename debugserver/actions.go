package debugserver

import (
	"encoding/json"
	"net/http"

	"github.com/rustyeddy/gwmodule/model"
)

// readingRequest/alarmRequest/firmwareInstallRequest are the POST bodies
// accepted by the write endpoints cmd/gwmodulectl drives: inject a sensor
// reading or alarm, or kick off a firmware install/abort, on a registered
// device without needing the caller's own provider callbacks wired up.

type readingRequest struct {
	Reference string  `json:"reference"`
	Value     float64 `json:"value"`
}

type alarmRequest struct {
	Reference string `json:"reference"`
	Active    bool   `json:"active"`
}

type firmwareInstallRequest struct {
	Path string `json:"path"`
}

func (s *Server) handlePostReading(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	var req readingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.gw.AddSensorReading(key, req.Reference, model.FloatValue(req.Value), nil); err != nil {
		s.log.Error("add sensor reading", "device", key, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handlePostAlarm(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	var req alarmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.gw.AddAlarm(key, req.Reference, req.Active, nil); err != nil {
		s.log.Error("add alarm", "device", key, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handlePostFirmwareInstall(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	var req firmwareInstallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.gw.BeginFirmwareInstall(key, req.Path); err != nil {
		s.log.Error("begin firmware install", "device", key, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handlePostFirmwareAbort(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if err := s.gw.AbortFirmwareInstall(key); err != nil {
		s.log.Error("abort firmware install", "device", key, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if err := s.gw.Publish(key); err != nil {
		s.log.Error("publish", "key", key, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
