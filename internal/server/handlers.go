package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/contentstack/pkg/buildinfo"
	"github.com/matzehuels/contentstack/pkg/errors"
	"github.com/matzehuels/contentstack/pkg/io"
	"github.com/matzehuels/contentstack/pkg/layout"
	"github.com/matzehuels/contentstack/pkg/pipeline"
	"github.com/matzehuels/contentstack/pkg/snapshot"
	"github.com/matzehuels/contentstack/pkg/state"
)

// =============================================================================
// Response Types
// =============================================================================

type healthResponse struct {
	Status       string `json:"status"`
	Ready        bool   `json:"ready"`
	Version      string `json:"version"`
	StoreVersion uint64 `json:"store_version"`
}

type storeResponse struct {
	Version uint64 `json:"version"`
	Ready   bool   `json:"ready"`
}

type eventsResponse struct {
	Received int    `json:"received"`
	Applied  int    `json:"applied"`
	Dropped  int    `json:"dropped"`
	Version  uint64 `json:"version"`
	Ready    bool   `json:"ready"`
}

type resolveResponse struct {
	StateHash string            `json:"state_hash"`
	Cached    bool              `json:"cached"`
	Stats     layout.Stats      `json:"stats"`
	Tree      layout.RenderTree `json:"tree"`
}

type errorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// =============================================================================
// Engine Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st, version := s.store.SnapshotVersion()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		Ready:        state.IsReady(st),
		Version:      buildinfo.Version,
		StoreVersion: version,
	})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	st, version := s.store.SnapshotVersion()
	w.Header().Set("X-Store-Version", strconv.FormatUint(version, 10))
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	st, err := io.ReadState(s.body(w, r), io.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.store.Replace(st)
	s.logger.Info("state replaced", "ready", state.IsReady(st))
	writeJSON(w, http.StatusOK, s.storeStatus())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := io.ReadEvents(s.body(w, r), io.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	applied := s.store.DispatchAll(r.Context(), events)
	status := s.storeStatus()
	writeJSON(w, http.StatusOK, eventsResponse{
		Received: len(events),
		Applied:  applied,
		Dropped:  len(events) - applied,
		Version:  status.Version,
		Ready:    status.Ready,
	})
}

// handleTree resolves the live state and returns it in the requested format.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format:   q.Get("format"),
		Detailed: q.Get("detailed") == "true",
		Refresh:  q.Get("refresh") == "true",
	}

	st, version := s.store.SnapshotVersion()
	result, err := s.runner.Execute(r.Context(), st, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentType(opts.Format))
	h.Set("X-State-Hash", result.StateHash)
	h.Set("X-Store-Version", strconv.FormatUint(version, 10))
	h.Set("X-Placeholders", strconv.Itoa(result.Stats.Tree.Placeholders))
	h.Set("X-Cache", cacheStatus(result.CacheInfo.ResolveHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifact)
}

// handleResolve resolves a posted state without touching the live store.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	st, err := io.ReadState(s.body(w, r), io.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), st, pipeline.Options{
		Format:  pipeline.FormatJSON,
		Refresh: r.URL.Query().Get("refresh") == "true",
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resolveResponse{
		StateHash: result.StateHash,
		Cached:    result.CacheInfo.ResolveHit,
		Stats:     result.Stats.Tree,
		Tree:      result.Tree,
	})
}

// =============================================================================
// Snapshot Handlers
// =============================================================================

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	list, err := s.snapshots.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []snapshot.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(s.body(w, r)).Decode(&req); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode snapshot request"))
			return
		}
	}

	snap := snapshot.New(req.Name, s.store.Snapshot())
	if err := s.snapshots.Save(r.Context(), snap); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("snapshot saved", "id", snap.ID, "name", snap.Name)
	w.Header().Set("Location", "/v1/snapshots/"+snap.ID)
	writeJSON(w, http.StatusCreated, snap.Summary())
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshots.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.snapshots.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshots.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.store.Replace(snap.State)
	s.logger.Info("snapshot restored", "id", snap.ID)
	writeJSON(w, http.StatusOK, s.storeStatus())
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) storeStatus() storeResponse {
	st, version := s.store.SnapshotVersion()
	return storeResponse{Version: version, Ready: state.IsReady(st)}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", requestIDFrom(r.Context()))
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      errors.GetCode(err),
		RequestID: requestIDFrom(r.Context()),
	})
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	}
	return "application/json"
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
