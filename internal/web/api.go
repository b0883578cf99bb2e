package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/phyten/jscomments/internal/detect"
	"github.com/phyten/jscomments/internal/engine"
	"github.com/phyten/jscomments/internal/engine/opts"
	"github.com/phyten/jscomments/internal/progress"
	"github.com/phyten/jscomments/internal/scan"
)

const maxSourceBytes = 8 << 20

// Server serves the UI and the JSON API. Defaults seeds every repository
// scan; query parameters override it per request.
type Server struct {
	Defaults engine.Options
	Logger   *slog.Logger
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Handler returns a mux with the UI and the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	Register(mux)
	mux.HandleFunc("GET /api/scan", s.scanHandler)
	mux.HandleFunc("GET /api/scan/stream", s.scanStreamHandler)
	mux.HandleFunc("POST /api/comments", s.commentsHandler)
	return mux
}

func (s *Server) scanOptions(r *http.Request) (engine.Options, error) {
	o, err := opts.ApplyWebQueryToOptions(s.Defaults, r.URL.Query())
	if err != nil {
		return o, err
	}
	if err := opts.NormalizeAndValidate(&o); err != nil {
		return o, err
	}
	o.Logger = s.logger()
	return o, nil
}

func (s *Server) scanHandler(w http.ResponseWriter, r *http.Request) {
	o, err := s.scanOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := engine.Run(r.Context(), o)
	if err != nil {
		s.logger().Error("scan failed", "repo", o.RepoDir, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// scanStreamHandler sends progress snapshots as server-sent events followed
// by one "result" (or "error") event.
func (s *Server) scanStreamHandler(w http.ResponseWriter, r *http.Request) {
	o, err := s.scanOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	var mu sync.Mutex
	send := func(event string, payload any) {
		data, err := json.Marshal(payload)
		if err != nil {
			s.logger().Error("encode event", "event", event, "err", err)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
	}
	o.ProgressObserver = progress.ObserverFunc(func(snap progress.Snapshot) { send("progress", snap) })

	res, err := engine.Run(r.Context(), o)
	if err != nil {
		if r.Context().Err() == nil {
			s.logger().Error("scan failed", "repo", o.RepoDir, "err", err)
		}
		send("error", map[string]string{"message": err.Error()})
		return
	}
	send("result", res)
}

type commentsRequest struct {
	Source           string `json:"source"`
	Language         string `json:"language"`
	PreviousTokenEnd int    `json:"previous_token_end"`
	NextTokenStart   *int   `json:"next_token_start"`
	CommentTypes     string `json:"comment_types"`
	TemplateText     bool   `json:"template_text"`
	WithText         bool   `json:"with_text"`
}

type commentJSON struct {
	scan.Comment
	Text string `json:"text,omitempty"`
}

type commentsResponse struct {
	Language string        `json:"language"`
	Comments []commentJSON `json:"comments"`
}

// commentsHandler scans one in-memory source between two token offsets.
func (s *Server) commentsHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceBytes)
	var req commentsRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "source too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	lang := req.Language
	if lang == "" {
		lang = "javascript"
	}
	info := detect.ForLanguage(lang)
	if !info.Known() {
		http.Error(w, "unknown language: "+req.Language, http.StatusBadRequest)
		return
	}
	types, err := scan.ParseCommentTypes(req.CommentTypes)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	next := len(req.Source)
	if req.NextTokenStart != nil {
		next = *req.NextTokenStart
	}
	if req.PreviousTokenEnd < 0 || req.PreviousTokenEnd > next || next > len(req.Source) {
		http.Error(w, "token offsets must satisfy 0 <= previous_token_end <= next_token_start <= len(source)", http.StatusBadRequest)
		return
	}

	found := scan.Comments(req.Source, req.PreviousTokenEnd, next, scan.Options{
		CommentTypes: types,
		DisableJSX:   !info.JSX,
		TemplateText: req.TemplateText,
	})
	resp := commentsResponse{Language: info.Name, Comments: make([]commentJSON, 0, len(found))}
	for _, c := range found {
		cj := commentJSON{Comment: c}
		if req.WithText {
			cj.Text = c.Text(req.Source)
		}
		resp.Comments = append(resp.Comments, cj)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
