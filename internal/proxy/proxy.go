// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package proxy

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/jeranaias/polichat/internal/api"
	"github.com/jeranaias/polichat/internal/config"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// MaxRequestBodySize caps inbound request bodies.
	MaxRequestBodySize = 1 * 1024 * 1024 // 1MB

	// forwardTimeout bounds a single backend round trip.
	forwardTimeout = 120 * time.Second
)

// relayFailureMessage is the uniform message for transport failures; the
// underlying error travels in the details field.
const relayFailureMessage = "Failed to process request"

// sharedForwardClient pools connections to the backend origin.
var sharedForwardClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: forwardTimeout,
}

// =============================================================================
// SERVER
// =============================================================================

// Server is the passthrough proxy.
type Server struct {
	backendURL string
	listenAddr string
	router     *chi.Mux
	server     *http.Server
	client     *http.Client
}

// NewServer builds a proxy for the given configuration.
func NewServer(cfg config.Config) *Server {
	s := &Server{
		backendURL: strings.TrimSuffix(cfg.Backend.URL, "/"),
		listenAddr: cfg.Proxy.ListenAddr,
		router:     chi.NewRouter(),
		client:     sharedForwardClient,
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.Proxy.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))
	s.router.Use(loggingMiddleware(log.Default()))
	s.router.Use(rateLimitMiddleware(rate.NewLimiter(
		rate.Limit(cfg.Proxy.RateLimitRPS), cfg.Proxy.RateLimitBurst)))

	s.routes()
	return s
}

// WithHTTPClient sets a custom forwarding client, mainly for tests.
func (s *Server) WithHTTPClient(hc *http.Client) *Server {
	s.client = hc
	return s
}

// Router returns the handler, exposed for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Get(api.PathListChats, s.forward)
	s.router.Get(api.PathGetChat+"{id}", s.forward)
	s.router.Post(api.PathSaveChat, s.forward)
	s.router.Post(api.PathAskQuestion, s.forward)
	s.router.Post(api.PathCrucialTerms, s.forward)
	s.router.Get(api.PathSearchPolicy, s.forward)
}

// =============================================================================
// HANDLERS
// =============================================================================

// handleHealth answers locally; everything else is relayed.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// forward relays the request verbatim to the backend origin.
func (s *Server) forward(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	target := s.backendURL + r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		writeTransportFailure(w, err)
		return
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("RELAY_ERROR | path=%s error=%v", r.URL.Path, err)
		writeTransportFailure(w, err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, api.MaxResponseSize))
	if err != nil {
		log.Printf("RELAY_ERROR | path=%s error=%v", r.URL.Path, err)
		writeTransportFailure(w, err)
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("RELAY_UPSTREAM | path=%s status=%d", r.URL.Path, resp.StatusCode)
		writeJSON(w, resp.StatusCode, map[string]string{
			"message": upstreamMessage(body),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	w.Write(body)
}

// =============================================================================
// ENVELOPES
// =============================================================================

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeTransportFailure writes the 500 envelope for failures reaching the
// backend at all.
func writeTransportFailure(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"message": relayFailureMessage,
		"details": err.Error(),
	})
}

// upstreamMessage extracts a human-readable message from a backend error
// body. The backend sends {"message": ...} or {"detail": ...}; anything
// unparseable falls back to the raw body.
func upstreamMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Detail != "" {
			return envelope.Detail
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		msg = "Failed to fetch data"
	}
	return msg
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Start runs the proxy until Shutdown or listener failure.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: forwardTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("PROXY_START | addr=%s backend=%s", s.listenAddr, s.backendURL)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the proxy.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	log.Printf("PROXY_SHUTDOWN | starting graceful shutdown")
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.listenAddr
}
