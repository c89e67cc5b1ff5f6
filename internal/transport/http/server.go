package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	channelService "github.com/reshetovitsme/tg-link-rewriter/internal/modules/channel/service"
	pipelineService "github.com/reshetovitsme/tg-link-rewriter/internal/modules/pipeline/service"
	settingsService "github.com/reshetovitsme/tg-link-rewriter/internal/modules/settings/service"
	"github.com/reshetovitsme/tg-link-rewriter/internal/shared/config"
	sloghttp "github.com/samber/slog-http"
)

// Server exposes the bot's operational surface over HTTP
type Server struct {
	cfg      *config.Config
	channels *channelService.Store
	settings *settingsService.Store
	pipeline *pipelineService.Service
	logger   *slog.Logger
}

// New creates a new HTTP server
func New(cfg *config.Config, channels *channelService.Store, settings *settingsService.Store, pipeline *pipelineService.Service) *Server {
	return &Server{
		cfg:      cfg,
		channels: channels,
		settings: settings,
		pipeline: pipeline,
		logger:   slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Status and health endpoints
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Recent replacement activity as an Atom feed
	mux.HandleFunc("GET /activity.atom", s.handleActivityFeed)

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("HTTP server starting", "addr", addr)

	// Use slog-http middleware with recovery
	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

type statusResponse struct {
	Channels      int    `json:"channels"`
	DetectionText string `json:"detection_text"`
	LinkText      string `json:"link_text"`
	LastUpdated   string `json:"last_updated"`
	Seen          int64  `json:"messages_seen"`
	Matched       int64  `json:"messages_matched"`
	Rewritten     int64  `json:"messages_rewritten"`
	Errors        int64  `json:"errors"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.pipeline.Snapshot()
	settings := s.settings.Get()

	resp := statusResponse{
		Channels:      s.channels.Count(),
		DetectionText: settings.DetectionText,
		LinkText:      settings.LinkText,
		LastUpdated:   settings.LastUpdated,
		Seen:          stats.Seen,
		Matched:       stats.Matched,
		Rewritten:     stats.Rewritten,
		Errors:        stats.Errors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("Error encoding status response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleActivityFeed(w http.ResponseWriter, r *http.Request) {
	baseURL := fmt.Sprintf("%s://%s", getScheme(r), r.Host)
	events := s.pipeline.Events()

	feed := &feeds.Feed{
		Title:       "Link rewrite activity",
		Link:        &feeds.Link{Href: baseURL + "/activity.atom"},
		Description: "Recent messages replaced after link rewriting",
		Updated:     time.Now(),
	}
	if len(events) > 0 {
		feed.Updated = events[0].Time
	}

	for _, ev := range events {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/activity/%d/%d", baseURL, ev.ChatID, ev.NewID),
			Title:       fmt.Sprintf("Rewrote %d link(s) in chat %d", ev.Links, ev.ChatID),
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/activity/%d/%d", baseURL, ev.ChatID, ev.NewID)},
			Description: fmt.Sprintf("Message %d replaced by %d", ev.MessageID, ev.NewID),
			Created:     ev.Time,
		})
	}

	atom, err := feed.ToAtom()
	if err != nil {
		s.logger.Error("Error converting feed to Atom", "error", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/atom+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(atom))
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
