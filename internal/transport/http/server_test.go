package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	channelDomain "github.com/reshetovitsme/tg-link-rewriter/internal/modules/channel/domain"
	channelRepo "github.com/reshetovitsme/tg-link-rewriter/internal/modules/channel/repository"
	channelService "github.com/reshetovitsme/tg-link-rewriter/internal/modules/channel/service"
	pipelineService "github.com/reshetovitsme/tg-link-rewriter/internal/modules/pipeline/service"
	settingsRepo "github.com/reshetovitsme/tg-link-rewriter/internal/modules/settings/repository"
	settingsService "github.com/reshetovitsme/tg-link-rewriter/internal/modules/settings/service"
	"github.com/reshetovitsme/tg-link-rewriter/internal/shared/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	chRepo, err := channelRepo.NewFileStorage(filepath.Join(dir, "channels.txt"))
	if err != nil {
		t.Fatalf("channel repo: %v", err)
	}
	channels, err := channelService.New(chRepo)
	if err != nil {
		t.Fatalf("channel store: %v", err)
	}
	channels.Add(channelDomain.Identifier{Numeric: -100123})

	stRepo, err := settingsRepo.NewFileStorage(filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatalf("settings repo: %v", err)
	}
	settings, err := settingsService.New(stRepo)
	if err != nil {
		t.Fatalf("settings store: %v", err)
	}

	pipeline := pipelineService.New(channels, settings, 1, 8)
	return New(&config.Config{HTTPPort: "0"}, channels, settings, pipeline)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()

	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestHandleStatus(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()

	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Channels != 1 {
		t.Errorf("channels = %d, want 1", resp.Channels)
	}
	if resp.DetectionText == "" {
		t.Error("detection text should carry the default")
	}
}

func TestHandleActivityFeed(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()

	s.handleActivityFeed(rec, httptest.NewRequest(http.MethodGet, "/activity.atom", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "atom+xml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<feed") {
		t.Errorf("body should be an Atom feed, got %q", rec.Body.String())
	}
}
