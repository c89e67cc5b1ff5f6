package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-telegram/bot/models"
	channelService "github.com/reshetovitsme/tg-link-rewriter/internal/modules/channel/service"
	"github.com/reshetovitsme/tg-link-rewriter/internal/modules/pipeline/domain"
	"github.com/reshetovitsme/tg-link-rewriter/internal/modules/rewrite"
	settingsService "github.com/reshetovitsme/tg-link-rewriter/internal/modules/settings/service"
	"github.com/reshetovitsme/tg-link-rewriter/internal/shared/metrics"
)

// Messenger is the transport surface the pipeline needs for replacing a
// message. Implementations own retry and rate-limit handling; an error
// returned here is final.
type Messenger interface {
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	SendMessage(ctx context.Context, chatID int64, text string, entities []models.MessageEntity) (int, error)
}

// Inbound is a channel post handed to the pipeline.
type Inbound struct {
	ChatID       int64
	ChatUsername string
	MessageID    int
	Text         string
	Entities     []models.MessageEntity
}

// Service runs the interception pipeline: filter by watched channel, detect
// the marker, rewrite links, replace the message. Posts are queued onto a
// bounded channel drained by a fixed worker pool; a full queue drops the
// update with a warning rather than spawning unbounded work.
type Service struct {
	channels *channelService.Store
	settings *settingsService.Store

	mu        sync.RWMutex
	messenger Messenger

	stats  *domain.Stats
	events *domain.EventRing

	queue   chan Inbound
	workers int
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a pipeline with the given worker count and queue capacity.
func New(channels *channelService.Store, settings *settingsService.Store, workers, queueSize int) *Service {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		channels: channels,
		settings: settings,
		stats:    &domain.Stats{},
		events:   domain.NewEventRing(50),
		queue:    make(chan Inbound, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetMessenger wires the transport; the bot is constructed after the
// pipeline, mirroring the DI order.
func (s *Service) SetMessenger(m Messenger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messenger = m
}

func (s *Service) getMessenger() Messenger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.messenger
}

// Start launches the worker pool. Cancelling ctx stops the workers, as does
// calling Stop.
func (s *Service) Start(ctx context.Context) {
	go func() {
		select {
		case <-ctx.Done():
			s.cancel()
		case <-s.ctx.Done():
		}
	}()
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
}

// Stop lets in-flight replacements finish, then returns.
func (s *Service) Stop() {
	s.cancel()
	s.wg.Wait()
}

// Enqueue hands a channel post to the worker pool. Full queue drops the
// update: backpressure caps memory under burst load.
func (s *Service) Enqueue(msg Inbound) {
	select {
	case s.queue <- msg:
	default:
		slog.Warn("Pipeline queue full, dropping update", "chat_id", msg.ChatID, "message_id", msg.MessageID)
	}
}

func (s *Service) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case msg := <-s.queue:
			s.Process(s.ctx, msg)
		}
	}
}

// Process runs one message through the pipeline to a terminal state:
// ignored, replaced, or failed.
func (s *Service) Process(ctx context.Context, msg Inbound) {
	s.stats.Seen.Add(1)
	metrics.MessagesSeen.Inc()

	if !s.channels.Contains(msg.ChatID, msg.ChatUsername) {
		return
	}

	settings := s.settings.Get()
	if msg.Text == "" || !strings.Contains(msg.Text, settings.DetectionText) {
		return
	}
	s.stats.Matched.Add(1)
	metrics.MessagesMatched.Inc()

	// The message rewrites links to point at its own channel.
	result := rewrite.Rewrite(msg.Text, msg.Entities, msg.ChatID, settings.LinkText)
	if !result.Changed {
		// Nothing to rewrite: leave the message alone. This also makes the
		// re-sent copy of a replaced message a no-op on re-detection, so
		// replacement can never loop.
		slog.Debug("Matched message has no links to rewrite", "chat_id", msg.ChatID, "message_id", msg.MessageID)
		return
	}

	messenger := s.getMessenger()
	if messenger == nil {
		slog.Error("Pipeline has no messenger, skipping replacement", "chat_id", msg.ChatID, "message_id", msg.MessageID)
		s.stats.Errors.Add(1)
		metrics.PipelineErrors.Inc()
		return
	}

	// Delete first; if that fails the original stays visible and untouched.
	if err := messenger.DeleteMessage(ctx, msg.ChatID, msg.MessageID); err != nil {
		slog.Error("Failed to delete original message", "chat_id", msg.ChatID, "message_id", msg.MessageID, "error", err)
		s.stats.Errors.Add(1)
		metrics.PipelineErrors.Inc()
		return
	}

	newID, err := messenger.SendMessage(ctx, msg.ChatID, result.Text, result.Entities)
	if err != nil {
		// The original is already gone: this is content loss, not a retryable
		// situation at this layer.
		slog.Error("Original deleted but replacement send failed, message lost",
			"chat_id", msg.ChatID, "message_id", msg.MessageID, "error", err)
		s.stats.Errors.Add(1)
		metrics.PipelineErrors.Inc()
		return
	}

	s.stats.Rewritten.Add(1)
	metrics.MessagesRewritten.Inc()
	metrics.LinksRewritten.Add(float64(result.Links))
	s.events.Add(domain.Event{
		ChatID:    msg.ChatID,
		MessageID: msg.MessageID,
		NewID:     newID,
		Links:     result.Links,
		Time:      time.Now(),
	})
	slog.Info("Replaced message with rewritten links",
		"chat_id", msg.ChatID, "message_id", msg.MessageID, "new_message_id", newID, "links", result.Links)
}

// Snapshot returns current pipeline counters.
func (s *Service) Snapshot() domain.Snapshot {
	return s.stats.Snapshot()
}

// Events returns recent replacement events, newest first.
func (s *Service) Events() []domain.Event {
	return s.events.List()
}
