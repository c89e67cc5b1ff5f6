package di

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/prometheus/client_golang/prometheus"
	channelRepo "github.com/reshetovitsme/tg-link-rewriter/internal/modules/channel/repository"
	channelService "github.com/reshetovitsme/tg-link-rewriter/internal/modules/channel/service"
	pipelineService "github.com/reshetovitsme/tg-link-rewriter/internal/modules/pipeline/service"
	settingsRepo "github.com/reshetovitsme/tg-link-rewriter/internal/modules/settings/repository"
	settingsService "github.com/reshetovitsme/tg-link-rewriter/internal/modules/settings/service"
	"github.com/reshetovitsme/tg-link-rewriter/internal/shared/config"
	"github.com/reshetovitsme/tg-link-rewriter/internal/shared/metrics"
	httpServer "github.com/reshetovitsme/tg-link-rewriter/internal/transport/http"
	telegramHandler "github.com/reshetovitsme/tg-link-rewriter/internal/transport/telegram"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Channel Repository
	do.Provide(injector, func(i do.Injector) (channelRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := channelRepo.NewFileStorage(cfg.ChannelsFile())
		if err != nil {
			return nil, oops.With("path", cfg.ChannelsFile(), "context", "failed to initialize channel repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Settings Repository
	do.Provide(injector, func(i do.Injector) (settingsRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := settingsRepo.NewFileStorage(cfg.SettingsFile())
		if err != nil {
			return nil, oops.With("path", cfg.SettingsFile(), "context", "failed to initialize settings repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Channel Store
	do.Provide(injector, func(i do.Injector) (*channelService.Store, error) {
		repo := do.MustInvoke[channelRepo.Repository](i)
		store, err := channelService.New(repo)
		if err != nil {
			return nil, oops.With("context", "failed to load channel list").Wrap(err)
		}
		return store, nil
	})

	// Register Settings Store
	do.Provide(injector, func(i do.Injector) (*settingsService.Store, error) {
		repo := do.MustInvoke[settingsRepo.Repository](i)
		store, err := settingsService.New(repo)
		if err != nil {
			return nil, oops.With("context", "failed to load settings").Wrap(err)
		}
		return store, nil
	})

	// Register Pipeline Service
	do.Provide(injector, func(i do.Injector) (*pipelineService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		channels := do.MustInvoke[*channelService.Store](i)
		settings := do.MustInvoke[*settingsService.Store](i)
		return pipelineService.New(channels, settings, cfg.WorkerCount, cfg.QueueSize), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegramHandler.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		channels := do.MustInvoke[*channelService.Store](i)
		settings := do.MustInvoke[*settingsService.Store](i)
		pipeline := do.MustInvoke[*pipelineService.Service](i)
		return telegramHandler.New(cfg, channels, settings, pipeline), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		channels := do.MustInvoke[*channelService.Store](i)
		settings := do.MustInvoke[*settingsService.Store](i)
		pipeline := do.MustInvoke[*pipelineService.Service](i)
		server := httpServer.New(cfg, channels, settings, pipeline)
		server.SetLogger(slog.Default())
		return server, nil
	})

	// Register Bot (needs to be initialized after handlers are ready)
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler := do.MustInvoke[*telegramHandler.Handler](i)

		opts := []bot.Option{
			bot.WithDefaultHandler(handler.HandleUpdate),
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		// Register bot commands
		handler.RegisterCommands(b)

		// Wire the transport adapter into the pipeline
		pipeline := do.MustInvoke[*pipelineService.Service](i)
		pipeline.SetMessenger(telegramHandler.NewBotMessenger(b, cfg.RetryAttempts))

		return b, nil
	})

	metrics.MustRegister(prometheus.DefaultRegisterer)

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx := context.Background()

	// Shutdown bot if it exists
	if b, err := do.Invoke[*bot.Bot](injector); err == nil && b != nil {
		b.Close(ctx)
	}

	// Stop the pipeline workers if they were started
	if pipeline, err := do.Invoke[*pipelineService.Service](injector); err == nil && pipeline != nil {
		pipeline.Stop()
	}

	return nil
}
