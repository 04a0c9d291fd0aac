package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"stremcord/internal/addon"
	"stremcord/internal/config"
	"stremcord/internal/domain"
	"stremcord/internal/engine"
	"stremcord/internal/presence"
	"stremcord/internal/resolver"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// AppOptions is the full dependency graph, exported so tests can validate it
var AppOptions = fx.Options(
	fx.Provide(
		newLogger,

		config.NewAppConfig,
		func(c *config.AppConfig) domain.Config { return c },

		resolver.NewService,
		func(s *resolver.Service) domain.Resolver { return s },
		func(s *resolver.Service) domain.PosterResolver { return s },

		presence.NewDiscordSink,
		func(s *presence.DiscordSink) domain.Sink { return s },

		presence.NewMachine,
		func(m *presence.Machine) domain.Presence { return m },

		addon.NewServer,
		func(s *addon.Server) domain.Intake { return s },

		engine.NewEngine,
	),
	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		AppOptions,
	)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(err)
	}

	// Wait for interrupt signal
	<-ctx.Done()

	if err := app.Stop(context.Background()); err != nil {
		panic(err)
	}
}

// newLogger creates a new zap logger instance
func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// registerHooks ties the sink, addon server and engine into the fx lifecycle
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	cfg domain.Config,
	sink *presence.DiscordSink,
	server *addon.Server,
	eng *engine.Engine,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Stremcord daemon starting")

			// A missing Discord client leaves the sink disconnected;
			// the daemon keeps serving the addon regardless
			_ = sink.Connect(cfg.GetDiscordClientID())

			if err := server.Start(ctx); err != nil {
				return err
			}
			return eng.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")

			if err := eng.Stop(ctx); err != nil {
				logger.Warn("Engine stop failed", zap.Error(err))
			}
			if err := server.Stop(ctx); err != nil {
				logger.Warn("Addon server stop failed", zap.Error(err))
			}
			sink.Close()
			return nil
		},
	})
}
