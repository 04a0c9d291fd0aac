// Package engine wires the watch-event intake to the resolver and the
// presence state machine.
package engine

import (
	"context"
	"errors"

	"stremcord/internal/domain"

	"go.uber.org/zap"
)

// Engine consumes watch events and drives presence transitions.
// Events are taken in arrival order; because each one suspends on network
// I/O there is no compensation for slow lookups, and the last completed
// resolution wins the displayed status.
type Engine struct {
	logger   *zap.Logger
	intake   domain.Intake
	resolver domain.Resolver
	presence domain.Presence

	cancel context.CancelFunc
	done   chan struct{}
}

// NewEngine creates the orchestration engine
func NewEngine(
	logger *zap.Logger,
	intake domain.Intake,
	res domain.Resolver,
	pres domain.Presence,
) *Engine {
	return &Engine{
		logger:   logger,
		intake:   intake,
		resolver: res,
		presence: pres,
	}
}

// Start pushes the initial idle status and launches the event loop.
// It returns immediately (non-blocking).
func (e *Engine) Start(ctx context.Context) error {
	e.logger.Info("Engine starting...")

	loopCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})

	// Enter Idle before the first event arrives
	e.presence.OnSilence()

	go e.runLoop(loopCtx)
	return nil
}

// runLoop is the main event processing loop
func (e *Engine) runLoop(ctx context.Context) {
	defer close(e.done)

	events := e.intake.Events()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Engine loop stopped")
			return

		case ref, ok := <-events:
			if !ok {
				e.logger.Info("Intake events channel closed")
				return
			}
			e.handleEvent(ctx, ref)
		}
	}
}

// handleEvent resolves one watch event and applies the outcome
func (e *Engine) handleEvent(ctx context.Context, ref domain.ContentRef) {
	e.logger.Debug("Resolving watch event",
		zap.String("family", string(ref.Family)),
		zap.String("baseId", ref.BaseID))

	meta, err := e.resolver.Resolve(ctx, ref)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			e.logger.Warn("Resolution error", zap.String("baseId", ref.BaseID), zap.Error(err))
		}
		e.presence.OnResolutionFailed()
		return
	}

	e.presence.OnResolved(meta)
}

// Stop terminates the event loop and waits for it to drain
func (e *Engine) Stop(ctx context.Context) error {
	e.logger.Info("Engine stopping...")

	if e.cancel != nil {
		e.cancel()
	}
	if e.done != nil {
		select {
		case <-e.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
