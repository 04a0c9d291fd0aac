package presence

import (
	"sync"

	"stremcord/internal/domain"

	rich "github.com/hugolgst/rich-go/client"
	"go.uber.org/zap"
)

// DiscordSink publishes activities to the local Discord client over its IPC
// socket. While disconnected (Discord not running, or the handshake failed)
// every push is a silent no-op.
type DiscordSink struct {
	logger *zap.Logger

	mu        sync.Mutex
	connected bool
}

// NewDiscordSink creates a sink in the disconnected state
func NewDiscordSink(logger *zap.Logger) *DiscordSink {
	return &DiscordSink{logger: logger}
}

// Connect performs the IPC handshake with the Discord client.
// A failure leaves the sink disconnected; the daemon keeps running.
func (s *DiscordSink) Connect(clientID string) error {
	if clientID == "" {
		s.logger.Warn("No Discord client id configured, presence updates disabled")
		return nil
	}

	if err := rich.Login(clientID); err != nil {
		s.logger.Warn("Could not connect to Discord, presence updates disabled",
			zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()

	s.logger.Info("Connected to Discord")
	return nil
}

// Close logs out of the IPC session
func (s *DiscordSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		rich.Logout()
		s.connected = false
		s.logger.Info("Disconnected from Discord")
	}
}

// SetActivity publishes an activity, or drops it while disconnected
func (s *DiscordSink) SetActivity(a domain.Activity) error {
	s.mu.Lock()
	connected := s.connected
	s.mu.Unlock()

	if !connected {
		s.logger.Debug("Presence sink unavailable, dropping activity",
			zap.String("details", a.Details))
		return nil
	}

	start := a.Start
	return rich.SetActivity(rich.Activity{
		Details:    a.Details,
		State:      a.State,
		LargeImage: a.LargeImage,
		LargeText:  a.LargeText,
		SmallImage: a.SmallImage,
		Timestamps: &rich.Timestamps{Start: &start},
	})
}
