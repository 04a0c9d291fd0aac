package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is the resolution outcome when no metadata exists for a ref.
// Transport failures collapse into it after being logged; it is a valid
// outcome, not a fatal condition.
var ErrNotFound = errors.New("content not found")

// Resolver turns a content ref into display-ready metadata
// Implementations perform the outbound catalog/video-platform lookups
type Resolver interface {
	// Resolve returns metadata for the ref or ErrNotFound.
	// It never caches and never retries; every call is best-effort.
	Resolve(ctx context.Context, ref ContentRef) (*ResolvedMetadata, error)
}

// PosterResolver answers artwork lookups for bare content ids
type PosterResolver interface {
	// ResolvePoster returns a poster/thumbnail URL for the id or ErrNotFound
	ResolvePoster(ctx context.Context, id string) (string, error)
}

// Sink pushes status updates to the local presence daemon
//
//go:generate mockgen -destination=mocks/sink_mock.go -package=mocks stremcord/internal/domain Sink
type Sink interface {
	// SetActivity publishes an activity. It must be a silent no-op while
	// the daemon is unreachable and must never panic.
	SetActivity(a Activity) error
}

// Presence is the state machine driven by resolution outcomes
type Presence interface {
	// OnResolved transitions to Active and pushes the watching status
	OnResolved(meta *ResolvedMetadata)

	// OnResolutionFailed leaves the current status untouched
	OnResolutionFailed()

	// OnSilence transitions to Idle and pushes the browsing status
	OnSilence()
}

// Intake emits watch events from the plugin framework callback surface
type Intake interface {
	// Events returns a read-only channel of parsed content refs.
	// Producers never block on it; bursts beyond its buffer are dropped.
	Events() <-chan ContentRef
}

// Config defines the application configuration surface
type Config interface {
	// GetDiscordClientID returns the presence daemon application id
	GetDiscordClientID() string

	// GetTMDBKey returns the catalog API key
	GetTMDBKey() string

	// GetYouTubeKey returns the video-platform API key
	GetYouTubeKey() string

	// GetListenAddr returns the addon HTTP listen address
	GetListenAddr() string

	// GetSilenceTimeout returns how long after the last watch event the
	// status reverts to idle
	GetSilenceTimeout() time.Duration
}
