// Package presence owns the process-wide presence status: a two-state machine
// (idle/active) that formats display lines, pushes them to the presence sink,
// and reverts to idle after a period of silence.
package presence

import (
	"fmt"
	"sync"
	"time"

	"stremcord/internal/domain"

	"go.uber.org/zap"
)

// Machine is the presence state machine. It owns the single Status cell and
// the single silence timer; both are guarded by mu because watch events and
// timer callbacks arrive on different goroutines.
type Machine struct {
	logger *zap.Logger
	sink   domain.Sink

	mu     sync.Mutex
	status domain.Status
	timer  *time.Timer
	gen    uint64

	started time.Time
	silence time.Duration
	pick    func(n int) int
	now     func() time.Time
}

// NewMachine creates the state machine in the Idle state.
// The idle "since" timestamp is pinned here and never changes.
func NewMachine(logger *zap.Logger, cfg domain.Config, sink domain.Sink) *Machine {
	started := time.Now()
	return &Machine{
		logger:  logger,
		sink:    sink,
		status:  domain.Status{Since: started},
		started: started,
		silence: cfg.GetSilenceTimeout(),
		pick:    defaultPick,
		now:     time.Now,
	}
}

// OnResolved transitions to Active: cancels any armed silence timer, pushes
// the watching status, and arms a fresh timer. Every successful resolution
// restarts the elapsed-time display; only the idle push stays anchored to
// process start.
func (m *Machine) OnResolved(meta *domain.ResolvedMetadata) {
	m.mu.Lock()
	m.disarmLocked()
	since := m.now()
	m.status = domain.Status{Active: true, Meta: meta, Since: since}

	// The generation guard keeps a timer that already fired, but lost the
	// race against Stop, from reverting this fresh status
	gen := m.gen
	m.timer = time.AfterFunc(m.silence, func() { m.onTimer(gen) })

	lead := watchingLeadIns[m.pick(len(watchingLeadIns))]
	act := domain.Activity{
		Details:    lead + " " + meta.Title,
		State:      subtitleLine(meta),
		LargeImage: meta.ImageRef,
		LargeText:  meta.Title,
		SmallImage: domain.SmallIconKey,
		Start:      since,
	}
	m.mu.Unlock()

	m.logger.Info("Presence updated",
		zap.String("title", meta.Title),
		zap.String("category", string(meta.Category)))
	m.push(act)
}

// OnSilence transitions to Idle and pushes the browsing status. It does not
// re-arm the timer; idle is terminal until the next resolution. Calling it
// repeatedly is harmless and produces one push per call.
func (m *Machine) OnSilence() {
	m.mu.Lock()
	act := m.idleLocked()
	m.mu.Unlock()

	m.logger.Info("Presence idle", zap.String("phrase", act.State))
	m.push(act)
}

// idleLocked performs the Idle transition and builds the browsing activity.
// Callers hold mu.
func (m *Machine) idleLocked() domain.Activity {
	m.disarmLocked()
	m.status = domain.Status{Since: m.started}

	return domain.Activity{
		Details:    "Stremio is open",
		State:      browsingPhrases[m.pick(len(browsingPhrases))],
		LargeImage: domain.StremioLogoURL,
		LargeText:  "Stremio",
		SmallImage: domain.SmallIconKey,
		Start:      m.started,
	}
}

// OnResolutionFailed leaves the status exactly as-is: no transition, no push.
// The stale display persists until a later resolution or the silence timer.
func (m *Machine) OnResolutionFailed() {
	m.logger.Debug("Resolution failed, presence unchanged")
}

// Current returns a copy of the status cell
func (m *Machine) Current() domain.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// onTimer is the silence timer callback
func (m *Machine) onTimer(gen uint64) {
	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}
	act := m.idleLocked()
	m.mu.Unlock()

	m.logger.Info("Silence timeout, presence idle", zap.String("phrase", act.State))
	m.push(act)
}

// disarmLocked stops the pending silence timer, if any, and invalidates
// callbacks already in flight. Callers hold mu.
func (m *Machine) disarmLocked() {
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// push hands an activity to the sink. The internal status has already been
// updated by this point; a failed or dropped push only affects the display.
func (m *Machine) push(act domain.Activity) {
	if err := m.sink.SetActivity(act); err != nil {
		m.logger.Warn("Presence push dropped", zap.Error(err))
	}
}

// subtitleLine formats the second display line from the raw metadata fields
func subtitleLine(meta *domain.ResolvedMetadata) string {
	switch meta.Category {
	case domain.CategorySeries:
		return fmt.Sprintf("S%d:E%d", meta.Season, meta.Episode)
	case domain.CategoryChannel:
		return "by " + meta.Creator
	default:
		return ""
	}
}
