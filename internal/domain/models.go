package domain

import "time"

// Family discriminates the source of a content identifier
type Family string

const (
	// FamilyCatalog identifies movie/series content addressed by an IMDb-style id
	FamilyCatalog Family = "catalog"
	// FamilyVideoPlatform identifies hosted videos addressed by a platform video id
	FamilyVideoPlatform Family = "video"
)

// Category classifies resolved content for display purposes
type Category string

const (
	// CategoryMovie is a feature film
	CategoryMovie Category = "movie"
	// CategorySeries is an episode of a TV series
	CategorySeries Category = "series"
	// CategoryChannel is a hosted video attributed to a channel/creator
	CategoryChannel Category = "channel"
)

// ContentRef is a parsed content identifier.
// Season and Episode are zero unless the id carried an episode suffix.
type ContentRef struct {
	Family  Family
	BaseID  string
	Season  int
	Episode int
}

// IsEpisode reports whether the ref addresses a specific series episode
func (r ContentRef) IsEpisode() bool {
	return r.Season > 0 && r.Episode > 0
}

// ResolvedMetadata is the display-ready result of a successful lookup.
// Season/Episode and Creator are raw structured fields; all display-string
// formatting belongs to the presence state machine.
type ResolvedMetadata struct {
	// Title of the content ("Series - Episode" for series episodes)
	Title string
	// Category of the resolved content
	Category Category
	// ImageRef is a poster/thumbnail URL or presence asset key
	ImageRef string
	// Season number, set only for CategorySeries
	Season int
	// Episode number, set only for CategorySeries
	Episode int
	// Creator is the channel name, set only for CategoryChannel
	Creator string
}

// Activity is one "set status" command for the presence daemon
type Activity struct {
	// Details is the first display line
	Details string
	// State is the second display line, empty to omit
	State string
	// LargeImage is the main artwork URL or asset key
	LargeImage string
	// LargeText is the artwork hover text
	LargeText string
	// SmallImage is the corner badge asset key
	SmallImage string
	// Start anchors the elapsed-time display
	Start time.Time
}

// Status is the single process-wide presence cell.
// Meta is nil while idle. Since is pinned to process start while idle and
// resets on every successful resolution while active.
type Status struct {
	Active bool
	Meta   *ResolvedMetadata
	Since  time.Time
}

// StremioLogoURL is the large artwork shown while no content is being watched
const StremioLogoURL = "https://user-images.githubusercontent.com/45118834/71491341-17200a00-2828-11ea-9c41-85a6c11203db.png"

// SmallIconKey is the presence asset key for the corner badge
const SmallIconKey = "stremio_logo"
