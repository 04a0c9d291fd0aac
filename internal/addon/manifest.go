package addon

// Manifest describes this addon to the Stremio host player
type Manifest struct {
	ID          string       `json:"id"`
	Version     string       `json:"version"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Resources   []string     `json:"resources"`
	Types       []string     `json:"types"`
	Catalogs    []CatalogRef `json:"catalogs"`
	IDPrefixes  []string     `json:"idPrefixes"`
}

// CatalogRef names one catalog the addon serves
type CatalogRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

var manifest = Manifest{
	ID:          "org.stremio.discordpresence",
	Version:     "1.0.0",
	Name:        "Discord Rich Presence Addon",
	Description: "Addon that updates Discord status with the current stream from Stremio.",
	Resources:   []string{"catalog", "stream", "meta", "subtitles"},
	Types:       []string{"movie", "series"},
	Catalogs: []CatalogRef{
		{Type: "movie", ID: "discordmovies"},
		{Type: "series", ID: "discordseries"},
	},
	IDPrefixes: []string{"tt", "yt"},
}

const metahubURL = "https://images.metahub.space"

// catalogEntry is one sample item served by the static catalogs, carrying
// exactly one stream transport (torrent, direct URL, hosted video or
// external player)
type catalogEntry struct {
	id          string
	name        string
	ctype       string
	infoHash    string
	url         string
	ytID        string
	externalURL string
}

// The demo dataset the addon ships with. Posters come from metahub, keyed by
// the bare IMDb id.
var dataset = []catalogEntry{
	{id: "tt0051744", name: "House on Haunted Hill", ctype: "movie", infoHash: "9f86563ce2ed86bbfedd5d3e9f4e55aedd660960"},
	{id: "tt1254207", name: "Big Buck Bunny", ctype: "movie", url: "http://clips.vorwaerts-gmbh.de/big_buck_bunny.mp4"},
	{id: "tt0031051", name: "The Arizona Kid", ctype: "movie", ytID: "m3BKVSpP80s"},
	{id: "tt0137523", name: "Fight Club", ctype: "movie", externalURL: "https://www.netflix.com/watch/26004747"},
	{id: "tt1748166:1:1", name: "Pioneer One", ctype: "series", infoHash: "07a9de9750158471c3302e4e95edb1107f980fa6"},
}

// Stream is the playable source shape the host player expects; exactly one
// transport field is set per stream
type Stream struct {
	Name        string `json:"name,omitempty"`
	InfoHash    string `json:"infoHash,omitempty"`
	URL         string `json:"url,omitempty"`
	YtID        string `json:"ytId,omitempty"`
	ExternalURL string `json:"externalUrl,omitempty"`
}

// stream renders a dataset entry as its playable source
func stream(e catalogEntry) Stream {
	return Stream{
		Name:        e.name,
		InfoHash:    e.infoHash,
		URL:         e.url,
		YtID:        e.ytID,
		ExternalURL: e.externalURL,
	}
}

// MetaPreview is the catalog/meta item shape the host player expects
type MetaPreview struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Name   string `json:"name"`
	Poster string `json:"poster,omitempty"`
}

// metaPreview renders a dataset entry, trimming any episode suffix off the id
func metaPreview(e catalogEntry, baseID string) MetaPreview {
	return MetaPreview{
		ID:     baseID,
		Type:   e.ctype,
		Name:   e.name,
		Poster: metahubURL + "/poster/medium/" + baseID + "/img",
	}
}
