package presence

import "math/rand"

// Phrase sets for the two display lines. Selection is uniform and may repeat
// consecutively; nothing persists between picks.

var browsingPhrases = []string{
	"Browsing the catalog",
	"Looking for something to watch",
	"Deciding what to watch next",
	"Exploring new titles",
	"Scrolling through the library",
}

var watchingLeadIns = []string{
	"Watching",
	"Now watching",
	"Streaming",
	"Enjoying",
	"Glued to",
}

// defaultPick is the ambient RNG phrase selector; tests inject their own
func defaultPick(n int) int {
	return rand.Intn(n)
}
