package domain

import (
	"strconv"
	"strings"
)

const videoPlatformPrefix = "yt:"

// ParseContentRef decomposes an opaque content id into a ContentRef.
// Parsing is purely structural and never fails: a malformed episode suffix
// simply degrades to a movie-shaped ref.
//
// Recognized shapes:
//
//	"tt0111161"       -> catalog movie
//	"tt0944947:1:1"   -> catalog series, season 1 episode 1
//	"yt:dQw4w9WgXcQ"  -> video-platform id
func ParseContentRef(id string) ContentRef {
	if rest, ok := strings.CutPrefix(id, videoPlatformPrefix); ok {
		return ContentRef{Family: FamilyVideoPlatform, BaseID: rest}
	}

	parts := strings.Split(id, ":")
	ref := ContentRef{Family: FamilyCatalog, BaseID: parts[0]}

	// Season and episode travel together; anything else is ignored
	if len(parts) >= 3 {
		season, serr := strconv.Atoi(parts[1])
		episode, eerr := strconv.Atoi(parts[2])
		if serr == nil && eerr == nil && season > 0 && episode > 0 {
			ref.Season = season
			ref.Episode = episode
		}
	}

	return ref
}
