package domain

import "testing"

func TestParseContentRef(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected ContentRef
	}{
		{
			name:     "Movie - bare IMDb id",
			id:       "tt0111161",
			expected: ContentRef{Family: FamilyCatalog, BaseID: "tt0111161"},
		},
		{
			name:     "Series - season and episode suffix",
			id:       "tt0944947:1:1",
			expected: ContentRef{Family: FamilyCatalog, BaseID: "tt0944947", Season: 1, Episode: 1},
		},
		{
			name:     "Series - multi digit season and episode",
			id:       "tt0903747:5:14",
			expected: ContentRef{Family: FamilyCatalog, BaseID: "tt0903747", Season: 5, Episode: 14},
		},
		{
			name:     "Video platform id",
			id:       "yt:dQw4w9WgXcQ",
			expected: ContentRef{Family: FamilyVideoPlatform, BaseID: "dQw4w9WgXcQ"},
		},
		{
			name:     "Malformed - season only, degrades to movie shape",
			id:       "tt0944947:1",
			expected: ContentRef{Family: FamilyCatalog, BaseID: "tt0944947"},
		},
		{
			name:     "Malformed - non numeric suffix, degrades to movie shape",
			id:       "tt0944947:one:two",
			expected: ContentRef{Family: FamilyCatalog, BaseID: "tt0944947"},
		},
		{
			name:     "Malformed - zero episode, degrades to movie shape",
			id:       "tt0944947:0:0",
			expected: ContentRef{Family: FamilyCatalog, BaseID: "tt0944947"},
		},
		{
			name:     "Empty id",
			id:       "",
			expected: ContentRef{Family: FamilyCatalog, BaseID: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseContentRef(tt.id)
			if got != tt.expected {
				t.Errorf("ParseContentRef(%q) = %+v, want %+v", tt.id, got, tt.expected)
			}
		})
	}
}

func TestContentRefIsEpisode(t *testing.T) {
	if !(ContentRef{Family: FamilyCatalog, BaseID: "tt1", Season: 2, Episode: 3}).IsEpisode() {
		t.Error("ref with season and episode should be an episode")
	}
	if (ContentRef{Family: FamilyCatalog, BaseID: "tt1"}).IsEpisode() {
		t.Error("ref without season/episode should not be an episode")
	}
}
