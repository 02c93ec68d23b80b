// package models defines the data model for the mood-based playlist service
package models

import "time"

// Emotion is a label describing user affect, used as the playlist lookup key.
type Emotion string

const (
	Happy   Emotion = "happy"
	Sad     Emotion = "sad"
	Angry   Emotion = "angry"
	Neutral Emotion = "neutral"
)

// Emotions lists the closed set of labels that have playlist mappings.
var Emotions = []Emotion{Happy, Sad, Angry, Neutral}

// Known reports whether e is one of [Emotions].
func (e Emotion) Known() bool {
	for _, known := range Emotions {
		if e == known {
			return true
		}
	}
	return false
}

func (e Emotion) String() string { return string(e) }

// User is a credential record keyed by username.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
}

// Track is display-ready metadata for a single song.
//
// The JSON shape is part of the HTTP contract.
type Track struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Artists    string  `json:"artists"`     // comma-joined artist names
	AlbumCover string  `json:"album_cover"` // empty when the album has no images
	PreviewURL *string `json:"preview_url"` // null when the catalog has no preview
	SpotifyURL string  `json:"spotify_url"`
}

// Recommendation pairs an emotion with the tracks picked for it.
type Recommendation struct {
	Emotion Emotion `json:"emotion"`
	Tracks  []Track `json:"tracks"`
}

// NewRecommendation returns a Recommendation whose Tracks is never nil, so it encodes as [].
func NewRecommendation(e Emotion, tracks []Track) Recommendation {
	if tracks == nil {
		tracks = []Track{}
	}
	return Recommendation{Emotion: e, Tracks: tracks}
}
