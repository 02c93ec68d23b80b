// Package emotion resolves emotion labels to playlists and produces labels from camera frames.
package emotion

import (
	"context"
	"image"
	"math/rand/v2"

	"github.com/desertthunder/moodmix/internal/models"
)

// DefaultPlaylists maps each known emotion to its curated Spotify playlist.
var DefaultPlaylists = map[models.Emotion]string{
	models.Happy:   "1u2zThsNr5yGIPvYYhffRa",
	models.Sad:     "7ymUBqQy9JAvuajmF7U2xh",
	models.Angry:   "0N7bTAuO8ejUjW2YkyZfRB",
	models.Neutral: "7EClwmhqu7mg4JvUI9z5DT",
}

// Resolver looks up playlist identifiers from a fixed table.
type Resolver struct {
	table map[models.Emotion]string
}

// NewResolver builds a Resolver from [DefaultPlaylists] with the given overrides applied.
//
// Overrides for labels outside [models.Emotions] and empty ids are ignored.
func NewResolver(overrides map[string]string) *Resolver {
	table := make(map[models.Emotion]string, len(DefaultPlaylists))
	for e, id := range DefaultPlaylists {
		table[e] = id
	}
	for label, id := range overrides {
		if e := models.Emotion(label); e.Known() && id != "" {
			table[e] = id
		}
	}
	return &Resolver{table: table}
}

// Resolve returns the playlist id for e, or false when e has no mapping.
func (r *Resolver) Resolve(e models.Emotion) (string, bool) {
	id, ok := r.table[e]
	return id, ok
}

// Label turns an optional request field into an emotion. Absent means [models.Neutral].
func Label(raw *string) models.Emotion {
	if raw == nil {
		return models.Neutral
	}
	return models.Emotion(*raw)
}

// Detector turns a camera frame into an emotion label.
type Detector interface {
	Detect(ctx context.Context, frame image.Image) (models.Emotion, error)
}

// RandomDetector stands in for a real classifier. It ignores the frame and picks a label uniformly.
type RandomDetector struct {
	intn func(n int) int
}

// NewRandomDetector returns a [RandomDetector] backed by math/rand/v2.
func NewRandomDetector() *RandomDetector {
	return &RandomDetector{intn: rand.IntN}
}

func (d *RandomDetector) Detect(ctx context.Context, _ image.Image) (models.Emotion, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return models.Emotions[d.intn(len(models.Emotions))], nil
}
