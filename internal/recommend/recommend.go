// Package recommend turns an emotion label into a list of tracks.
//
// It joins the emotion resolver with a catalog and owns the degradation policy: a label
// without a mapping or a failed catalog call produces an empty track list, never an error.
package recommend

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodmix/internal/emotion"
	"github.com/desertthunder/moodmix/internal/models"
	"github.com/desertthunder/moodmix/internal/services"
)

// MaxTracks caps the number of tracks in a recommendation.
const MaxTracks = 20

// Recommender resolves emotions to playlists and fetches their tracks.
type Recommender struct {
	resolver *emotion.Resolver
	catalog  services.Catalog
	logger   *log.Logger
}

// New creates a Recommender. A nil catalog behaves like one that always fails.
func New(resolver *emotion.Resolver, catalog services.Catalog, logger *log.Logger) *Recommender {
	return &Recommender{resolver: resolver, catalog: catalog, logger: logger}
}

// Recommend returns up to [MaxTracks] tracks for e.
func (r *Recommender) Recommend(ctx context.Context, e models.Emotion) models.Recommendation {
	playlistID, ok := r.resolver.Resolve(e)
	if !ok {
		r.logger.Warn("no playlist found for emotion", "emotion", e)
		return models.NewRecommendation(e, nil)
	}

	if r.catalog == nil {
		r.logger.Warn("no catalog configured", "emotion", e)
		return models.NewRecommendation(e, nil)
	}

	tracks, err := r.catalog.PlaylistTracks(ctx, playlistID, MaxTracks)
	if err != nil {
		r.logger.Error("playlist fetch error", "emotion", e, "playlist", playlistID, "catalog", r.catalog.Name(), "error", err)
		return models.NewRecommendation(e, nil)
	}

	if len(tracks) > MaxTracks {
		tracks = tracks[:MaxTracks]
	}

	r.logger.Debug("recommendation ready", "emotion", e, "playlist", playlistID, "tracks", len(tracks))
	return models.NewRecommendation(e, tracks)
}
