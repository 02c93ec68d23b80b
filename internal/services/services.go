// package services defines interface Catalog for fetching tracks from music catalog HTTP APIs
package services

import (
	"context"

	"github.com/desertthunder/moodmix/internal/models"
)

// DefaultTrackLimit is the number of tracks requested per playlist when callers pass zero.
const DefaultTrackLimit = 20

// Catalog defines a music catalog that can list the tracks of a playlist.
type Catalog interface {
	// PlaylistTracks returns at most limit normalized tracks from the playlist.
	// Failures are reported as errors wrapping [shared.ErrCatalogUnavailable].
	PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]models.Track, error)

	// Name returns the name of the catalog (e.g., "Spotify")
	Name() string
}
