// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/moodmix/internal/models"
	"github.com/desertthunder/moodmix/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// spotifyMaxLimit is the largest page the playlist items endpoint accepts.
	spotifyMaxLimit = 100
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyArtist represents a simplified Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyAlbum represents a simplified Spotify album.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	Album        SpotifyAlbum    `json:"album"`
	PreviewURL   *string         `json:"preview_url"`
	ExternalURLs externalURLs    `json:"external_urls"`
	DurationMS   int             `json:"duration_ms"`
}

// SpotifyPlaylistTrack represents a track within a playlist context.
//
// Track is nil for removed or unavailable items.
type SpotifyPlaylistTrack struct {
	AddedAt string        `json:"added_at"`
	Track   *SpotifyTrack `json:"track"`
}

// SpotifyPaginatedPlaylistTracks is one page of playlist items.
type SpotifyPaginatedPlaylistTracks struct {
	Items    []SpotifyPlaylistTrack `json:"items"`
	Total    int                    `json:"total"`
	Limit    int                    `json:"limit"`
	Offset   int                    `json:"offset"`
	Next     *string                `json:"next"`
	Previous *string                `json:"previous"`
}

// SpotifyOptions overrides endpoints and transport details. Zero values select the defaults.
type SpotifyOptions struct {
	BaseURL    string
	TokenURL   string
	HTTPClient *http.Client  // base client used for both token and API requests
	Timeout    time.Duration // per request, 10s when zero
	RateLimit  rate.Limit    // outbound requests per second, 10 when zero
}

// SpotifyService implements [Catalog] with the client credentials flow.
//
// The [oauth2] transport fetches and renews the app token as needed.
type SpotifyService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
}

// NewSpotifyService creates a new Spotify catalog client with the given app credentials.
func NewSpotifyService(credentials map[string]string, opts SpotifyOptions) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	if opts.BaseURL == "" {
		opts.BaseURL = spotifyBaseURL
	}
	if opts.TokenURL == "" {
		opts.TokenURL = spotifyTokenURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     opts.TokenURL,
	}

	// The token source fetches with this client under a background context, so the
	// timeout has to live on the client itself.
	tokenClient := *opts.HTTPClient
	tokenClient.Timeout = opts.Timeout

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &tokenClient)

	return &SpotifyService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: config.Client(ctx),
		limiter:    rate.NewLimiter(opts.RateLimit, 1),
		timeout:    opts.Timeout,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// doRequest performs an authenticated GET against the Spotify API and decodes the JSON body into result.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", shared.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify API status %d", shared.ErrCatalogUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrCatalogUnavailable, err)
	}

	return nil
}

// PlaylistItems retrieves one page of raw playlist items.
func (s *SpotifyService) PlaylistItems(ctx context.Context, playlistID string, limit, offset int) (*SpotifyPaginatedPlaylistTracks, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: empty playlist id", shared.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = DefaultTrackLimit
	}
	if limit > spotifyMaxLimit {
		limit = spotifyMaxLimit
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks?limit=%d&offset=%d", url.PathEscape(playlistID), limit, offset)

	var page SpotifyPaginatedPlaylistTracks
	if err := s.doRequest(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PlaylistTracks fetches a single page of the playlist and normalizes it, skipping empty items.
//
// The result never exceeds limit even if the API returns more.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]models.Track, error) {
	if limit <= 0 {
		limit = DefaultTrackLimit
	}

	page, err := s.PlaylistItems(ctx, playlistID, limit, 0)
	if err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, min(len(page.Items), limit))
	for _, item := range page.Items {
		if item.Track == nil {
			continue
		}
		tracks = append(tracks, Normalize(*item.Track))
		if len(tracks) == limit {
			break
		}
	}

	return tracks, nil
}

// Normalize shapes a Spotify track into a display-ready [models.Track].
func Normalize(t SpotifyTrack) models.Track {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}

	track := models.Track{
		ID:         t.ID,
		Name:       t.Name,
		Artists:    strings.Join(names, ", "),
		PreviewURL: t.PreviewURL,
		SpotifyURL: t.ExternalURLs.Spotify,
	}

	if len(t.Album.Images) > 0 {
		track.AlbumCover = t.Album.Images[0].URL
	}

	return track
}
