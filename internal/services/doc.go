// Package services defines the [Catalog] interface for music catalogs and implements it for Spotify.
//
// # Spotify Implementation
//
// [SpotifyService] authenticates as the application with the OAuth2 client credentials flow.
// No user login is involved; the token is fetched lazily on the first request and renewed by the
// [oauth2] transport when it expires.
//
// Only one endpoint is used: GET /playlists/{id}/tracks. Each playlist item is mapped to a
// [models.Track] by [Normalize]:
//   - artists: names joined with ", "
//   - album_cover: URL of the first album image, "" when there are none
//   - preview_url: passed through, null when Spotify omits it
//   - spotify_url: external_urls.spotify
//
// Items whose track is null (removed or local files) are skipped.
//
// # Error Handling
//
// Transport failures, non-2xx responses and malformed payloads are wrapped with
// [shared.ErrCatalogUnavailable]. Nothing is retried; callers decide how to degrade.
//
// Outbound requests are paced with a token bucket from golang.org/x/time/rate.
package services
