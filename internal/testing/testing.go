// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"image"
	"image/color"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/moodmix/internal/models"
)

// MockCatalog is a test double for services.Catalog
type MockCatalog struct {
	mu     sync.Mutex
	Tracks []models.Track
	Err    error
	Calls  []string // playlist ids requested, in order
}

func (m *MockCatalog) PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]models.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, playlistID)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Tracks, nil
}

func (m *MockCatalog) Name() string { return "mock" }

// CallCount returns the number of PlaylistTracks calls so far.
func (m *MockCatalog) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MakeTracks builds n distinct tracks.
func MakeTracks(n int) []models.Track {
	tracks := make([]models.Track, 0, n)
	for i := range n {
		id := string(rune('a'+i%26)) + string(rune('0'+i/26))
		tracks = append(tracks, models.Track{
			ID:         id,
			Name:       "Song " + id,
			Artists:    "Artist",
			SpotifyURL: "https://open.spotify.com/track/" + id,
		})
	}
	return tracks
}

// FakeDevice is a camera device that yields a fixed number of frames and then fails.
//
// A negative Frames yields forever.
type FakeDevice struct {
	mu     sync.Mutex
	Frames int
	Width  int
	Height int
	reads  int
	closed bool
}

// ErrNoFrame is returned by [FakeDevice.Read] once its frames are used up.
var ErrNoFrame = errors.New("no frame")

// Read returns a frame whose left half is red and right half is blue.
func (d *FakeDevice) Read() (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || (d.Frames >= 0 && d.reads >= d.Frames) {
		return nil, ErrNoFrame
	}
	d.reads++

	w, h := d.Width, d.Height
	if w == 0 {
		w = 8
	}
	if h == 0 {
		h = 4
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := color.RGBA{B: 255, A: 255}
			if x < w/2 {
				c = color.RGBA{R: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img, nil
}

func (d *FakeDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Reads returns how many frames were handed out.
func (d *FakeDevice) Reads() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reads
}

// Closed reports whether Close was called.
func (d *FakeDevice) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
