package camera

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"mime"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/moodmix/internal/shared"
	tu "github.com/desertthunder/moodmix/internal/testing"
)

func TestService(t *testing.T) {
	ctx := context.Background()

	t.Run("Capture", func(t *testing.T) {
		dev := &tu.FakeDevice{Frames: 1}
		svc := NewService(dev, Options{})

		frame, err := svc.Capture(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if frame.Bounds().Dx() != 8 {
			t.Errorf("expected 8px wide frame, got %d", frame.Bounds().Dx())
		}

		if _, err := svc.Capture(ctx); !errors.Is(err, shared.ErrCameraUnavailable) {
			t.Errorf("expected ErrCameraUnavailable after frames run out, got %v", err)
		}
	})

	t.Run("no device", func(t *testing.T) {
		svc := NewService(nil, Options{})
		if svc.Available() {
			t.Error("expected unavailable service")
		}
		if _, err := svc.Snapshot(ctx); !errors.Is(err, shared.ErrCameraUnavailable) {
			t.Errorf("expected ErrCameraUnavailable, got %v", err)
		}
		if err := svc.Close(); err != nil {
			t.Errorf("close without device should be a no-op, got %v", err)
		}
	})

	t.Run("Snapshot is a mirrored JPEG", func(t *testing.T) {
		svc := NewService(&tu.FakeDevice{Frames: 1, Width: 16, Height: 8}, Options{JPEGQuality: 100})

		data, err := svc.Snapshot(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("snapshot is not a JPEG: %v", err)
		}
		r, _, b, _ := img.At(1, 4).RGBA()
		if b <= r {
			t.Errorf("expected left edge to be blue after mirroring, got r=%d b=%d", r, b)
		}
	})

	t.Run("serializes reads", func(t *testing.T) {
		dev := &tu.FakeDevice{Frames: -1}
		svc := NewService(dev, Options{})

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := svc.Capture(ctx); err != nil {
					t.Errorf("capture failed: %v", err)
				}
			}()
		}
		wg.Wait()
		if dev.Reads() != 20 {
			t.Errorf("expected 20 reads, got %d", dev.Reads())
		}
	})

	t.Run("Close releases device", func(t *testing.T) {
		dev := &tu.FakeDevice{Frames: 1}
		if err := NewService(dev, Options{}).Close(); err != nil {
			t.Fatalf("close failed: %v", err)
		}
		if !dev.Closed() {
			t.Error("expected device to be closed")
		}
	})
}

func TestMirror(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 1))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})
	src.Set(2, 0, color.RGBA{B: 255, A: 255})

	gray := image.NewGray(image.Rect(10, 10, 13, 11))
	gray.Set(10, 10, color.Gray{Y: 200})

	t.Run("RGBA", func(t *testing.T) {
		got := Mirror(src)
		if c := color.RGBAModel.Convert(got.At(0, 0)).(color.RGBA); c.B != 255 {
			t.Errorf("expected blue at left, got %v", c)
		}
		if c := color.RGBAModel.Convert(got.At(2, 0)).(color.RGBA); c.R != 255 {
			t.Errorf("expected red at right, got %v", c)
		}
	})

	t.Run("other models and offset bounds", func(t *testing.T) {
		got := Mirror(gray)
		if got.Bounds() != image.Rect(0, 0, 3, 1) {
			t.Errorf("unexpected bounds %v", got.Bounds())
		}
		if c := color.GrayModel.Convert(got.At(2, 0)).(color.Gray); c.Y != 200 {
			t.Errorf("expected bright pixel at right, got %v", c)
		}
	})
}

func TestStream(t *testing.T) {
	t.Run("ends when device runs dry", func(t *testing.T) {
		dev := &tu.FakeDevice{Frames: 3}
		svc := NewService(dev, Options{})
		rec := httptest.NewRecorder()

		n, err := svc.Stream(context.Background(), rec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 3 {
			t.Errorf("expected 3 frames, got %d", n)
		}
		if !rec.Flushed {
			t.Error("expected response to be flushed")
		}
		if dev.Closed() {
			t.Error("stream must not close the device")
		}

		_, params, err := mime.ParseMediaType(StreamContentType)
		if err != nil {
			t.Fatalf("bad content type: %v", err)
		}
		mr := multipart.NewReader(rec.Body, params["boundary"])
		parts := 0
		for {
			p, err := mr.NextPart()
			if err != nil {
				break
			}
			if p.Header.Get("Content-Type") != "image/jpeg" {
				t.Errorf("unexpected part type %q", p.Header.Get("Content-Type"))
			}
			data, err := io.ReadAll(p)
			if err != nil {
				// the stream has no closing boundary, so the last part is unterminated
				break
			}
			if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
				t.Errorf("part %d is not a JPEG: %v", parts, err)
			}
			parts++
		}
		if parts < 2 {
			t.Errorf("expected at least 2 decodable parts, got %d", parts)
		}
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		svc := NewService(&tu.FakeDevice{Frames: -1}, Options{FPS: 100})
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		n, err := svc.Stream(ctx, io.Discard)
		if err == nil {
			t.Error("expected an error once the deadline is reached")
		}
		if n == 0 || n > 10 {
			t.Errorf("expected a handful of paced frames, got %d", n)
		}
	})
}
