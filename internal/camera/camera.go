// Package camera owns the capture device and turns its frames into JPEG images and MJPEG streams.
//
// One [Service] wraps one [Device]. Every read goes through the service mutex, so the live
// stream and one-shot captures take turns on the handle instead of racing for frames.
package camera

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"sync"

	"github.com/desertthunder/moodmix/internal/shared"
)

// Device is a frame source such as a webcam.
type Device interface {
	Read() (image.Image, error)
	Close() error
}

// Options tune encoding and pacing. Zero values select the defaults.
type Options struct {
	FPS         int // frames per second on streams, unpaced when zero
	JPEGQuality int // 1-100, jpeg.DefaultQuality when zero
}

// Service is the single owner of a capture device.
type Service struct {
	mu      sync.Mutex
	dev     Device
	fps     int
	quality int
}

// NewService wraps dev. A nil dev yields a service whose reads all fail with [shared.ErrCameraUnavailable].
func NewService(dev Device, opts Options) *Service {
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = jpeg.DefaultQuality
	}
	return &Service{dev: dev, fps: opts.FPS, quality: opts.JPEGQuality}
}

// Available reports whether a device is attached.
func (s *Service) Available() bool {
	return s.dev != nil
}

// Capture reads one raw frame from the device.
func (s *Service) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.dev == nil {
		return nil, fmt.Errorf("%w: no device", shared.ErrCameraUnavailable)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	frame, err := s.dev.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCameraUnavailable, err)
	}
	if frame == nil || frame.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty frame", shared.ErrCameraUnavailable)
	}
	return frame, nil
}

// Snapshot captures a frame, mirrors it and encodes it as JPEG.
func (s *Service) Snapshot(ctx context.Context) ([]byte, error) {
	frame, err := s.Capture(ctx)
	if err != nil {
		return nil, err
	}
	return s.EncodeJPEG(Mirror(frame))
}

// EncodeJPEG encodes img at the service's quality.
func (s *Service) EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

// Close releases the device.
func (s *Service) Close() error {
	if s.dev == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.Close()
}

// Mirror returns a horizontally flipped copy of img.
func Mirror(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if src, ok := img.(*image.RGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			srcRow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			dstRow := dst.Pix[dst.PixOffset(0, y):]
			for x := 0; x < b.Dx(); x++ {
				copy(dstRow[(b.Dx()-1-x)*4:(b.Dx()-x)*4], srcRow[x*4:x*4+4])
			}
		}
		return dst
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(b.Max.X-1-x, y-b.Min.Y, img.At(x, y))
		}
	}
	return dst
}
