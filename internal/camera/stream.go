package camera

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"

	"github.com/desertthunder/moodmix/internal/shared"
	"golang.org/x/time/rate"
)

// Boundary separates the parts of an MJPEG stream.
const Boundary = "frame"

// StreamContentType is the Content-Type of [Service.Stream] output.
const StreamContentType = "multipart/x-mixed-replace; boundary=" + Boundary

type flusher interface {
	Flush()
}

// Stream writes mirrored JPEG frames to w as multipart parts until a read fails or ctx is done.
//
// A failed read ends the stream and returns nil; the device stays open for later callers.
// If w implements Flush it is flushed after every part.
func (s *Service) Stream(ctx context.Context, w io.Writer) (int, error) {
	mw := multipart.NewWriter(w)
	if err := mw.SetBoundary(Boundary); err != nil {
		return 0, err
	}

	limit := rate.Inf
	if s.fps > 0 {
		limit = rate.Limit(s.fps)
	}
	limiter := rate.NewLimiter(limit, 1)
	f, canFlush := w.(flusher)

	header := textproto.MIMEHeader{}
	header.Set("Content-Type", "image/jpeg")

	frames := 0
	for {
		if err := limiter.Wait(ctx); err != nil {
			return frames, err
		}

		frame, err := s.Snapshot(ctx)
		if errors.Is(err, shared.ErrCameraUnavailable) {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}

		part, err := mw.CreatePart(header)
		if err != nil {
			return frames, fmt.Errorf("failed to write part header: %w", err)
		}
		if _, err := part.Write(frame); err != nil {
			return frames, fmt.Errorf("failed to write frame: %w", err)
		}
		frames++

		if canFlush {
			f.Flush()
		}
	}
}
