//go:build !gocv

package webcam

import "image"

// Device is unavailable in this build.
type Device struct{}

// Open always fails with [ErrNotCompiled].
func Open(id int) (*Device, error) {
	return nil, ErrNotCompiled
}

func (d *Device) Read() (image.Image, error) { return nil, ErrNotCompiled }

func (d *Device) Close() error { return nil }
