//go:build gocv

package webcam

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Device reads frames from an OpenCV VideoCapture.
type Device struct {
	capture *gocv.VideoCapture
	mat     gocv.Mat
}

// Open opens the capture device with the given numeric id.
func Open(id int) (*Device, error) {
	capture, err := gocv.OpenVideoCapture(id)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture device %d: %w", id, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("capture device %d is not available", id)
	}
	return &Device{capture: capture, mat: gocv.NewMat()}, nil
}

// Read grabs the next frame. The device is not safe for concurrent use.
func (d *Device) Read() (image.Image, error) {
	if ok := d.capture.Read(&d.mat); !ok || d.mat.Empty() {
		return nil, errors.New("no frame read from device")
	}
	return d.mat.ToImage()
}

func (d *Device) Close() error {
	return errors.Join(d.mat.Close(), d.capture.Close())
}
