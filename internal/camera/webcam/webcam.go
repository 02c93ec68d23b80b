// Package webcam opens a physical capture device for the camera package.
//
// The OpenCV-backed implementation is compiled only with the "gocv" build tag, since it
// needs OpenCV installed on the build machine. Without the tag [Open] reports that camera
// support is missing and the server runs with camera endpoints disabled.
package webcam

import "errors"

// ErrNotCompiled is returned by [Open] in builds without the gocv tag.
var ErrNotCompiled = errors.New("camera support not compiled in (build with -tags gocv)")
