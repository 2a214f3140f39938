// Package xr defines what the runtime receives from an XR host each frame,
// and a simulated host that drives it from a keyboard: virtual controllers
// and a table surface that answers hit-tests.
package xr

import "github.com/vovakirdan/xr-pong/internal/core"

// Frame is one host animation frame.
type Frame struct {
	Delta   float64 // Seconds since the previous frame
	Active  bool    // An immersive session is running
	Sources []core.InputSource
}
