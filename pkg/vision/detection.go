// Package vision provides the detection input surface for the control loop.
//
// A Source delivers the blobs found in one camera frame per call. The
// control loop owns the returned detections for that frame only.
package vision

import (
	"context"
	"image"
)

// Detection represents one color blob found in a frame.
type Detection struct {
	Cx   float64         // Centroid x in pixels
	Cy   float64         // Centroid y in pixels
	Area float64         // Blob area in pixels
	Rect image.Rectangle // Bounding box
}

// Largest picks the detection with the greatest area.
// Ties keep the earliest detection in the slice. Returns nil for an
// empty frame, which the caller must resolve to a full stop.
func Largest(dets []Detection) *Detection {
	if len(dets) == 0 {
		return nil
	}

	best := &dets[0]
	for i := range dets {
		if dets[i].Area > best.Area {
			best = &dets[i]
		}
	}
	return best
}

// Source delivers detections one frame at a time.
// NextFrame blocks until the next frame is available; an empty slice is
// a valid frame with no blobs in it.
type Source interface {
	NextFrame(ctx context.Context) ([]Detection, error)

	// Close releases the underlying camera or connection.
	Close() error
}
