package vision

import (
	"context"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// HSVRange is one color threshold for blob segmentation.
// Hue is 0-179 and saturation/value 0-255, matching OpenCV's HSV space.
type HSVRange struct {
	HLo, SLo, VLo float64
	HHi, SHi, VHi float64
}

// GreenBallThresholds segments the green ball the rover demo tracks.
// Multiple ranges cover the lighting variation across the room.
func GreenBallThresholds() []HSVRange {
	return []HSVRange{
		{HLo: 38, SLo: 80, VLo: 60, HHi: 78, SHi: 255, VHi: 255},
		{HLo: 35, SLo: 60, VLo: 40, HHi: 82, SHi: 255, VHi: 220},
	}
}

// BlobDetector finds color blobs in a BGR frame using HSV thresholding
// and contour extraction.
type BlobDetector struct {
	thresholds []HSVRange
	minArea    float64

	mu sync.Mutex // Protects the scratch mats
}

// NewBlobDetector creates a detector for the given color thresholds.
// Blobs smaller than minArea pixels are discarded as noise.
func NewBlobDetector(thresholds []HSVRange, minArea float64) *BlobDetector {
	return &BlobDetector{
		thresholds: thresholds,
		minArea:    minArea,
	}
}

// Detect finds the color blobs in one BGR frame.
func (d *BlobDetector) Detect(frame gocv.Mat) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)

	mask := gocv.Zeros(hsv.Rows(), hsv.Cols(), gocv.MatTypeCV8U)
	defer mask.Close()

	for _, t := range d.thresholds {
		rangeMask := gocv.NewMat()
		gocv.InRangeWithScalars(hsv,
			gocv.NewScalar(t.HLo, t.SLo, t.VLo, 0),
			gocv.NewScalar(t.HHi, t.SHi, t.VHi, 0),
			&rangeMask)
		gocv.BitwiseOr(mask, rangeMask, &mask)
		rangeMask.Close()
	}

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var dets []Detection
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if area < d.minArea {
			continue
		}

		rect := gocv.BoundingRect(contour)
		dets = append(dets, Detection{
			Cx:   float64(rect.Min.X+rect.Max.X) / 2,
			Cy:   float64(rect.Min.Y+rect.Max.Y) / 2,
			Area: area,
			Rect: rect,
		})
	}

	return dets, nil
}

// Close releases detector resources.
func (d *BlobDetector) Close() error {
	return nil
}

// CameraSource captures frames from a local camera and runs blob
// detection on each one.
type CameraSource struct {
	capture  *gocv.VideoCapture
	detector *BlobDetector
	frame    gocv.Mat
}

// NewCameraSource opens the camera device (an index or a device path)
// and attaches a blob detector to it.
func NewCameraSource(device interface{}, detector *BlobDetector) (*CameraSource, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %v: %w", device, err)
	}

	return &CameraSource{
		capture:  capture,
		detector: detector,
		frame:    gocv.NewMat(),
	}, nil
}

// NextFrame captures one frame and returns the blobs found in it.
func (c *CameraSource) NextFrame(ctx context.Context) ([]Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if ok := c.capture.Read(&c.frame); !ok {
		return nil, fmt.Errorf("camera read failed")
	}
	if c.frame.Empty() {
		// Cameras occasionally deliver an empty grab on startup.
		return nil, nil
	}

	return c.detector.Detect(c.frame)
}

// Close releases the camera and detector.
func (c *CameraSource) Close() error {
	c.frame.Close()
	if err := c.capture.Close(); err != nil {
		return err
	}
	return c.detector.Close()
}

var _ Source = (*CameraSource)(nil)
var _ Source = (*StreamSource)(nil)
