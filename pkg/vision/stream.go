package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// blobMessage is one frame from the camera bridge.
// The bridge runs next to the camera and sends the blob list it found
// in each captured frame as a single JSON message.
type blobMessage struct {
	Frame uint64     `json:"frame"`
	Blobs []blobJSON `json:"blobs"`
}

type blobJSON struct {
	Cx   float64    `json:"cx"`
	Cy   float64    `json:"cy"`
	Area float64    `json:"area"`
	Rect [4]float64 `json:"rect"` // x, y, w, h
}

// StreamSource receives per-frame blob lists from a camera bridge
// over a websocket connection.
type StreamSource struct {
	url string

	mu   sync.Mutex
	ws   *websocket.Conn
	open bool
}

// NewStreamSource dials the camera bridge at the given websocket URL.
func NewStreamSource(url string) (*StreamSource, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	ws, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("camera bridge connect failed: %w", err)
	}

	return &StreamSource{url: url, ws: ws, open: true}, nil
}

// NextFrame blocks until the bridge sends the next frame's blob list.
// A frame with no blobs yields an empty slice, not an error. A dropped
// connection surfaces as an error; the control loop treats that as
// fatal rather than retrying under it.
func (s *StreamSource) NextFrame(ctx context.Context) ([]Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	ws := s.ws
	s.mu.Unlock()
	if ws == nil {
		return nil, fmt.Errorf("camera bridge connection closed")
	}

	if deadline, ok := ctx.Deadline(); ok {
		ws.SetReadDeadline(deadline)
	} else {
		ws.SetReadDeadline(time.Time{})
	}

	_, msg, err := ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("camera bridge read failed: %w", err)
	}

	var frame blobMessage
	if err := json.Unmarshal(msg, &frame); err != nil {
		return nil, fmt.Errorf("bad blob message: %w", err)
	}

	dets := make([]Detection, 0, len(frame.Blobs))
	for _, b := range frame.Blobs {
		x, y := int(b.Rect[0]), int(b.Rect[1])
		w, h := int(b.Rect[2]), int(b.Rect[3])
		dets = append(dets, Detection{
			Cx:   b.Cx,
			Cy:   b.Cy,
			Area: b.Area,
			Rect: image.Rect(x, y, x+w, y+h),
		})
	}

	return dets, nil
}

// Close closes the websocket connection.
func (s *StreamSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	s.open = false
	ws := s.ws
	s.ws = nil
	return ws.Close()
}
