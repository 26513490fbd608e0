package actuator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openrover/go-mvr/internal/httpc"
)

// HTTPBridge drives a rover daemon over its HTTP API. The daemon sits
// on the chassis and owns the PWM and h-bridge hardware; this side
// only posts the commanded values.
type HTTPBridge struct {
	BaseURL string
}

// NewHTTPBridge creates a bridge for the daemon at baseURL.
func NewHTTPBridge(baseURL string) *HTTPBridge {
	return &HTTPBridge{BaseURL: baseURL}
}

// SetPanAngle commands the pan servo.
func (b *HTTPBridge) SetPanAngle(deg int) error {
	return b.post("/api/servo", map[string]interface{}{
		"axis":  "pan",
		"angle": deg,
	})
}

// SetTiltAngle commands the tilt servo.
func (b *HTTPBridge) SetTiltAngle(deg int) error {
	return b.post("/api/servo", map[string]interface{}{
		"axis":  "tilt",
		"angle": deg,
	})
}

// SetLeftMotor commands the left drive motor.
func (b *HTTPBridge) SetLeftMotor(cmd MotorCommand) error {
	return b.post("/api/motor", map[string]interface{}{
		"side":      "left",
		"direction": cmd.Dir.String(),
		"enable":    cmd.Enable,
	})
}

// SetRightMotor commands the right drive motor.
func (b *HTTPBridge) SetRightMotor(cmd MotorCommand) error {
	return b.post("/api/motor", map[string]interface{}{
		"side":      "right",
		"direction": cmd.Dir.String(),
		"enable":    cmd.Enable,
	})
}

// SetParallel mirrors the parallel gate onto the rover's blue LED.
func (b *HTTPBridge) SetParallel(on bool) {
	b.post("/api/led", map[string]interface{}{"name": "blue", "on": on})
}

// SetPanExtremes mirrors the pan extreme flags onto the green and red
// LEDs. Indicator posts are best effort.
func (b *HTTPBridge) SetPanExtremes(low, high bool) {
	b.post("/api/led", map[string]interface{}{"name": "green", "on": low})
	b.post("/api/led", map[string]interface{}{"name": "red", "on": high})
}

// post sends one command to the daemon API.
func (b *HTTPBridge) post(path string, payload map[string]interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := httpc.Client.Post(b.BaseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("rover daemon request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rover daemon returned %s for %s", resp.Status, path)
	}

	return nil
}

var _ ServoDriver = (*HTTPBridge)(nil)
var _ MotorDriver = (*HTTPBridge)(nil)
var _ Indicators = (*HTTPBridge)(nil)
