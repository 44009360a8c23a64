package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteRegisterIO writes one register access measurement.
//
// The write is non-blocking; data is batched and sent asynchronously.
// Tags stay low-cardinality: device name and operation only, with the
// register address as a field.
//
// Parameters:
//   - device: Amplifier device name (e.g., "amp.2")
//   - op: "read" or "write"
//   - reg: Register address
//   - elapsed: Bus transaction duration
//   - failed: Whether the access returned an error
func (c *Client) WriteRegisterIO(device string, op string, reg uint16, elapsed time.Duration, failed bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"register_io",
		map[string]string{
			"device": device,
			"op":     op,
		},
		map[string]interface{}{
			"reg":        int64(reg),
			"elapsed_us": elapsed.Microseconds(),
			"failed":     failed,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteAmpState writes an amplifier power/stream state snapshot.
//
// Parameters:
//   - device: Amplifier device name
//   - slot: Component slot index
//   - power: Power state name ("active", "suspended")
//   - streamOpen: Whether a playback stream holds the amp
func (c *Client) WriteAmpState(device string, slot int, power string, streamOpen bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"amp_state",
		map[string]string{
			"device": device,
			"power":  power,
		},
		map[string]interface{}{
			"slot":        int64(slot),
			"stream_open": streamOpen,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// RegisterIOObserver adapts a Client into the register access observer
// shape the regmap layer expects, tagged with one device's name.
type RegisterIOObserver struct {
	client *Client
	device string
}

// NewRegisterIOObserver creates an observer recording one device's
// register traffic.
func NewRegisterIOObserver(client *Client, device string) *RegisterIOObserver {
	return &RegisterIOObserver{client: client, device: device}
}

// ObserveRegisterIO records one hardware register access.
// Non-blocking; called from the register access path.
func (o *RegisterIOObserver) ObserveRegisterIO(op string, reg uint16, elapsed time.Duration, err error) {
	o.client.WriteRegisterIO(o.device, op, reg, elapsed, err != nil)
}
