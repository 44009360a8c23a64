package influxdb

import (
	"errors"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/renholt/sidecodec-core/internal/infrastructure/config"
	"github.com/renholt/sidecodec-core/internal/regmap"
)

var _ regmap.Observer = (*RegisterIOObserver)(nil)

// fakeWriteAPI captures points instead of sending them to a server.
type fakeWriteAPI struct {
	points []*write.Point
}

func (f *fakeWriteAPI) WriteRecord(string)        {}
func (f *fakeWriteAPI) WritePoint(p *write.Point) { f.points = append(f.points, p) }
func (f *fakeWriteAPI) Flush()                    {}
func (f *fakeWriteAPI) Errors() <-chan error      { return nil }

func (f *fakeWriteAPI) SetWriteFailedCallback(api.WriteFailedCallback) {}

func newTestClient(fake *fakeWriteAPI) *Client {
	return &Client{
		writeAPI:  fake,
		connected: true,
		cfg:       config.InfluxDBConfig{Enabled: true, Org: "test", Bucket: "metrics"},
	}
}

func fieldValue(p *write.Point, name string) any {
	for _, f := range p.FieldList() {
		if f.Key == name {
			return f.Value
		}
	}
	return nil
}

func tagValue(p *write.Point, name string) string {
	for _, t := range p.TagList() {
		if t.Key == name {
			return t.Value
		}
	}
	return ""
}

func TestConnect_Disabled(t *testing.T) {
	_, err := Connect(config.InfluxDBConfig{Enabled: false})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestWriteRegisterIO(t *testing.T) {
	fake := &fakeWriteAPI{}
	c := newTestClient(fake)

	c.WriteRegisterIO("amp.2", "write", 0x23ff, 150*time.Microsecond, false)

	if len(fake.points) != 1 {
		t.Fatalf("captured %d points, want 1", len(fake.points))
	}
	p := fake.points[0]
	if p.Name() != "register_io" {
		t.Errorf("measurement = %q, want register_io", p.Name())
	}
	if tagValue(p, "device") != "amp.2" || tagValue(p, "op") != "write" {
		t.Errorf("tags = %v, want device=amp.2 op=write", p.TagList())
	}
	if got := fieldValue(p, "reg"); got != int64(0x23ff) {
		t.Errorf("reg field = %v, want 0x23ff", got)
	}
	if got := fieldValue(p, "elapsed_us"); got != int64(150) {
		t.Errorf("elapsed_us field = %v, want 150", got)
	}
	if got := fieldValue(p, "failed"); got != false {
		t.Errorf("failed field = %v, want false", got)
	}
}

func TestWriteRegisterIO_Disconnected(t *testing.T) {
	fake := &fakeWriteAPI{}
	c := newTestClient(fake)
	c.connected = false

	c.WriteRegisterIO("amp.0", "read", 0x24ff, time.Millisecond, false)

	if len(fake.points) != 0 {
		t.Errorf("disconnected client wrote %d points, want 0", len(fake.points))
	}
}

func TestWriteAmpState(t *testing.T) {
	fake := &fakeWriteAPI{}
	c := newTestClient(fake)

	c.WriteAmpState("amp.1", 1, "suspended", false)

	if len(fake.points) != 1 {
		t.Fatalf("captured %d points, want 1", len(fake.points))
	}
	p := fake.points[0]
	if p.Name() != "amp_state" {
		t.Errorf("measurement = %q, want amp_state", p.Name())
	}
	if tagValue(p, "power") != "suspended" {
		t.Errorf("power tag = %q, want suspended", tagValue(p, "power"))
	}
	if got := fieldValue(p, "slot"); got != int64(1) {
		t.Errorf("slot field = %v, want 1", got)
	}
}

func TestRegisterIOObserver(t *testing.T) {
	fake := &fakeWriteAPI{}
	c := newTestClient(fake)
	observer := NewRegisterIOObserver(c, "amp.3")

	observer.ObserveRegisterIO("read", 0x24ff, 80*time.Microsecond, nil)
	observer.ObserveRegisterIO("write", 0x203a, 95*time.Microsecond, errors.New("nack"))

	if len(fake.points) != 2 {
		t.Fatalf("captured %d points, want 2", len(fake.points))
	}
	if got := fieldValue(fake.points[0], "failed"); got != false {
		t.Errorf("successful access recorded failed = %v", got)
	}
	if got := fieldValue(fake.points[1], "failed"); got != true {
		t.Errorf("failed access recorded failed = %v", got)
	}
	if tagValue(fake.points[1], "device") != "amp.3" {
		t.Errorf("device tag = %q, want amp.3", tagValue(fake.points[1], "device"))
	}
}
