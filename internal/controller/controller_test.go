package controller_test

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/skaurud/comfort-controller/internal/controller"
	"github.com/skaurud/comfort-controller/internal/hw"
	"github.com/skaurud/comfort-controller/internal/model"
)

const testStep = 10 * time.Millisecond

// rig wires a controller to fakes and drives it with a synthetic clock.
type rig struct {
	c *controller.Controller

	fan, heater, buzzer *hw.FakeLine
	red, green, blue    *hw.FakeLine
	display             *hw.FakeDisplay
	keypad              *hw.FakeKeypad
	climate             *hw.FakeClimate
	light               *hw.FakeAnalog
	tags                *hw.FakeTagReader

	now time.Time
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{
		fan:     &hw.FakeLine{},
		heater:  &hw.FakeLine{},
		buzzer:  &hw.FakeLine{},
		red:     &hw.FakeLine{},
		green:   &hw.FakeLine{},
		blue:    &hw.FakeLine{},
		display: &hw.FakeDisplay{},
		keypad:  &hw.FakeKeypad{},
		climate: &hw.FakeClimate{Samples: []hw.ClimateSample{{Temperature: 22, Humidity: 40}}},
		light:   &hw.FakeAnalog{Samples: []int{512}},
		tags:    &hw.FakeTagReader{},
		now:     time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	r.c = controller.New("1234", controller.Hardware{
		Fan:      r.fan,
		Heater:   r.heater,
		Buzzer:   r.buzzer,
		RedLED:   r.red,
		GreenLED: r.green,
		BlueLED:  r.blue,
		Display:  r.display,
		Keypad:   r.keypad,
		Climate:  r.climate,
		Light:    r.light,
		Tags:     r.tags,
	})
	r.c.Start(r.now)
	return r
}

// advance ticks the controller in 10ms control cycles for d.
func (r *rig) advance(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += testStep {
		r.now = r.now.Add(testStep)
		r.c.Tick(r.now)
	}
}

// pressKeys queues each key and gives the keypad scan job a chance to
// consume it before the next one.
func (r *rig) pressKeys(keys string) {
	for i := 0; i < len(keys); i++ {
		r.keypad.Press(keys[i])
		r.advance(60 * time.Millisecond)
	}
}

// stepUntil ticks one control cycle at a time until the controller reaches
// the wanted mode, leaving r.now on the exact cycle the transition fired.
func (r *rig) stepUntil(t *testing.T, m model.Mode, limit time.Duration) {
	t.Helper()
	deadline := r.now.Add(limit)
	for r.c.Mode() != m {
		if r.now.After(deadline) {
			t.Fatalf("mode %s not reached within %s", m, limit)
		}
		r.now = r.now.Add(testStep)
		r.c.Tick(r.now)
	}
}

// presentTag simulates holding a tag carrying the given comfort index in
// front of the reader.
func (r *rig) presentTag(value float64) {
	var block [16]byte
	binary.LittleEndian.PutUint32(block[:4], math.Float32bits(float32(value)))
	r.tags.Block = block
	r.tags.Present = true
}

func (r *rig) removeTag() {
	r.tags.Present = false
}

// authenticate types the shared code and waits for the transition.
func (r *rig) authenticate(t *testing.T) {
	t.Helper()
	r.pressKeys("1234")
	assert.Equal(t, model.ModeMonitor, r.c.Mode(), "expected monitor after valid credential")
}

func TestStartsInSecurityWithEverythingOff(t *testing.T) {
	r := newRig(t)

	assert.Equal(t, model.ModeSecurity, r.c.Mode())
	assert.False(t, r.fan.On)
	assert.False(t, r.heater.On)
	assert.False(t, r.buzzer.On)
	assert.False(t, r.red.On)
	assert.False(t, r.green.On)
	assert.False(t, r.blue.On)
	assert.Equal(t, "Enter code:", r.display.Rows[0])
}

func TestValidCredentialEntersMonitor(t *testing.T) {
	r := newRig(t)

	r.pressKeys("1234")

	assert.Equal(t, model.ModeMonitor, r.c.Mode())
	assert.False(t, r.fan.On)
	assert.False(t, r.heater.On)
}

func TestCredentialEntryEchoesMaskedDigits(t *testing.T) {
	r := newRig(t)

	r.pressKeys("12")
	assert.Equal(t, "**", r.display.Rows[1])
	assert.Equal(t, model.ModeSecurity, r.c.Mode())
}

func TestRejectedCredentialCountsAttempt(t *testing.T) {
	r := newRig(t)

	r.pressKeys("9999")

	assert.Equal(t, model.ModeSecurity, r.c.Mode())
	assert.Equal(t, "Attempt 1/3", r.display.Rows[1])
	assert.True(t, r.red.On, "error indicator flashes during rejection window")
}

func TestRejectionWindowSuppressesDigits(t *testing.T) {
	r := newRig(t)

	r.pressKeys("9999")
	// Correct code typed inside the 2s rejection window is discarded.
	r.pressKeys("1234")
	assert.Equal(t, model.ModeSecurity, r.c.Mode())

	// Once the window has passed, the indicator clears and entry works.
	r.advance(2 * time.Second)
	assert.False(t, r.red.On)
	assert.Equal(t, "Enter code:", r.display.Rows[0])

	r.pressKeys("1234")
	assert.Equal(t, model.ModeMonitor, r.c.Mode())
}

func TestThreeRejectionsLockOut(t *testing.T) {
	r := newRig(t)

	for i := 0; i < 2; i++ {
		r.pressKeys("0000")
		r.advance(2100 * time.Millisecond)
		assert.Equal(t, model.ModeSecurity, r.c.Mode())
	}
	r.pressKeys("0000")

	assert.Equal(t, model.ModeLockout, r.c.Mode())
	assert.False(t, r.fan.On)
	assert.False(t, r.heater.On)
	assert.False(t, r.buzzer.On)
	assert.Equal(t, "Press # to reset", r.display.Rows[1])

	// Further digits are ignored; only '#' releases.
	r.advance(2100 * time.Millisecond)
	r.pressKeys("1234")
	assert.Equal(t, model.ModeLockout, r.c.Mode())
}

func TestLockoutReleaseReturnsToSecurity(t *testing.T) {
	r := newRig(t)

	for i := 0; i < 3; i++ {
		r.pressKeys("0000")
		r.advance(2100 * time.Millisecond)
	}
	assert.Equal(t, model.ModeLockout, r.c.Mode())

	r.pressKeys("#")

	assert.Equal(t, model.ModeSecurity, r.c.Mode())
	assert.False(t, r.red.On, "lockout exit de-energizes the red LED")
	assert.Equal(t, "Enter code:", r.display.Rows[0])

	// Counters were cleared on re-entry: a fresh valid code authenticates.
	r.pressKeys("1234")
	assert.Equal(t, model.ModeMonitor, r.c.Mode())
}
