package controller

import (
	"time"

	"github.com/skaurud/comfort-controller/internal/model"
)

// blinker is a timed on/off toggle with asymmetric phases. It has no idea
// what it drives; the pattern drivers below apply it to lines.
type blinker struct {
	onTime  time.Duration
	offTime time.Duration

	lit        bool
	lastToggle time.Time
}

func (b *blinker) start(now time.Time) {
	b.lit = true
	b.lastToggle = now
}

// tick reports whether the output should flip this cycle, and if so flips
// the tracked level.
func (b *blinker) tick(now time.Time) bool {
	phase := b.offTime
	if b.lit {
		phase = b.onTime
	}
	if now.Sub(b.lastToggle) < phase {
		return false
	}
	b.lit = !b.lit
	b.lastToggle = now
	return true
}

// driveAlarmPattern alternates the red LED and buzzer in lockstep, 100ms on
// and 200ms off, only while ALARM is active. The ALARM exit action clears
// both lines, so nothing is left mid-blink after a transition.
func (c *Controller) driveAlarmPattern(now time.Time) {
	if c.mode != model.ModeAlarm {
		return
	}
	if c.alarmBlink.tick(now) {
		c.set(c.hw.RedLED, c.alarmBlink.lit)
		c.set(c.hw.Buzzer, c.alarmBlink.lit)
	}
}

// driveLockoutPattern blinks the red LED 200ms on, 500ms off while locked
// out.
func (c *Controller) driveLockoutPattern(now time.Time) {
	if c.mode != model.ModeLockout {
		return
	}
	if c.lockoutBlink.tick(now) {
		c.set(c.hw.RedLED, c.lockoutBlink.lit)
	}
}
