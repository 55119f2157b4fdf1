// Package controller implements the mode state machine and the cooperative
// control loop that drives it: periodic sensor/input/display jobs, blink
// pattern drivers, and guarded mode transitions evaluated every cycle.
package controller

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/skaurud/comfort-controller/internal/hw"
	"github.com/skaurud/comfort-controller/internal/model"
	"github.com/skaurud/comfort-controller/internal/scheduler"
)

// Fixed design constants. These are deliberately not configurable at
// runtime.
const (
	accessCodeLen   = 4
	maxAuthFailures = 3
	rejectionWindow = 2 * time.Second
	releaseKey      = '#'

	monitorMinDwell = 1500 * time.Millisecond
	coolingDwell    = 7 * time.Second
	heatingDwell    = 4 * time.Second
	alarmDwell      = 5 * time.Second
	maxAlarmStreak  = 3

	alarmTempThreshold    = 40.0
	alarmLightThreshold   = 10
	coolingIndexThreshold = 1.0
	heatingIndexThreshold = -1.0
	indexDeadband         = 0.1
	forcedVentThreshold   = 2.0

	fanDutyOn  = 3 * time.Second
	fanDutyOff = 1 * time.Second

	climatePeriod = 2 * time.Second
	indexPeriod   = 500 * time.Millisecond
	displayPeriod = time.Second
	keypadPeriod  = 50 * time.Millisecond
	dutyPeriod    = 100 * time.Millisecond

	// How long the comfort-index job waits for a tag each pass. Short
	// enough that the control loop never stalls noticeably.
	tagPollTimeout = 25 * time.Millisecond
)

// Hardware is the full peripheral set the controller drives. Tests
// substitute fakes from the hw package.
type Hardware struct {
	Fan      hw.Line
	Heater   hw.Line
	Buzzer   hw.Line
	RedLED   hw.Line
	GreenLED hw.Line
	BlueLED  hw.Line

	Display hw.Display
	Keypad  hw.Keypad
	Climate hw.ClimateSensor
	Light   hw.AnalogReader
	Tags    hw.TagReader
}

// Controller owns every piece of mutable control state. It is written from
// exactly one goroutine; Tick is the only entry point after Start.
type Controller struct {
	hw         Hardware
	accessCode string
	sched      *scheduler.Scheduler

	mode      model.Mode
	enteredAt time.Time
	snap      model.Snapshot

	// credential entry
	entry         []byte
	authenticated bool
	authFailures  int
	rejectedUntil time.Time
	rejectFlash   bool

	// escalation
	alarmStreak      int
	releaseRequested bool
	forcedVent       bool

	// fan duty cycling
	fanCycleStart time.Time

	alarmBlink   blinker
	lockoutBlink blinker
}

func New(accessCode string, hardware Hardware) *Controller {
	c := &Controller{
		hw:           hardware,
		accessCode:   accessCode,
		sched:        scheduler.New(),
		mode:         model.ModeSecurity,
		alarmBlink:   blinker{onTime: 100 * time.Millisecond, offTime: 200 * time.Millisecond},
		lockoutBlink: blinker{onTime: 200 * time.Millisecond, offTime: 500 * time.Millisecond},
	}

	// Fixed job order: sampling before display before input before actuator
	// cycling, so the mode evaluation at the end of the cycle always sees
	// this cycle's freshest values.
	c.sched.Add("climate-sample", climatePeriod, c.sampleClimate)
	c.sched.Add("comfort-index", indexPeriod, c.sampleComfortIndex)
	c.sched.Add("display-refresh", displayPeriod, c.refreshDisplay)
	c.sched.Add("keypad-scan", keypadPeriod, c.scanKeypad)
	c.sched.Add("fan-duty", dutyPeriod, c.cycleFan)

	return c
}

// Start puts the controller in SECURITY and runs its entry action. Must be
// called once before the first Tick.
func (c *Controller) Start(now time.Time) {
	log.Info().Msg("Controller starting in security mode")
	c.enteredAt = now
	entryActions[model.ModeSecurity](c, now)
}

// Tick advances one control cycle: periodic jobs, then blink drivers, then
// mode evaluation. Nothing here blocks.
func (c *Controller) Tick(now time.Time) {
	c.sched.Tick(now)
	c.driveAlarmPattern(now)
	c.driveLockoutPattern(now)
	c.evaluate(now)
}

// Run ticks the controller until ctx is cancelled.
func (c *Controller) Run(ctx context.Context, cycle time.Duration) {
	ticker := time.NewTicker(cycle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Control loop stopping")
			return
		case now := <-ticker.C:
			c.Tick(now)
		}
	}
}

// Mode returns the active mode.
func (c *Controller) Mode() model.Mode {
	return c.mode
}

// Snapshot returns the last-known environmental readings.
func (c *Controller) Snapshot() model.Snapshot {
	return c.snap
}

// AlarmStreak returns the number of consecutive alarm entries since the
// last corrective (cooling/heating) entry.
func (c *Controller) AlarmStreak() int {
	return c.alarmStreak
}

func (c *Controller) dwell(now time.Time) time.Duration {
	return now.Sub(c.enteredAt)
}

// set drives a line and logs failures; actuator errors are non-fatal, the
// next mode entry re-asserts the level anyway.
func (c *Controller) set(line hw.Line, on bool) {
	if err := line.Set(on); err != nil {
		log.Error().Err(err).Msg("Failed to drive line")
	}
}

func (c *Controller) show(row int, text string) {
	if err := c.hw.Display.WriteLine(row, text); err != nil {
		log.Debug().Err(err).Msg("Display write failed")
	}
}

// allOff de-energizes every actuator and indicator.
func (c *Controller) allOff() {
	c.set(c.hw.Fan, false)
	c.set(c.hw.Heater, false)
	c.set(c.hw.Buzzer, false)
	c.set(c.hw.RedLED, false)
	c.set(c.hw.GreenLED, false)
	c.set(c.hw.BlueLED, false)
}
