package controller

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/skaurud/comfort-controller/internal/datadog"
	"github.com/skaurud/comfort-controller/internal/model"
)

type transition struct {
	from  model.Mode
	to    model.Mode
	guard func(c *Controller, now time.Time) bool
}

// transitions is evaluated in order every cycle; the first guard that holds
// wins. Guards must hold at evaluation time, a condition that was true
// earlier and has since cleared does not fire.
var transitions = []transition{
	{model.ModeSecurity, model.ModeMonitor, func(c *Controller, now time.Time) bool {
		return c.authenticated
	}},
	{model.ModeSecurity, model.ModeLockout, func(c *Controller, now time.Time) bool {
		return c.authFailures >= maxAuthFailures
	}},
	{model.ModeMonitor, model.ModeAlarm, func(c *Controller, now time.Time) bool {
		return c.dwell(now) >= monitorMinDwell &&
			c.snap.Temperature > alarmTempThreshold &&
			c.snap.Light < alarmLightThreshold
	}},
	{model.ModeMonitor, model.ModeCooling, func(c *Controller, now time.Time) bool {
		return c.dwell(now) >= monitorMinDwell && c.snap.ComfortIndex > coolingIndexThreshold
	}},
	{model.ModeMonitor, model.ModeHeating, func(c *Controller, now time.Time) bool {
		return c.dwell(now) >= monitorMinDwell && c.snap.ComfortIndex < heatingIndexThreshold
	}},
	{model.ModeCooling, model.ModeMonitor, func(c *Controller, now time.Time) bool {
		return c.dwell(now) >= coolingDwell
	}},
	{model.ModeHeating, model.ModeMonitor, func(c *Controller, now time.Time) bool {
		return c.dwell(now) >= heatingDwell
	}},
	{model.ModeAlarm, model.ModeLockout, func(c *Controller, now time.Time) bool {
		return c.alarmStreak >= maxAlarmStreak
	}},
	{model.ModeAlarm, model.ModeMonitor, func(c *Controller, now time.Time) bool {
		return c.dwell(now) >= alarmDwell && c.alarmStreak < maxAlarmStreak
	}},
	{model.ModeLockout, model.ModeSecurity, func(c *Controller, now time.Time) bool {
		return c.releaseRequested
	}},
}

// evaluate fires at most one transition per cycle: exit action of the old
// mode, then the switch, then the entry action of the new mode.
func (c *Controller) evaluate(now time.Time) {
	for _, t := range transitions {
		if t.from != c.mode || !t.guard(c, now) {
			continue
		}

		log.Info().
			Str("from", string(t.from)).
			Str("to", string(t.to)).
			Dur("dwell", c.dwell(now)).
			Msg("Mode transition")
		datadog.Count("mode.transition", 1,
			fmt.Sprintf("from:%s", t.from), fmt.Sprintf("to:%s", t.to))

		if exit, ok := exitActions[t.from]; ok {
			exit(c, now)
		}
		c.mode = t.to
		c.enteredAt = now
		entryActions[t.to](c, now)
		return
	}
}

// Entry actions own the full actuator set for their mode: after one runs,
// exactly the actuators that mode requires are energized.
var entryActions = map[model.Mode]func(*Controller, time.Time){
	model.ModeSecurity: func(c *Controller, now time.Time) {
		c.entry = c.entry[:0]
		c.authenticated = false
		c.authFailures = 0
		c.releaseRequested = false
		c.alarmStreak = 0
		c.rejectedUntil = time.Time{}
		c.rejectFlash = false
		c.allOff()
		c.show(0, "Enter code:")
		c.show(1, "")
	},
	model.ModeMonitor: func(c *Controller, now time.Time) {
		c.set(c.hw.Fan, false)
		c.set(c.hw.Heater, false)
		c.refreshDisplay(now)
	},
	model.ModeCooling: func(c *Controller, now time.Time) {
		c.alarmStreak = 0
		c.fanCycleStart = now
		c.set(c.hw.Fan, true)
		c.set(c.hw.BlueLED, true)
		c.show(0, "Cooling")
		c.show(1, fmt.Sprintf("CI %+.1f", c.snap.ComfortIndex))
	},
	model.ModeHeating: func(c *Controller, now time.Time) {
		c.alarmStreak = 0
		c.set(c.hw.Heater, true)
		c.set(c.hw.GreenLED, true)
		c.show(0, "Heating")
		c.show(1, fmt.Sprintf("CI %+.1f", c.snap.ComfortIndex))
	},
	model.ModeAlarm: func(c *Controller, now time.Time) {
		c.alarmStreak++
		c.alarmBlink.start(now)
		c.set(c.hw.RedLED, true)
		c.set(c.hw.Buzzer, true)
		c.show(0, "!! ALARM !!")
		c.show(1, fmt.Sprintf("T %.1f L %d", c.snap.Temperature, c.snap.Light))
		log.Warn().
			Int("streak", c.alarmStreak).
			Float64("temperature", c.snap.Temperature).
			Int("light", c.snap.Light).
			Msg("Alarm raised")
	},
	model.ModeLockout: func(c *Controller, now time.Time) {
		c.set(c.hw.Fan, false)
		c.set(c.hw.Heater, false)
		c.set(c.hw.Buzzer, false)
		c.lockoutBlink.start(now)
		c.set(c.hw.RedLED, true)
		c.show(0, "Locked out")
		c.show(1, "Press # to reset")
		log.Warn().Msg("Lockout engaged, waiting for manual release")
	},
}

// Exit actions release only what the departing mode energized; SECURITY and
// MONITOR leave nothing behind that the next entry does not supersede.
var exitActions = map[model.Mode]func(*Controller, time.Time){
	model.ModeCooling: func(c *Controller, now time.Time) {
		c.set(c.hw.Fan, false)
		c.set(c.hw.BlueLED, false)
	},
	model.ModeHeating: func(c *Controller, now time.Time) {
		c.set(c.hw.GreenLED, false)
		c.set(c.hw.Heater, false)
	},
	model.ModeAlarm: func(c *Controller, now time.Time) {
		c.set(c.hw.Buzzer, false)
		c.set(c.hw.RedLED, false)
	},
	model.ModeLockout: func(c *Controller, now time.Time) {
		c.set(c.hw.RedLED, false)
	},
}
