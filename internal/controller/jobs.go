package controller

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/skaurud/comfort-controller/internal/datadog"
	"github.com/skaurud/comfort-controller/internal/model"
	"github.com/skaurud/comfort-controller/internal/tag"
)

// sampleClimate refreshes temperature, humidity and light level. Values are
// sticky: a failed read keeps the previous one, the next period is the
// implicit retry.
func (c *Controller) sampleClimate(now time.Time) {
	if c.mode != model.ModeMonitor {
		return
	}

	temperature, humidity, err := c.hw.Climate.Read()
	if err != nil {
		log.Debug().Err(err).Msg("Climate sample failed, keeping last reading")
	} else {
		c.snap.Temperature = temperature
		c.snap.Humidity = humidity
		datadog.Gauge("env.temperature", temperature)
		datadog.Gauge("env.humidity", humidity)
	}

	light, err := c.hw.Light.Read()
	if err != nil {
		log.Debug().Err(err).Msg("Light sample failed, keeping last reading")
	} else {
		c.snap.Light = light
		datadog.Gauge("env.light", float64(light))
	}
}

// sampleComfortIndex polls for a presented tag and adopts its stored value.
// Updates inside the deadband are ignored so re-reading the same tag over
// and over does not retrigger anything.
func (c *Controller) sampleComfortIndex(now time.Time) {
	if c.mode != model.ModeSecurity && c.mode != model.ModeMonitor {
		return
	}

	value, err := tag.ReadIndex(c.hw.Tags, tagPollTimeout)
	if err != nil {
		// No tag in the field most of the time; nothing to do.
		return
	}
	if math.Abs(value-c.snap.ComfortIndex) <= indexDeadband {
		return
	}

	c.snap.ComfortIndex = value
	c.forcedVent = value > forcedVentThreshold
	datadog.Gauge("env.comfort_index", value)
	log.Info().
		Float64("comfort_index", value).
		Bool("forced_ventilation", c.forcedVent).
		Msg("Comfort index updated from tag")
}

// refreshDisplay renders the monitor status screen.
func (c *Controller) refreshDisplay(now time.Time) {
	if c.mode != model.ModeMonitor {
		return
	}
	c.show(0, fmt.Sprintf("T %.1fC  H %.0f%%", c.snap.Temperature, c.snap.Humidity))
	c.show(1, fmt.Sprintf("CI %+.1f  L %d", c.snap.ComfortIndex, c.snap.Light))
}

// cycleFan duty-cycles the fan while cooling. Forced ventilation pins it on
// regardless of where the duty cycle stands.
func (c *Controller) cycleFan(now time.Time) {
	if c.mode != model.ModeCooling {
		return
	}
	if c.forcedVent {
		c.set(c.hw.Fan, true)
		return
	}

	phase := now.Sub(c.fanCycleStart) % (fanDutyOn + fanDutyOff)
	c.set(c.hw.Fan, phase < fanDutyOn)
}
