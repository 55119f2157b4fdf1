// Package hw abstracts the controller's peripherals behind small capability
// interfaces so the control logic can run against deterministic fakes.
// Real adapters use the Linux GPIO character device for digital lines and
// keypad scanning, I2C for the display and ambient sensors, and SPI for the
// proximity tag reader.
package hw

import (
	"errors"
	"time"
)

// ErrNoSample is returned by sensor adapters that have nothing to report.
// Callers treat it as "keep the last-known value".
var ErrNoSample = errors.New("no sample available")

// ErrNoTag is returned by tag adapters when the wait window expires without
// a tag being presented.
var ErrNoTag = errors.New("no tag detected")

// Line is a single digital actuator or indicator line. Adapters translate
// logical on/off to the wire level, so callers never see active-high/low.
type Line interface {
	Set(on bool) error
	Get() (bool, error)
}

// AnalogReader samples one analog channel as a raw integer. No calibration
// is applied; thresholds are compared against raw units.
type AnalogReader interface {
	Read() (int, error)
}

// ClimateSensor performs a one-shot temperature and humidity read.
type ClimateSensor interface {
	Read() (temperature, humidity float64, err error)
}

// Keypad returns the next pressed key, or ok=false when no press is pending.
// Keys are ASCII: '0'..'9', '*', '#', 'A'..'D'.
type Keypad interface {
	NextKey() (key byte, ok bool)
}

// Display is a two-line character display addressed by row.
type Display interface {
	WriteLine(row int, text string) error
	Clear() error
}

// TagReader speaks the block-level protocol of a MIFARE-classic style
// proximity tag. Each call waits up to timeout for a tag to be presented,
// authenticates the addressed sector, performs the operation and releases
// the tag. A missing or unreadable tag is reported as an error.
type TagReader interface {
	ReadBlock(timeout time.Duration, sector, block int) ([]byte, error)
	WriteBlock(timeout time.Duration, sector, block int, data [16]byte) error
	ReadUID(timeout time.Duration) ([]byte, error)
}
