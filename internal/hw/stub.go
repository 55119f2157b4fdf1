package hw

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Stub implementations back the controller when safe mode is enabled:
// actuator writes go nowhere, sensors report "no sample" and the snapshot
// stays at its defaults. The control loop itself runs unmodified.

type StubLine struct {
	Name string
	on   bool
}

func (s *StubLine) Set(on bool) error {
	if s.on != on {
		log.Debug().Str("line", s.Name).Bool("on", on).Msg("safe mode: line change suppressed")
	}
	s.on = on
	return nil
}

func (s *StubLine) Get() (bool, error) {
	return s.on, nil
}

func (s *StubLine) Close() error { return nil }

type StubAnalog struct{}

func (StubAnalog) Read() (int, error) {
	return 0, ErrNoSample
}

type StubClimate struct{}

func (StubClimate) Read() (float64, float64, error) {
	return 0, 0, ErrNoSample
}

type StubKeypad struct{}

func (StubKeypad) NextKey() (byte, bool) {
	return 0, false
}

func (StubKeypad) Close() error { return nil }

type StubDisplay struct{}

func (StubDisplay) WriteLine(row int, text string) error {
	log.Debug().Int("row", row).Str("text", text).Msg("display")
	return nil
}

func (StubDisplay) Clear() error {
	return nil
}

type StubTagReader struct{}

func (StubTagReader) ReadBlock(timeout time.Duration, sector, block int) ([]byte, error) {
	return nil, ErrNoTag
}

func (StubTagReader) WriteBlock(timeout time.Duration, sector, block int, data [16]byte) error {
	return ErrNoTag
}

func (StubTagReader) ReadUID(timeout time.Duration) ([]byte, error) {
	return nil, ErrNoTag
}
