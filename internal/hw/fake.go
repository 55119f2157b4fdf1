package hw

import (
	"errors"
	"time"
)

// FakeLine is a test double for a digital line.
type FakeLine struct {
	On      bool
	SetErr  error
	Toggles int // counts Set calls that changed the level
}

func (f *FakeLine) Set(on bool) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	if f.On != on {
		f.Toggles++
	}
	f.On = on
	return nil
}

func (f *FakeLine) Get() (bool, error) {
	return f.On, nil
}

// FakeAnalog returns scripted raw samples. When samples are exhausted the
// last one is returned repeatedly.
type FakeAnalog struct {
	Samples []int
	Err     error

	index int
}

func (f *FakeAnalog) Read() (int, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}
	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s, nil
}

// ClimateSample is a single scripted temperature/humidity reading.
type ClimateSample struct {
	Temperature float64
	Humidity    float64
}

// FakeClimate returns scripted climate samples, repeating the last one once
// exhausted.
type FakeClimate struct {
	Samples []ClimateSample
	Err     error

	index int
}

func (f *FakeClimate) Read() (float64, float64, error) {
	if f.Err != nil {
		return 0, 0, f.Err
	}
	if len(f.Samples) == 0 {
		return 0, 0, errors.New("no samples configured")
	}
	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s.Temperature, s.Humidity, nil
}

// FakeKeypad pops keys from a queue; an empty queue means no key pending.
type FakeKeypad struct {
	Keys []byte
}

func (f *FakeKeypad) Press(keys ...byte) {
	f.Keys = append(f.Keys, keys...)
}

func (f *FakeKeypad) NextKey() (byte, bool) {
	if len(f.Keys) == 0 {
		return 0, false
	}
	k := f.Keys[0]
	f.Keys = f.Keys[1:]
	return k, true
}

// FakeDisplay records the current text per row plus every write, so tests
// can assert both final content and intermediate prompts.
type FakeDisplay struct {
	Rows    [2]string
	History []string
	Cleared int
}

func (f *FakeDisplay) WriteLine(row int, text string) error {
	if row >= 0 && row < len(f.Rows) {
		f.Rows[row] = text
	}
	f.History = append(f.History, text)
	return nil
}

func (f *FakeDisplay) Clear() error {
	f.Cleared++
	f.Rows = [2]string{}
	return nil
}

// FakeTagReader simulates a tag being presented or absent. Block contents
// are shared across all sectors for simplicity; the core only ever uses one.
type FakeTagReader struct {
	Present bool
	UID     []byte
	Block   [16]byte
	Err     error

	Reads  int
	Writes int
}

func (f *FakeTagReader) ReadBlock(timeout time.Duration, sector, block int) ([]byte, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if !f.Present {
		return nil, ErrNoTag
	}
	f.Reads++
	out := make([]byte, len(f.Block))
	copy(out, f.Block[:])
	return out, nil
}

func (f *FakeTagReader) WriteBlock(timeout time.Duration, sector, block int, data [16]byte) error {
	if f.Err != nil {
		return f.Err
	}
	if !f.Present {
		return ErrNoTag
	}
	f.Writes++
	f.Block = data
	return nil
}

func (f *FakeTagReader) ReadUID(timeout time.Duration) ([]byte, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if !f.Present {
		return nil, ErrNoTag
	}
	return f.UID, nil
}
