//go:build linux

package hw

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/warthog618/go-gpiocdev"
)

// CdevLine drives one GPIO line through the Linux GPIO character device.
type CdevLine struct {
	line       *gpiocdev.Line
	activeHigh bool
	on         bool
}

// RequestOutputLine claims a GPIO line as an output, initialised to its safe
// (off) level.
func RequestOutputLine(chip string, offset int, activeHigh bool) (*CdevLine, error) {
	initial := 0
	if !activeHigh {
		initial = 1
	}
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(initial))
	if err != nil {
		return nil, fmt.Errorf("request output line %d on %s: %w", offset, chip, err)
	}
	return &CdevLine{line: line, activeHigh: activeHigh}, nil
}

func (l *CdevLine) Set(on bool) error {
	value := 0
	if on == l.activeHigh {
		value = 1
	}
	if err := l.line.SetValue(value); err != nil {
		return fmt.Errorf("set line value: %w", err)
	}
	l.on = on
	return nil
}

func (l *CdevLine) Get() (bool, error) {
	return l.on, nil
}

func (l *CdevLine) Close() error {
	return l.line.Close()
}

// MatrixKeypad scans a 4x4 keypad: row lines are driven low one at a time
// and column lines (pulled up) are read back. A key is reported once per
// press; holding a key does not repeat it.
type MatrixKeypad struct {
	rows []*gpiocdev.Line
	cols []*gpiocdev.Line
	keys [4][4]byte

	lastKey byte
	held    bool
}

var defaultKeymap = [4][4]byte{
	{'1', '2', '3', 'A'},
	{'4', '5', '6', 'B'},
	{'7', '8', '9', 'C'},
	{'*', '0', '#', 'D'},
}

// NewMatrixKeypad claims the four row pins as outputs (idle high) and the
// four column pins as pulled-up inputs.
func NewMatrixKeypad(chip string, rowPins, colPins [4]int) (*MatrixKeypad, error) {
	kp := &MatrixKeypad{keys: defaultKeymap}

	for _, pin := range rowPins {
		line, err := gpiocdev.RequestLine(chip, pin, gpiocdev.AsOutput(1))
		if err != nil {
			kp.Close()
			return nil, fmt.Errorf("request keypad row pin %d: %w", pin, err)
		}
		kp.rows = append(kp.rows, line)
	}
	for _, pin := range colPins {
		line, err := gpiocdev.RequestLine(chip, pin, gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			kp.Close()
			return nil, fmt.Errorf("request keypad column pin %d: %w", pin, err)
		}
		kp.cols = append(kp.cols, line)
	}
	return kp, nil
}

// NextKey performs one full scan and reports a newly pressed key, if any.
func (kp *MatrixKeypad) NextKey() (byte, bool) {
	pressed := byte(0)

	for r, row := range kp.rows {
		if err := row.SetValue(0); err != nil {
			log.Debug().Err(err).Int("row", r).Msg("keypad row drive failed")
			continue
		}
		for c, col := range kp.cols {
			v, err := col.Value()
			if err != nil {
				log.Debug().Err(err).Int("col", c).Msg("keypad column read failed")
				continue
			}
			if v == 0 {
				pressed = kp.keys[r][c]
			}
		}
		if err := row.SetValue(1); err != nil {
			log.Debug().Err(err).Int("row", r).Msg("keypad row release failed")
		}
	}

	if pressed == 0 {
		kp.held = false
		kp.lastKey = 0
		return 0, false
	}
	if kp.held && pressed == kp.lastKey {
		return 0, false
	}
	kp.held = true
	kp.lastKey = pressed
	return pressed, true
}

func (kp *MatrixKeypad) Close() error {
	for _, line := range kp.rows {
		line.Close()
	}
	for _, line := range kp.cols {
		line.Close()
	}
	return nil
}
