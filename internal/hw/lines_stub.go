//go:build !linux

package hw

import "errors"

// GPIO character device access requires Linux. These constructors exist so
// the tree builds on development machines; safe mode covers actual use.

type CdevLine = StubLine

func RequestOutputLine(chip string, offset int, activeHigh bool) (*CdevLine, error) {
	return nil, errors.New("gpio lines not supported on this platform (requires Linux)")
}

type MatrixKeypad = StubKeypad

func NewMatrixKeypad(chip string, rowPins, colPins [4]int) (*MatrixKeypad, error) {
	return nil, errors.New("keypad scanning not supported on this platform (requires Linux)")
}
