package hw

import (
	"fmt"
	"strconv"

	"github.com/kidoman/embd"
	"github.com/kidoman/embd/controller/hd44780"
	_ "github.com/kidoman/embd/host/all"
	"github.com/kidoman/embd/interface/display/characterdisplay"
)

const displayCols = 16

// parseBusNumber converts the config's I2C bus name ("1") to the numeric
// form embd wants. periph takes the string directly, so config keeps one
// field for both.
func parseBusNumber(bus string) (byte, error) {
	n, err := strconv.Atoi(bus)
	if err != nil || n < 0 || n > 255 {
		return 0, fmt.Errorf("invalid i2c bus %q: expected a bus number like \"1\"", bus)
	}
	return byte(n), nil
}

// CharDisplay drives a 16x2 HD44780 character display over an I2C backpack.
type CharDisplay struct {
	disp *characterdisplay.Display
}

func NewCharDisplay(bus string, addr byte) (*CharDisplay, error) {
	busNo, err := parseBusNumber(bus)
	if err != nil {
		return nil, err
	}
	if err := embd.InitI2C(); err != nil {
		return nil, fmt.Errorf("init i2c: %w", err)
	}
	i2cBus := embd.NewI2CBus(busNo)

	ctrl, err := hd44780.NewI2C(i2cBus, addr, hd44780.PCF8574PinMap, hd44780.RowAddress16Col, hd44780.TwoLine, hd44780.BlinkOff)
	if err != nil {
		return nil, fmt.Errorf("init hd44780: %w", err)
	}
	disp := characterdisplay.New(ctrl, displayCols, 2)
	disp.BacklightOn()
	disp.Clear()

	return &CharDisplay{disp: disp}, nil
}

// WriteLine writes text at the start of the given row, space-padded so stale
// characters from a longer previous message are overwritten.
func (d *CharDisplay) WriteLine(row int, text string) error {
	if len(text) > displayCols {
		text = text[:displayCols]
	}
	for len(text) < displayCols {
		text += " "
	}
	if err := d.disp.SetCursor(0, row); err != nil {
		return err
	}
	return d.disp.Message(text)
}

func (d *CharDisplay) Clear() error {
	return d.disp.Clear()
}

func (d *CharDisplay) Close() error {
	d.disp.Clear()
	d.disp.BacklightOff()
	return d.disp.Close()
}
