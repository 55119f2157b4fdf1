package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/mfrc522"
	"periph.io/x/host/v3"

	"github.com/skaurud/comfort-controller/internal/config"
	"github.com/skaurud/comfort-controller/internal/controller"
	"github.com/skaurud/comfort-controller/internal/datadog"
	"github.com/skaurud/comfort-controller/internal/hw"
	"github.com/skaurud/comfort-controller/internal/logging"
	"github.com/skaurud/comfort-controller/system/shutdown"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogFile)

	log.Info().
		Str("config_file", cfg.ConfigFile).
		Msg("Starting comfort controller")

	if cfg.EnableDatadog {
		datadog.InitMetrics(cfg.DDAgentAddr, cfg.DDNamespace, cfg.DDTags)
	}

	var hardware controller.Hardware
	if cfg.SafeMode {
		log.Warn().Msg("SAFE MODE ENABLED — running against no-op hardware")
		hardware = stubHardware()
	} else {
		h, err := buildHardware(cfg)
		if err != nil {
			// De-energize whatever was claimed before the failure.
			shutdown.WithError(err, "Failed to initialize hardware",
				h.Fan, h.Heater, h.Buzzer, h.RedLED, h.GreenLED, h.BlueLED)
		}
		hardware = h
	}

	c := controller.New(cfg.AccessCode, hardware)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c.Start(time.Now())
	c.Run(ctx, time.Duration(cfg.CycleIntervalMS)*time.Millisecond)

	shutdown.Quiesce(
		hardware.Fan, hardware.Heater, hardware.Buzzer,
		hardware.RedLED, hardware.GreenLED, hardware.BlueLED,
	)
}

func buildHardware(cfg config.Config) (controller.Hardware, error) {
	var h controller.Hardware

	if _, err := host.Init(); err != nil {
		return h, fmt.Errorf("init periph host: %w", err)
	}

	outputs := []struct {
		name string
		pin  int
		dst  *hw.Line
	}{
		{"fan", *cfg.Pins.Fan, &h.Fan},
		{"heater", *cfg.Pins.Heater, &h.Heater},
		{"buzzer", *cfg.Pins.Buzzer, &h.Buzzer},
		{"red_led", *cfg.Pins.RedLED, &h.RedLED},
		{"green_led", *cfg.Pins.GreenLED, &h.GreenLED},
		{"blue_led", *cfg.Pins.BlueLED, &h.BlueLED},
	}
	for _, out := range outputs {
		line, err := hw.RequestOutputLine(cfg.GPIOChip, out.pin, true)
		if err != nil {
			return h, fmt.Errorf("claim %s line: %w", out.name, err)
		}
		*out.dst = line
	}

	keypad, err := hw.NewMatrixKeypad(cfg.GPIOChip,
		[4]int{*cfg.Pins.KeypadRow1, *cfg.Pins.KeypadRow2, *cfg.Pins.KeypadRow3, *cfg.Pins.KeypadRow4},
		[4]int{*cfg.Pins.KeypadCol1, *cfg.Pins.KeypadCol2, *cfg.Pins.KeypadCol3, *cfg.Pins.KeypadCol4})
	if err != nil {
		return h, fmt.Errorf("claim keypad: %w", err)
	}
	h.Keypad = keypad

	display, err := hw.NewCharDisplay(cfg.I2CBus, cfg.DisplayAddr)
	if err != nil {
		return h, fmt.Errorf("init display: %w", err)
	}
	h.Display = display

	i2cBus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return h, fmt.Errorf("open i2c bus: %w", err)
	}
	climate, err := hw.NewSHT4xSensor(i2cBus, 0x44)
	if err != nil {
		return h, fmt.Errorf("init climate sensor: %w", err)
	}
	h.Climate = climate

	light, err := hw.NewADSLightSensor(i2cBus)
	if err != nil {
		return h, fmt.Errorf("init light sensor: %w", err)
	}
	h.Light = light

	h.Tags, err = openTagReader(cfg)
	if err != nil {
		return h, err
	}

	return h, nil
}

func openTagReader(cfg config.Config) (hw.TagReader, error) {
	port, err := spireg.Open(cfg.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("open spi port: %w", err)
	}
	reset := gpioPin(*cfg.Pins.RFIDReset)
	irq := gpioPin(*cfg.Pins.RFIDIRQ)
	if reset == nil || irq == nil {
		return nil, fmt.Errorf("rfid control pins not available")
	}
	reader, err := hw.NewRC522Reader(port, reset, irq, mfrc522.DefaultKey)
	if err != nil {
		return nil, fmt.Errorf("init tag reader: %w", err)
	}
	return reader, nil
}

func gpioPin(number int) gpio.PinIO {
	return gpioreg.ByName(fmt.Sprintf("GPIO%d", number))
}

func stubHardware() controller.Hardware {
	return controller.Hardware{
		Fan:      &hw.StubLine{Name: "fan"},
		Heater:   &hw.StubLine{Name: "heater"},
		Buzzer:   &hw.StubLine{Name: "buzzer"},
		RedLED:   &hw.StubLine{Name: "red_led"},
		GreenLED: &hw.StubLine{Name: "green_led"},
		BlueLED:  &hw.StubLine{Name: "blue_led"},
		Display:  hw.StubDisplay{},
		Keypad:   hw.StubKeypad{},
		Climate:  hw.StubClimate{},
		Light:    hw.StubAnalog{},
		Tags:     hw.StubTagReader{},
	}
}
