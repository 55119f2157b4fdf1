package main

import (
	"fmt"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/mfrc522"
	"periph.io/x/host/v3"

	"github.com/skaurud/comfort-controller/internal/config"
	"github.com/skaurud/comfort-controller/internal/hw"
)

func openTagReader(cfg config.Config) (hw.TagReader, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}
	port, err := spireg.Open(cfg.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("open spi port: %w", err)
	}
	reset := gpioreg.ByName(fmt.Sprintf("GPIO%d", *cfg.Pins.RFIDReset))
	irq := gpioreg.ByName(fmt.Sprintf("GPIO%d", *cfg.Pins.RFIDIRQ))
	if reset == nil || irq == nil {
		return nil, fmt.Errorf("rfid control pins not available")
	}
	return hw.NewRC522Reader(port, reset, irq, mfrc522.DefaultKey)
}
