package hw

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/mfrc522"
	"periph.io/x/devices/v3/mfrc522/commands"
)

// RC522Reader talks to MIFARE Classic tags through an MFRC522 module on SPI.
// Every block operation self-contains the detect/authenticate/release cycle,
// so a short timeout makes it usable from the non-blocking control loop.
type RC522Reader struct {
	dev *mfrc522.Dev
	key mfrc522.Key
}

// NewRC522Reader initialises the reader. The key authenticates every sector
// access; tags from the factory use the all-0xFF default key.
func NewRC522Reader(port spi.Port, resetPin, irqPin gpio.PinIO, key mfrc522.Key) (*RC522Reader, error) {
	dev, err := mfrc522.NewSPI(port, resetPin, irqPin)
	if err != nil {
		return nil, fmt.Errorf("init mfrc522: %w", err)
	}
	if err := dev.SetAntennaGain(5); err != nil {
		return nil, fmt.Errorf("set antenna gain: %w", err)
	}
	return &RC522Reader{dev: dev, key: key}, nil
}

func (r *RC522Reader) ReadBlock(timeout time.Duration, sector, block int) ([]byte, error) {
	data, err := r.dev.ReadCard(timeout, byte(commands.PICC_AUTHENT1B), sector, block, r.key)
	if err != nil {
		return nil, fmt.Errorf("read tag block %d.%d: %w", sector, block, err)
	}
	return data, nil
}

func (r *RC522Reader) WriteBlock(timeout time.Duration, sector, block int, data [16]byte) error {
	if err := r.dev.WriteCard(timeout, byte(commands.PICC_AUTHENT1B), sector, block, data, r.key); err != nil {
		return fmt.Errorf("write tag block %d.%d: %w", sector, block, err)
	}
	return nil
}

func (r *RC522Reader) ReadUID(timeout time.Duration) ([]byte, error) {
	uid, err := r.dev.ReadUID(timeout)
	if err != nil {
		return nil, fmt.Errorf("read tag uid: %w", err)
	}
	return uid, nil
}

func (r *RC522Reader) Close() error {
	return r.dev.Halt()
}
