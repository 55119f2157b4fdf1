package hw

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/sht4x"
)

// SHT4xSensor reads ambient temperature and relative humidity from a
// Sensirion SHT4x-class sensor over I2C.
type SHT4xSensor struct {
	dev *sht4x.Dev
}

func NewSHT4xSensor(bus i2c.Bus, addr uint16) (*SHT4xSensor, error) {
	dev, err := sht4x.New(bus, i2c.Addr(addr))
	if err != nil {
		return nil, fmt.Errorf("init sht4x: %w", err)
	}
	return &SHT4xSensor{dev: dev}, nil
}

func (s *SHT4xSensor) Read() (float64, float64, error) {
	var env physic.Env
	if err := s.dev.Sense(&env); err != nil {
		return 0, 0, fmt.Errorf("sense climate: %w", err)
	}
	return env.Temperature.Celsius(), float64(env.Humidity) / float64(physic.PercentRH), nil
}

func (s *SHT4xSensor) Close() error {
	return s.dev.Halt()
}
