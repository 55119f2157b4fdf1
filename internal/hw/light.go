package hw

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// ADSLightSensor samples a photoresistor divider on channel 0 of an ADS1115
// ADC. Readings are raw converter counts, uncalibrated.
type ADSLightSensor struct {
	pin ads1x15.PinADC
}

func NewADSLightSensor(bus i2c.Bus) (*ADSLightSensor, error) {
	adc, err := ads1x15.NewADS1115(bus, &ads1x15.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("init ads1115: %w", err)
	}
	pin, err := adc.PinForChannel(ads1x15.Channel0, 3300*physic.MilliVolt, 1*physic.Hertz, ads1x15.SaveEnergy)
	if err != nil {
		return nil, fmt.Errorf("configure adc channel: %w", err)
	}
	return &ADSLightSensor{pin: pin}, nil
}

func (s *ADSLightSensor) Read() (int, error) {
	sample, err := s.pin.Read()
	if err != nil {
		return 0, fmt.Errorf("read light level: %w", err)
	}
	return int(sample.Raw), nil
}

func (s *ADSLightSensor) Close() error {
	return s.pin.Halt()
}
