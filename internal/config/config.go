package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/rs/zerolog"
)

type Pins struct {
	// actuators and indicators
	Fan      *int `json:"fan"`
	Heater   *int `json:"heater"`
	Buzzer   *int `json:"buzzer"`
	RedLED   *int `json:"red_led"`
	GreenLED *int `json:"green_led"`
	BlueLED  *int `json:"blue_led"`

	// keypad matrix
	KeypadRow1 *int `json:"keypad_row_1"`
	KeypadRow2 *int `json:"keypad_row_2"`
	KeypadRow3 *int `json:"keypad_row_3"`
	KeypadRow4 *int `json:"keypad_row_4"`
	KeypadCol1 *int `json:"keypad_col_1"`
	KeypadCol2 *int `json:"keypad_col_2"`
	KeypadCol3 *int `json:"keypad_col_3"`
	KeypadCol4 *int `json:"keypad_col_4"`

	// tag reader control lines
	RFIDReset *int `json:"rfid_reset"`
	RFIDIRQ   *int `json:"rfid_irq"`
}

type Config struct {
	ConfigFile string
	LogLevel   zerolog.Level
	LogFile    string
	SafeMode   bool

	AccessCode string `json:"access_code"`

	GPIOChip        string `json:"gpio_chip"`
	I2CBus          string `json:"i2c_bus"`
	DisplayAddr     byte   `json:"display_addr"`
	SPIPort         string `json:"spi_port"`
	CycleIntervalMS int    `json:"cycle_interval_ms"`

	EnableDatadog bool     `json:"enable_datadog"`
	DDAgentAddr   string   `json:"dd_agent_addr"`
	DDNamespace   string   `json:"dd_namespace"`
	DDTags        []string `json:"dd_tags"`

	Pins Pins `json:"pins"`
}

func Load() Config {
	var cfg Config
	var logLevel string

	flag.StringVar(&cfg.ConfigFile, "config-file", "config.json", "Path to controller config file")
	flag.StringVar(&cfg.LogFile, "log-file", "", "Log file path (empty logs to stderr)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&cfg.SafeMode, "safe-mode", false, "Run against no-op hardware")
	flag.Parse()

	cfg.LogLevel = ParseLogLevel(logLevel)

	if err := cfg.loadFile(cfg.ConfigFile); err != nil {
		panic("Failed to load config file: " + err.Error())
	}

	cfg.validate()
	return cfg
}

// LoadFile reads just the JSON config, for commands that register their own
// flags.
func LoadFile(path string) (Config, error) {
	var cfg Config
	cfg.ConfigFile = path
	if err := cfg.loadFile(path); err != nil {
		return cfg, err
	}
	cfg.validate()
	return cfg, nil
}

func (cfg *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return err
	}

	if cfg.AccessCode == "" {
		cfg.AccessCode = "1234"
	}
	if cfg.GPIOChip == "" {
		cfg.GPIOChip = "gpiochip0"
	}
	if cfg.I2CBus == "" {
		cfg.I2CBus = "1"
	}
	if cfg.DisplayAddr == 0 {
		cfg.DisplayAddr = 0x27
	}
	if cfg.SPIPort == "" {
		cfg.SPIPort = "SPI0.0"
	}
	if cfg.CycleIntervalMS == 0 {
		cfg.CycleIntervalMS = 10
	}
	return nil
}

func ParseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (cfg *Config) validate() {
	var (
		missingFields []string
		usedPins      = map[int]string{}
		conflicts     []string
	)

	if len(cfg.AccessCode) != 4 {
		panic(fmt.Sprintf("Access code must be exactly 4 digits, got %q", cfg.AccessCode))
	}
	for _, c := range cfg.AccessCode {
		if c < '0' || c > '9' {
			panic(fmt.Sprintf("Access code must be exactly 4 digits, got %q", cfg.AccessCode))
		}
	}

	v := reflect.ValueOf(cfg.Pins)
	t := reflect.TypeOf(cfg.Pins)

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldName := t.Field(i).Tag.Get("json")

		if field.IsNil() {
			missingFields = append(missingFields, "pins."+fieldName)
			continue
		}

		pin := int(field.Elem().Int())
		if other, exists := usedPins[pin]; exists {
			conflicts = append(conflicts, fmt.Sprintf("pins.%s and pins.%s both use pin %d", fieldName, other, pin))
		} else {
			usedPins[pin] = fieldName
		}
	}

	if len(missingFields) > 0 {
		panic("Missing required pin config fields: " + strings.Join(missingFields, ", "))
	}
	if len(conflicts) > 0 {
		panic("Conflicting GPIO pins: " + strings.Join(conflicts, ", "))
	}
}
