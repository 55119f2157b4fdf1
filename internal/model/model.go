package model

type Mode string

const (
	ModeSecurity Mode = "security"
	ModeMonitor  Mode = "monitor"
	ModeCooling  Mode = "cooling"
	ModeHeating  Mode = "heating"
	ModeAlarm    Mode = "alarm"
	ModeLockout  Mode = "lockout"
)

// Snapshot holds the last-known environmental readings. Values are sticky:
// a failed sample leaves the previous reading in place.
type Snapshot struct {
	Temperature  float64
	Humidity     float64
	Light        int
	ComfortIndex float64
}
