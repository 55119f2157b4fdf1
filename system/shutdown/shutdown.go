package shutdown

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/skaurud/comfort-controller/internal/hw"
)

// Quiesce drives every given line to its off level. Called on orderly
// shutdown and before a fatal exit so no actuator is left energized.
func Quiesce(lines ...hw.Line) {
	for _, line := range lines {
		if line == nil {
			continue
		}
		if err := line.Set(false); err != nil {
			log.Error().Err(err).Msg("Failed to de-energize line during shutdown")
		}
	}
	log.Info().Msg("All actuators de-energized")
}

// WithError quiesces and exits non-zero.
func WithError(err error, msg string, lines ...hw.Line) {
	log.Error().Err(err).Msg(msg)
	Quiesce(lines...)
	os.Exit(1)
}
