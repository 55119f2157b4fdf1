package tag

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/skaurud/comfort-controller/internal/hw"
)

// Provisioner writes a distinct preset comfort index to each of a series of
// tags presented in sequence. It is an explicit operator step, not part of
// controller start-up.
type Provisioner struct {
	Reader  hw.TagReader
	Wait    time.Duration // per-tag wait window
	Presets []float64

	// Settle is how long to pause after each write so the operator can
	// pull the tag away before the next window opens.
	Settle time.Duration

	// OnProvisioned, if set, is called after each successful write with the
	// tag UID and the value written.
	OnProvisioned func(uid []byte, value float64) error
}

// Run provisions one tag per preset, in order. It blocks up to Wait per tag
// and aborts, returning an error, if a window expires with no tag detected.
func (p *Provisioner) Run() error {
	for i, preset := range p.Presets {
		log.Info().
			Int("tag", i+1).
			Int("of", len(p.Presets)).
			Float64("value", preset).
			Dur("window", p.Wait).
			Msg("Present next tag")

		uid, err := p.Reader.ReadUID(p.Wait)
		if err != nil {
			return fmt.Errorf("tag %d of %d: %w", i+1, len(p.Presets), err)
		}
		if err := WriteIndex(p.Reader, p.Wait, preset); err != nil {
			return fmt.Errorf("write tag %d of %d: %w", i+1, len(p.Presets), err)
		}

		log.Info().
			Hex("uid", uid).
			Float64("value", preset).
			Msg("Tag provisioned")

		if p.OnProvisioned != nil {
			if err := p.OnProvisioned(uid, preset); err != nil {
				return fmt.Errorf("record tag %d of %d: %w", i+1, len(p.Presets), err)
			}
		}

		if p.Settle > 0 {
			time.Sleep(p.Settle)
		}
	}
	return nil
}
