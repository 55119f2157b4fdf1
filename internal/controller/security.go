package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/skaurud/comfort-controller/internal/datadog"
	"github.com/skaurud/comfort-controller/internal/model"
)

// scanKeypad drains pending key presses. Digits build the credential entry
// in SECURITY; '#' requests release in LOCKOUT; everything else is ignored.
func (c *Controller) scanKeypad(now time.Time) {
	// End of a rejection display window: restore the prompt. Only relevant
	// in SECURITY; a transition out of it resets this state on re-entry.
	if c.mode == model.ModeSecurity && c.rejectFlash && !now.Before(c.rejectedUntil) {
		c.rejectFlash = false
		c.set(c.hw.RedLED, false)
		c.show(0, "Enter code:")
		c.show(1, "")
	}

	key, ok := c.hw.Keypad.NextKey()
	if !ok {
		return
	}

	switch c.mode {
	case model.ModeSecurity:
		c.handleCredentialKey(key, now)
	case model.ModeLockout:
		if key == releaseKey {
			c.releaseRequested = true
			log.Info().Msg("Lockout release requested")
		}
	}
}

// handleCredentialKey appends a digit to the entry and checks the code on
// the fourth one. Digit processing is suppressed while a rejection message
// is on screen.
func (c *Controller) handleCredentialKey(key byte, now time.Time) {
	if now.Before(c.rejectedUntil) {
		return
	}
	if key < '0' || key > '9' {
		return
	}

	c.entry = append(c.entry, key)
	c.show(1, strings.Repeat("*", len(c.entry)))
	if len(c.entry) < accessCodeLen {
		return
	}

	entered := string(c.entry)
	c.entry = c.entry[:0]

	if entered == c.accessCode {
		c.authenticated = true
		log.Info().Msg("Credential accepted")
		return
	}

	c.authFailures++
	c.rejectedUntil = now.Add(rejectionWindow)
	c.rejectFlash = true
	c.set(c.hw.RedLED, true)
	c.show(0, "Wrong code")
	c.show(1, fmt.Sprintf("Attempt %d/%d", c.authFailures, maxAuthFailures))
	datadog.Count("auth.rejected", 1)
	log.Warn().
		Int("failures", c.authFailures).
		Msg("Credential rejected")
}
