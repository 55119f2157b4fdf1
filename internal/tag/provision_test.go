package tag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/skaurud/comfort-controller/internal/hw"
)

func TestProvisionerWritesEachPreset(t *testing.T) {
	reader := &hw.FakeTagReader{Present: true, UID: []byte{0x04, 0xA1}}

	var recorded []float64
	p := &Provisioner{
		Reader:  reader,
		Wait:    time.Millisecond,
		Presets: []float64{-2.0, 2.0},
		OnProvisioned: func(uid []byte, value float64) error {
			assert.Equal(t, []byte{0x04, 0xA1}, uid)
			recorded = append(recorded, value)
			return nil
		},
	}

	assert.NoError(t, p.Run())
	assert.Equal(t, []float64{-2.0, 2.0}, recorded)
	assert.Equal(t, 2, reader.Writes)

	// The last preset is what remains on the (shared fake) tag.
	v, err := ReadIndex(reader, time.Millisecond)
	assert.NoError(t, err)
	assert.InDelta(t, 2.0, v, 0.0001)
}

func TestProvisionerAbortsWhenWindowExpires(t *testing.T) {
	reader := &hw.FakeTagReader{Present: false}

	p := &Provisioner{
		Reader:  reader,
		Wait:    time.Millisecond,
		Presets: []float64{-2.0, 2.0},
	}

	err := p.Run()
	assert.ErrorIs(t, err, hw.ErrNoTag)
	assert.Equal(t, 0, reader.Writes)
}
