package tag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/skaurud/comfort-controller/internal/hw"
)

func TestWriteThenReadIndex(t *testing.T) {
	reader := &hw.FakeTagReader{Present: true}

	assert.NoError(t, WriteIndex(reader, time.Second, 1.3))
	v, err := ReadIndex(reader, time.Second)
	assert.NoError(t, err)
	assert.InDelta(t, 1.3, v, 0.0001)

	assert.NoError(t, WriteIndex(reader, time.Second, -2.0))
	v, err = ReadIndex(reader, time.Second)
	assert.NoError(t, err)
	assert.InDelta(t, -2.0, v, 0.0001)
}

func TestReadIndexNoTag(t *testing.T) {
	reader := &hw.FakeTagReader{Present: false}
	_, err := ReadIndex(reader, time.Second)
	assert.ErrorIs(t, err, hw.ErrNoTag)
}

func TestReadIndexRejectsGarbage(t *testing.T) {
	reader := &hw.FakeTagReader{Present: true}
	// A factory-fresh block of 0xFF decodes to NaN.
	for i := range reader.Block {
		reader.Block[i] = 0xFF
	}
	_, err := ReadIndex(reader, time.Second)
	assert.Error(t, err)
}

func TestWriteIndexZeroPadsBlock(t *testing.T) {
	reader := &hw.FakeTagReader{Present: true}
	for i := range reader.Block {
		reader.Block[i] = 0xAA
	}

	assert.NoError(t, WriteIndex(reader, time.Second, 2.0))
	for i := 4; i < len(reader.Block); i++ {
		assert.Equal(t, byte(0), reader.Block[i], "byte %d not zeroed", i)
	}
}
