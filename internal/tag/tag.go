// Package tag stores the comfort index on a MIFARE proximity tag as an
// IEEE-754 float32, little-endian at offset 0 of one data block, zero-padded
// to the 16-byte block size.
package tag

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/skaurud/comfort-controller/internal/hw"
)

// Storage location of the comfort index on every tag.
const (
	Sector = 1
	Block  = 0
)

// ReadIndex waits up to timeout for a tag and returns the comfort index
// stored on it.
func ReadIndex(r hw.TagReader, timeout time.Duration) (float64, error) {
	data, err := r.ReadBlock(timeout, Sector, Block)
	if err != nil {
		return 0, err
	}
	if len(data) < 4 {
		return 0, fmt.Errorf("short block read: %d bytes", len(data))
	}
	bits := binary.LittleEndian.Uint32(data[:4])
	v := float64(math.Float32frombits(bits))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("tag holds no valid comfort index")
	}
	return v, nil
}

// WriteIndex waits up to timeout for a tag and stores the comfort index on
// it.
func WriteIndex(r hw.TagReader, timeout time.Duration, value float64) error {
	var block [16]byte
	binary.LittleEndian.PutUint32(block[:4], math.Float32bits(float32(value)))
	return r.WriteBlock(timeout, Sector, Block, block)
}
