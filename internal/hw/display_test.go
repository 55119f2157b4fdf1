package hw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBusNumber(t *testing.T) {
	n, err := parseBusNumber("1")
	assert.NoError(t, err)
	assert.Equal(t, byte(1), n)

	n, err = parseBusNumber("0")
	assert.NoError(t, err)
	assert.Equal(t, byte(0), n)

	for _, bad := range []string{"", "x", "-1", "256", "/dev/i2c-1"} {
		_, err := parseBusNumber(bad)
		assert.Error(t, err, "bus %q should be rejected", bad)
	}
}
