package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordAndListProvisionedTags(t *testing.T) {
	conn, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory DB: %v", err)
	}
	defer conn.Close()

	now := time.Now().UTC().Truncate(time.Second)
	assert.NoError(t, RecordProvisionedTag(conn, "04a1b2c3", -2.0, now))
	assert.NoError(t, RecordProvisionedTag(conn, "04d4e5f6", 2.0, now.Add(time.Minute)))

	tags, err := ListProvisionedTags(conn)
	assert.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.Equal(t, "04a1b2c3", tags[0].UID)
	assert.Equal(t, -2.0, tags[0].ComfortIndex)
	assert.Equal(t, now, tags[0].ProvisionedAt)
	assert.Equal(t, "04d4e5f6", tags[1].UID)
	assert.Equal(t, 2.0, tags[1].ComfortIndex)
}

func TestListProvisionedTagsEmpty(t *testing.T) {
	conn, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory DB: %v", err)
	}
	defer conn.Close()

	tags, err := ListProvisionedTags(conn)
	assert.NoError(t, err)
	assert.Empty(t, tags)
}
