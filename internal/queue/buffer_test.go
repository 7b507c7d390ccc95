package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventBuffer_AddAndDrain(t *testing.T) {
	var buf EventBuffer
	assert.Equal(t, 0, buf.Len())

	buf.Add(PostCreatedEvent{ID: 1, Title: "first"})
	buf.Add(PostUpdatedEvent{ID: 1, Title: "second", UpdatedAt: time.Now()})
	assert.Equal(t, 2, buf.Len())

	events := buf.Drain()
	assert.Len(t, events, 2)
	assert.Equal(t, KindPostCreated, events[0].Kind())
	assert.Equal(t, KindPostUpdated, events[1].Kind())

	// Drain clears the buffer; a second drain yields nothing.
	assert.Equal(t, 0, buf.Len())
	assert.Empty(t, buf.Drain())
}

func TestEventBuffer_ZeroValueIsUsable(t *testing.T) {
	var buf EventBuffer
	assert.Empty(t, buf.Drain())
}
