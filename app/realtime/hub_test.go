package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSubscriber struct {
	events []Event
	full   bool
	closed bool
}

func (f *fakeSubscriber) Send(ev Event) bool {
	if f.full {
		return false
	}
	f.events = append(f.events, ev)
	return true
}

func (f *fakeSubscriber) Close() { f.closed = true }

func TestHub_PublishFansOutToAllSessions(t *testing.T) {
	hub := NewHub()
	a := &fakeSubscriber{}
	b := &fakeSubscriber{}
	hub.Add(a)
	hub.Add(b)

	hub.Publish("bible-results", map[string]string{"bookName": "創世記"})

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
	assert.Equal(t, "bible-results", a.events[0].Name)
	assert.Equal(t, a.events[0], b.events[0])
}

func TestHub_PublishWithZeroSessionsIsNoOp(t *testing.T) {
	hub := NewHub()
	assert.NotPanics(t, func() {
		hub.Publish("sermon-meta-updated", nil)
	})
	assert.Equal(t, 0, hub.Count())
}

func TestHub_SlowSessionIsDropped(t *testing.T) {
	hub := NewHub()
	slow := &fakeSubscriber{full: true}
	ok := &fakeSubscriber{}
	hub.Add(slow)
	hub.Add(ok)

	hub.Publish("hymn-results", nil)

	assert.Equal(t, 1, hub.Count())
	assert.True(t, slow.closed)
	assert.Len(t, ok.events, 1)

	// The dropped session misses everything from here on.
	hub.Publish("hymn-results", nil)
	assert.Empty(t, slow.events)
	assert.Len(t, ok.events, 2)
}

func TestHub_RemovedSessionMissesUpdates(t *testing.T) {
	hub := NewHub()
	s := &fakeSubscriber{}
	hub.Add(s)
	hub.Publish("announcements-updated", nil)
	hub.Remove(s)
	hub.Publish("announcements-updated", nil)

	assert.Len(t, s.events, 1)
}
