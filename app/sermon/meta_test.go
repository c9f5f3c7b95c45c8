package sermon

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type publishSpy struct {
	names    []string
	payloads []any
}

func (p *publishSpy) Publish(name string, data any) {
	p.names = append(p.names, name)
	p.payloads = append(p.payloads, data)
}

func strPtr(s string) *string { return &s }

func TestHolder_GetReturnsDefaults(t *testing.T) {
	h := NewHolder(&publishSpy{})
	assert.Equal(t, Meta{
		Title:      "Sunday Service",
		Speaker:    "Pastor John",
		Translator: "Sister Mary",
		Pianist:    "Brother David",
		Hymn1:      "324",
		Hymn2:      "156",
	}, h.Get())
}

func TestHolder_UpdateMergesOnlyPresentFields(t *testing.T) {
	spy := &publishSpy{}
	h := NewHolder(spy)

	got := h.Update(Patch{Hymn1: strPtr("200")})

	want := DefaultMeta()
	want.Hymn1 = "200"
	assert.Equal(t, want, got)
	assert.Equal(t, want, h.Get())

	assert.Equal(t, []string{"sermon-meta-updated"}, spy.names)
	assert.Equal(t, want, spy.payloads[0])
}

func TestHolder_UpdateIsIdempotent(t *testing.T) {
	h := NewHolder(&publishSpy{})
	p := Patch{Speaker: strPtr("Elder Wong"), Hymn2: strPtr("77")}

	first := h.Update(p)
	second := h.Update(p)

	assert.Equal(t, first, second)
}

func TestHolder_UpdateEmptyStringOverwrites(t *testing.T) {
	h := NewHolder(&publishSpy{})
	got := h.Update(Patch{Title: strPtr("")})
	assert.Equal(t, "", got.Title)
	assert.Equal(t, "Pastor John", got.Speaker)
}

func TestHolder_JoinSeesCurrentMeta(t *testing.T) {
	h := NewHolder(&publishSpy{})
	title := "Easter Service"
	h.Update(Patch{Title: &title})

	var snapshot Meta
	h.Join(func(m Meta) { snapshot = m })

	assert.Equal(t, "Easter Service", snapshot.Title)
	assert.Equal(t, "Pastor John", snapshot.Speaker)
}

// An update that lands while a viewer is joining must wait until the viewer
// is registered, so the viewer either gets the new value in its replay or
// receives it as a broadcast right after. An update slipping in between
// would leave the viewer with a permanently stale snapshot.
func TestHolder_JoinBlocksConcurrentUpdate(t *testing.T) {
	h := NewHolder(&publishSpy{})

	entered := make(chan struct{})
	release := make(chan struct{})
	var snapshot Meta
	go h.Join(func(m Meta) {
		snapshot = m
		close(entered)
		<-release
	})
	<-entered

	done := make(chan Meta, 1)
	go func() {
		done <- h.Update(Patch{Title: strPtr("Changed")})
	}()

	select {
	case <-done:
		t.Fatal("update completed while a viewer registration was in progress")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	updated := <-done
	assert.Equal(t, "Sunday Service", snapshot.Title)
	assert.Equal(t, "Changed", updated.Title)
}

func TestPatch_UnknownJSONFieldsAreIgnored(t *testing.T) {
	var p Patch
	err := json.Unmarshal([]byte(`{"hymn1":"200","liturgist":"nobody"}`), &p)
	assert.NoError(t, err)

	h := NewHolder(&publishSpy{})
	got := h.Update(p)
	assert.Equal(t, "200", got.Hymn1)
	assert.Equal(t, DefaultMeta().Speaker, got.Speaker)
}
