package sermon

import "sync"

// Meta is the current sermon record shown on the display page. It lives for
// the lifetime of the process, is never persisted, and resets to defaults on
// restart.
type Meta struct {
	Title      string `json:"title"`
	Speaker    string `json:"speaker"`
	Translator string `json:"translator"`
	Pianist    string `json:"pianist"`
	Hymn1      string `json:"hymn1"`
	Hymn2      string `json:"hymn2"`
}

// Patch is a partial update to Meta. Only non-nil fields overwrite the
// corresponding field of the held record; JSON keys that match no field are
// ignored.
type Patch struct {
	Title      *string `json:"title"`
	Speaker    *string `json:"speaker"`
	Translator *string `json:"translator"`
	Pianist    *string `json:"pianist"`
	Hymn1      *string `json:"hymn1"`
	Hymn2      *string `json:"hymn2"`
}

func DefaultMeta() Meta {
	return Meta{
		Title:      "Sunday Service",
		Speaker:    "Pastor John",
		Translator: "Sister Mary",
		Pianist:    "Brother David",
		Hymn1:      "324",
		Hymn2:      "156",
	}
}

// Publisher pushes state changes to connected viewer sessions.
type Publisher interface {
	Publish(name string, data any)
}

// Holder owns the single mutable sermon record. All mutation goes through
// Update; the mutex keeps read-merge-publish atomic with respect to
// concurrent updates (last write wins, no conflict resolution).
type Holder struct {
	mu   sync.Mutex
	meta Meta
	hub  Publisher
}

func NewHolder(hub Publisher) *Holder {
	return &Holder{meta: DefaultMeta(), hub: hub}
}

// Get returns a snapshot of the current record.
func (h *Holder) Get() Meta {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.meta
}

// Join invokes register with the current record while the lock is held, so
// a viewer registration (meta replay plus broadcast-set insertion) cannot
// interleave with an Update. Any update started during register is ordered
// strictly after it and reaches the newly registered viewer as a broadcast.
// register must not call back into the holder.
func (h *Holder) Join(register func(meta Meta)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	register(h.meta)
}

// Update merges the patch into the held record, broadcasts the merged
// record to all viewers, and returns it.
func (h *Holder) Update(p Patch) Meta {
	h.mu.Lock()
	defer h.mu.Unlock()

	if p.Title != nil {
		h.meta.Title = *p.Title
	}
	if p.Speaker != nil {
		h.meta.Speaker = *p.Speaker
	}
	if p.Translator != nil {
		h.meta.Translator = *p.Translator
	}
	if p.Pianist != nil {
		h.meta.Pianist = *p.Pianist
	}
	if p.Hymn1 != nil {
		h.meta.Hymn1 = *p.Hymn1
	}
	if p.Hymn2 != nil {
		h.meta.Hymn2 = *p.Hymn2
	}

	h.hub.Publish("sermon-meta-updated", h.meta)
	return h.meta
}
