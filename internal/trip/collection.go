package trip

import (
	"strings"
	"time"
)

// Collection is the ordered set of persisted trips, most recently created first.
// Edits never reorder it.
type Collection struct {
	trips     []Trip
	now       func() time.Time
	newID     func() string
	newSuffix func() string
}

func NewCollection(trips []Trip) *Collection {
	c := &Collection{
		now:       time.Now,
		newID:     newID,
		newSuffix: randomSuffix,
	}
	c.trips = make([]Trip, 0, len(trips))
	for _, t := range trips {
		c.trips = append(c.trips, normalize(t))
	}
	return c
}

// CreateOrUpdate saves draft. A draft without id gets a fresh id and code and is prepended.
// A draft with a known id is merged into that record in place; the stored id and code are
// kept, whatever code the draft carries. A draft with an unknown id is prepended as is,
// getting a code only if it has none.
func (c *Collection) CreateOrUpdate(draft Trip) Trip {
	draft = normalize(draft)

	if draft.ID != "" {
		for i := range c.trips {
			if c.trips[i].ID != draft.ID {
				continue
			}
			merged := draft
			merged.ID = c.trips[i].ID
			merged.Code = c.trips[i].Code
			c.trips[i] = merged
			return merged.Clone()
		}
	}

	if draft.ID == "" {
		draft.ID = c.newID()
		draft.Code = ""
	}
	if draft.Code == "" {
		draft.Code = GenerateCode(draft.Date, c.now(), c.newSuffix())
	}
	c.trips = append([]Trip{draft}, c.trips...)
	return draft.Clone()
}

// Delete removes the trip with the given id. Missing ids are a no-op.
func (c *Collection) Delete(id string) bool {
	for i, t := range c.trips {
		if t.ID == id {
			c.trips = append(c.trips[:i:i], c.trips[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Collection) List() []Trip {
	out := make([]Trip, 0, len(c.trips))
	for _, t := range c.trips {
		out = append(out, t.Clone())
	}
	return out
}

func (c *Collection) Len() int {
	return len(c.trips)
}

func (c *Collection) Get(id string) (Trip, bool) {
	for _, t := range c.trips {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return Trip{}, false
}

// Find resolves ref as an id, a code, or a unique code prefix.
func (c *Collection) Find(ref string) (Trip, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Trip{}, false
	}
	if t, ok := c.Get(ref); ok {
		return t, true
	}
	var match *Trip
	for i := range c.trips {
		t := &c.trips[i]
		if strings.EqualFold(t.Code, ref) {
			return t.Clone(), true
		}
		if strings.HasPrefix(strings.ToLower(t.Code), strings.ToLower(ref)) {
			if match != nil {
				return Trip{}, false
			}
			match = t
		}
	}
	if match == nil {
		return Trip{}, false
	}
	return match.Clone(), true
}

// SetSummary stores an accepted AI summary verbatim.
func (c *Collection) SetSummary(id, text string) bool {
	for i := range c.trips {
		if c.trips[i].ID == id {
			c.trips[i].AISummary = text
			return true
		}
	}
	return false
}

func normalize(t Trip) Trip {
	t = t.Clone()
	if t.Anomalies == nil {
		t.Anomalies = Anomalies{}
	}
	return t
}
