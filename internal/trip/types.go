package trip

import "github.com/jbonatakis/cabinlog/internal/catalog"

const (
	// DateLayout is the ISO calendar date format used for Trip.Date.
	DateLayout = "2006-01-02"

	codePrefix    = "VC"
	codeSuffixLen = 5
)

type Location struct {
	Lat float64 `json:"lat" yaml:"lat" validate:"latitude"`
	Lng float64 `json:"lng" yaml:"lng" validate:"longitude"`
}

type Anomaly struct {
	ID       string           `json:"id" yaml:"id"`
	Element  string           `json:"element" yaml:"element"`
	Defect   string           `json:"defect" yaml:"defect"`
	Level    catalog.Severity `json:"level" yaml:"level"`
	PK       string           `json:"pk" yaml:"pk"`
	Notes    string           `json:"notes" yaml:"notes"`
	Photo    string           `json:"photo,omitempty" yaml:"photo,omitempty"`
	Location *Location        `json:"location,omitempty" yaml:"location,omitempty"`
}

// Trip is one cabin ride along a line/track on a given date. Anomalies keep insertion order.
type Trip struct {
	ID         string    `json:"id" yaml:"id"`
	Code       string    `json:"code" yaml:"code"`
	Line       string    `json:"line" yaml:"line"`
	Track      string    `json:"track" yaml:"track"`
	Date       string    `json:"date" yaml:"date"`
	Technician string    `json:"technician" yaml:"technician"`
	PKStart    string    `json:"pkStart" yaml:"pkStart"`
	PKEnd      string    `json:"pkEnd" yaml:"pkEnd"`
	Anomalies  Anomalies `json:"anomalies" yaml:"anomalies"`
	AISummary  string    `json:"aiSummary,omitempty" yaml:"aiSummary,omitempty"`
}

// Details is the subset of a trip captured by the first wizard step.
type Details struct {
	Line       string `json:"line"`
	Track      string `json:"track"`
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Technician string `json:"technician"`
	PKStart    string `json:"pkStart" validate:"required,numeric"`
	PKEnd      string `json:"pkEnd" validate:"required,numeric"`
}

func (t Trip) Details() Details {
	return Details{
		Line:       t.Line,
		Track:      t.Track,
		Date:       t.Date,
		Technician: t.Technician,
		PKStart:    t.PKStart,
		PKEnd:      t.PKEnd,
	}
}

func (t *Trip) ApplyDetails(d Details) {
	t.Line = d.Line
	t.Track = d.Track
	t.Date = d.Date
	t.Technician = d.Technician
	t.PKStart = d.PKStart
	t.PKEnd = d.PKEnd
}

// IsPersisted reports whether the trip has been saved at least once.
func (t Trip) IsPersisted() bool {
	return t.ID != ""
}

func (t Trip) Clone() Trip {
	out := t
	out.Anomalies = t.Anomalies.Clone()
	return out
}

func (a Anomaly) Clone() Anomaly {
	out := a
	if a.Location != nil {
		loc := *a.Location
		out.Location = &loc
	}
	return out
}
