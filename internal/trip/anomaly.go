package trip

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jbonatakis/cabinlog/internal/catalog"
)

var newID = uuid.NewString

// Anomalies is one trip's ordered anomaly list. Order is insertion order, never PK order.
type Anomalies []Anomaly

// AnomalyInput is an anomaly as entered in the form, before an id is assigned.
// Severity is not part of the input: it is always derived from the catalog.
type AnomalyInput struct {
	Element  string    `json:"element" validate:"required"`
	Defect   string    `json:"defect" validate:"required"`
	PK       string    `json:"pk"`
	Notes    string    `json:"notes"`
	Photo    string    `json:"photo"`
	Location *Location `json:"location"`
}

// InputOf returns the editable fields of a, e.g. to prefill an edit form.
func InputOf(a Anomaly) AnomalyInput {
	in := AnomalyInput{
		Element: a.Element,
		Defect:  a.Defect,
		PK:      a.PK,
		Notes:   a.Notes,
		Photo:   a.Photo,
	}
	if a.Location != nil {
		loc := *a.Location
		in.Location = &loc
	}
	return in
}

// NewAnomaly validates in against the catalog and builds an anomaly without an id.
// User input problems are returned as FieldErrors.
func NewAnomaly(cat catalog.Catalog, in AnomalyInput) (Anomaly, error) {
	in.Element = strings.TrimSpace(in.Element)
	in.Defect = strings.TrimSpace(in.Defect)
	in.PK = strings.TrimSpace(in.PK)

	if errs := validateStruct(in); len(errs) > 0 {
		return Anomaly{}, errs
	}
	if cat.DefectsFor(in.Element) == nil {
		return Anomaly{}, FieldErrors{FieldElement: "Elemento desconocido en el catálogo."}
	}
	d, ok := cat.Lookup(in.Element, in.Defect)
	if !ok {
		return Anomaly{}, FieldErrors{FieldDefect: "El defecto no corresponde al elemento seleccionado."}
	}
	if in.Photo != "" && !IsImageDataURI(in.Photo) {
		return Anomaly{}, FieldErrors{FieldPhoto: "La fotografía debe ser una imagen codificada en base64."}
	}

	a := Anomaly{
		Element: in.Element,
		Defect:  d.Name,
		Level:   d.Severity,
		PK:      in.PK,
		Notes:   in.Notes,
		Photo:   in.Photo,
	}
	if in.Location != nil {
		loc := *in.Location
		a.Location = &loc
	}
	return a, nil
}

// Add assigns a fresh id to a and appends it.
func (l *Anomalies) Add(a Anomaly) Anomaly {
	a.ID = newID()
	*l = append(*l, a.Clone())
	return a
}

// Update replaces the entry with the same id, keeping its position.
func (l Anomalies) Update(a Anomaly) bool {
	for i := range l {
		if l[i].ID == a.ID {
			l[i] = a.Clone()
			return true
		}
	}
	return false
}

// Remove deletes the entry with the given id. Missing ids are a no-op.
func (l *Anomalies) Remove(id string) bool {
	for i, a := range *l {
		if a.ID == id {
			*l = append((*l)[:i:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

func (l Anomalies) Get(id string) (Anomaly, bool) {
	for _, a := range l {
		if a.ID == id {
			return a.Clone(), true
		}
	}
	return Anomaly{}, false
}

func (l Anomalies) Clone() Anomalies {
	if l == nil {
		return Anomalies{}
	}
	out := make(Anomalies, 0, len(l))
	for _, a := range l {
		out = append(out, a.Clone())
	}
	return out
}

func (l Anomalies) Counts() map[catalog.Severity]int {
	counts := map[catalog.Severity]int{}
	for _, a := range l {
		counts[a.Level]++
	}
	return counts
}

func (l Anomalies) HasPhotos() bool {
	for _, a := range l {
		if a.Photo != "" {
			return true
		}
	}
	return false
}

// Located returns the anomalies that carry coordinates, in list order.
func (l Anomalies) Located() Anomalies {
	var out Anomalies
	for _, a := range l {
		if a.Location != nil {
			out = append(out, a.Clone())
		}
	}
	return out
}

// IsImageDataURI reports whether s looks like "data:image/<type>;base64,<payload>".
func IsImageDataURI(s string) bool {
	rest, ok := strings.CutPrefix(s, "data:image/")
	if !ok {
		return false
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || payload == "" {
		return false
	}
	if !strings.HasSuffix(meta, ";base64") || strings.ContainsAny(meta, "\"'<> ") {
		return false
	}
	for _, r := range payload {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '+', r == '/', r == '=':
		default:
			return false
		}
	}
	return true
}
