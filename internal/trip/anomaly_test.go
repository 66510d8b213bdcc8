package trip

import (
	"errors"
	"testing"

	"github.com/jbonatakis/cabinlog/internal/catalog"
)

func TestNewAnomalyDerivesSeverityFromCatalog(t *testing.T) {
	cat := catalog.Default()
	for _, el := range cat.Entries() {
		for _, d := range el.Defects {
			a, err := NewAnomaly(cat, AnomalyInput{Element: el.Name, Defect: d.Name, PK: "1.0"})
			if err != nil {
				t.Fatalf("%s/%s: %v", el.Name, d.Name, err)
			}
			if a.Level != d.Severity {
				t.Fatalf("%s/%s: level = %q, want %q", el.Name, d.Name, a.Level, d.Severity)
			}
			if got, ok := cat.Lookup(a.Element, a.Defect); !ok || got.Severity != a.Level {
				t.Fatalf("anomaly %+v inconsistent with catalog", a)
			}
		}
	}
}

func TestNewAnomalyRejectsMissingDefect(t *testing.T) {
	_, err := NewAnomaly(catalog.Default(), AnomalyInput{Element: "Balasto"})
	fe, ok := AsFieldErrors(err)
	if !ok {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if fe[FieldDefect] == "" {
		t.Fatalf("expected defect message, got %v", fe)
	}
}

func TestNewAnomalyRejectsMismatchedPair(t *testing.T) {
	tests := []struct {
		name  string
		in    AnomalyInput
		field string
	}{
		{name: "defect of other element", in: AnomalyInput{Element: "Carril", Defect: "Mal estado puntual"}, field: FieldDefect},
		{name: "unknown element", in: AnomalyInput{Element: "Catenaria", Defect: "Estado"}, field: FieldElement},
		{name: "bad photo", in: AnomalyInput{Element: "Carril", Defect: "Estado de carril", Photo: "javascript:alert(1)"}, field: FieldPhoto},
		{name: "latitude out of range", in: AnomalyInput{Element: "Carril", Defect: "Estado de carril", Location: &Location{Lat: 123, Lng: 0}}, field: FieldLocation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAnomaly(catalog.Default(), tt.in)
			fe, ok := AsFieldErrors(err)
			if !ok {
				t.Fatalf("expected FieldErrors, got %v", err)
			}
			if fe[tt.field] == "" {
				t.Fatalf("expected %s message, got %v", tt.field, fe)
			}
		})
	}
}

func TestAnomaliesAddUpdateRemove(t *testing.T) {
	var l Anomalies
	a := l.Add(Anomaly{Element: "Carril", Defect: "Estado de carril", Level: catalog.SeverityIAL, PK: "1"})
	b := l.Add(Anomaly{Element: "Puentes", Defect: "Deficiente estado apreciable", Level: catalog.SeverityIAL, PK: "2"})
	c := l.Add(Anomaly{Element: "Túneles", Defect: "Deficiente estado apreciable", Level: catalog.SeverityIAL, PK: "3"})

	if a.ID == "" || a.ID == b.ID || b.ID == c.ID {
		t.Fatalf("ids must be unique and non-empty: %q %q %q", a.ID, b.ID, c.ID)
	}

	b.PK = "2.5"
	if !l.Update(b) {
		t.Fatalf("update reported missing")
	}
	if l[1].PK != "2.5" || l[1].ID != b.ID {
		t.Fatalf("update did not keep position: %+v", l)
	}
	if l.Update(Anomaly{ID: "missing"}) {
		t.Fatalf("update of unknown id reported success")
	}

	if !l.Remove(a.ID) {
		t.Fatalf("remove reported missing")
	}
	if l.Remove("missing") {
		t.Fatalf("remove of unknown id reported success")
	}
	if len(l) != 2 || l[0].ID != b.ID || l[1].ID != c.ID {
		t.Fatalf("unexpected list: %+v", l)
	}
}

func TestAnomaliesHelpers(t *testing.T) {
	l := SampleTrip().Anomalies
	counts := l.Counts()
	if counts[catalog.SeverityIAL] != 1 || counts[catalog.SeverityIL] != 1 {
		t.Fatalf("counts = %v", counts)
	}
	if l.HasPhotos() {
		t.Fatalf("sample has no photos")
	}
	if got := l.Located(); len(got) != 1 || got[0].ID != "sample-anomaly-1" {
		t.Fatalf("located = %+v", got)
	}
}

func TestIsImageDataURI(t *testing.T) {
	tests := map[string]bool{
		"data:image/png;base64,iVBORw0KGgo=":  true,
		"data:image/svg+xml;base64,PHN2Zz4=":  true,
		"data:text/html;base64,PHNjcmlwdD4=":  false,
		"data:image/png,raw":                  false,
		"data:image/png;base64,\"><script>":   false,
		"https://example.com/photo.jpg":       false,
		"":                                    false,
	}
	for in, want := range tests {
		if got := IsImageDataURI(in); got != want {
			t.Fatalf("IsImageDataURI(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFieldErrorsMessage(t *testing.T) {
	err := error(FieldErrors{FieldPKStart: "a", FieldDefect: "b"})
	if got := err.Error(); got != "invalid input: defect: b; pkStart: a" {
		t.Fatalf("Error() = %q", got)
	}
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("errors.As failed")
	}
}
