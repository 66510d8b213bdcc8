package catalog

import "testing"

func TestDefaultCatalogShape(t *testing.T) {
	c := Default()
	elements := c.Elements()
	if len(elements) != 11 {
		t.Fatalf("elements = %d, want 11", len(elements))
	}
	if elements[0] != "Carril" || elements[len(elements)-1] != "Túneles" {
		t.Fatalf("unexpected element order: %v", elements)
	}
	for _, el := range c.Entries() {
		if len(el.Defects) == 0 {
			t.Fatalf("element %q has no defects", el.Name)
		}
		for _, d := range el.Defects {
			if !d.Severity.Valid() {
				t.Fatalf("%s/%s: invalid severity %q", el.Name, d.Name, d.Severity)
			}
		}
	}
}

func TestDefaultCatalogIsNotShared(t *testing.T) {
	c := Default()
	entries := c.Entries()
	entries[0].Defects[0].Name = "mutated"

	if got := Default().DefectsFor("Carril")[0].Name; got != "Estado de carril" {
		t.Fatalf("catalog mutated through Entries: %q", got)
	}
	defects := c.DefectsFor("Carril")
	defects[0].Severity = SeverityAL
	if d, _ := c.Lookup("Carril", "Estado de carril"); d.Severity != SeverityIAL {
		t.Fatalf("catalog mutated through DefectsFor: %q", d.Severity)
	}
}

func TestDefectsForUnknownElement(t *testing.T) {
	if got := Default().DefectsFor("Catenaria"); got != nil {
		t.Fatalf("DefectsFor(unknown) = %v, want nil", got)
	}
}

func TestLookup(t *testing.T) {
	c := Default()
	d, ok := c.Lookup("Cerramientos", "Mal estado puntual")
	if !ok {
		t.Fatalf("expected lookup hit")
	}
	if d.Severity != SeverityIL {
		t.Fatalf("severity = %q, want IL", d.Severity)
	}
	if _, ok := c.Lookup("Carril", "Mal estado puntual"); ok {
		t.Fatalf("defect from another element must not match")
	}
}

func TestReconcile(t *testing.T) {
	c := Default()
	tests := []struct {
		name    string
		element string
		current string
		want    string
		wantSev Severity
		wantOK  bool
	}{
		{name: "keeps valid defect", element: "Balasto", current: "Presencia de vegetación", want: "Presencia de vegetación", wantSev: SeverityIAL, wantOK: true},
		{name: "substitutes first defect", element: "Cerramientos", current: "Presencia de vegetación", want: "Mal estado general", wantSev: SeverityIAL, wantOK: true},
		{name: "empty current picks first", element: "Cartelones", current: "", want: "Mala colocación", wantSev: SeverityIAL, wantOK: true},
		{name: "shared defect name kept across elements", element: "Traviesas Madera", current: "Estado de la traviesa", want: "Estado de la traviesa", wantSev: SeverityIAL, wantOK: true},
		{name: "unknown element", element: "Catenaria", current: "x", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := c.Reconcile(tt.element, tt.current)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if d.Name != tt.want || d.Severity != tt.wantSev {
				t.Fatalf("Reconcile = %+v, want %q/%q", d, tt.want, tt.wantSev)
			}
		})
	}
}

func TestSeverityRankAndParse(t *testing.T) {
	if !(SeverityIAL.Rank() > SeverityIL.Rank() && SeverityIL.Rank() > SeverityAL.Rank()) {
		t.Fatalf("rank order broken")
	}
	if Severity("XX").Valid() {
		t.Fatalf("unknown severity must be invalid")
	}
	got, err := ParseSeverity(" il ")
	if err != nil || got != SeverityIL {
		t.Fatalf("ParseSeverity = %q, %v", got, err)
	}
	if _, err := ParseSeverity("high"); err == nil {
		t.Fatalf("expected error")
	}
}
