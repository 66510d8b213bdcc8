package catalog

import (
	"fmt"
	"strings"
)

type Severity string

const (
	SeverityIAL Severity = "IAL"
	SeverityIL  Severity = "IL"
	SeverityAL  Severity = "AL"
)

// Rank orders severities for reporting emphasis: IAL > IL > AL. Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityIAL:
		return 3
	case SeverityIL:
		return 2
	case SeverityAL:
		return 1
	default:
		return 0
	}
}

func (s Severity) Valid() bool {
	return s.Rank() > 0
}

func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToUpper(strings.TrimSpace(s)))
	if !sev.Valid() {
		return "", fmt.Errorf("invalid severity %q (want IAL, IL or AL)", s)
	}
	return sev, nil
}

// Severities returns all levels, most severe first.
func Severities() []Severity {
	return []Severity{SeverityIAL, SeverityIL, SeverityAL}
}

type Defect struct {
	Name     string   `json:"name" yaml:"name"`
	Severity Severity `json:"level" yaml:"level"`
}

type Element struct {
	Name    string   `json:"element" yaml:"element"`
	Defects []Defect `json:"defects" yaml:"defects"`
}

// Catalog is the ordered reference set of inspectable elements and their known defects.
type Catalog struct {
	elements []Element
}

func New(elements []Element) Catalog {
	return Catalog{elements: cloneElements(elements)}
}

// Default returns the built-in catalog.
func Default() Catalog {
	return New(builtin)
}

// Entries returns a copy of the catalog content in order.
func (c Catalog) Entries() []Element {
	return cloneElements(c.elements)
}

func (c Catalog) Elements() []string {
	out := make([]string, 0, len(c.elements))
	for _, el := range c.elements {
		out = append(out, el.Name)
	}
	return out
}

// DefectsFor returns the defects listed under element, or nil when the element is unknown.
func (c Catalog) DefectsFor(element string) []Defect {
	for _, el := range c.elements {
		if el.Name == element {
			return append([]Defect(nil), el.Defects...)
		}
	}
	return nil
}

func (c Catalog) Lookup(element, defect string) (Defect, bool) {
	for _, d := range c.DefectsFor(element) {
		if d.Name == defect {
			return d, true
		}
	}
	return Defect{}, false
}

// Reconcile applies the element/defect coupling rule. The current defect is kept when the
// element lists it; otherwise the element's first defect is substituted. It reports false
// only when the element is unknown or lists no defects.
func (c Catalog) Reconcile(element, currentDefect string) (Defect, bool) {
	defects := c.DefectsFor(element)
	if len(defects) == 0 {
		return Defect{}, false
	}
	for _, d := range defects {
		if d.Name == currentDefect {
			return d, true
		}
	}
	return defects[0], true
}

func cloneElements(in []Element) []Element {
	out := make([]Element, 0, len(in))
	for _, el := range in {
		out = append(out, Element{
			Name:    el.Name,
			Defects: append([]Defect(nil), el.Defects...),
		})
	}
	return out
}
