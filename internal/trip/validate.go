package trip

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	FieldLine       = "line"
	FieldTrack      = "track"
	FieldDate       = "date"
	FieldTechnician = "technician"
	FieldPKStart    = "pkStart"
	FieldPKEnd      = "pkEnd"
	FieldElement    = "element"
	FieldDefect     = "defect"
	FieldPhoto      = "photo"
	FieldLocation   = "location"
)

// FieldErrors maps a form field (its JSON name) to a user-facing message.
// It is a correctable input problem, never a system fault.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// AsFieldErrors extracts FieldErrors from err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateDetails checks the first wizard step. PK bounds must be numeric and the date, when
// present, an ISO calendar date. The input is never modified.
func ValidateDetails(d Details) error {
	d.PKStart = strings.TrimSpace(d.PKStart)
	d.PKEnd = strings.TrimSpace(d.PKEnd)
	d.Date = strings.TrimSpace(d.Date)
	if errs := validateStruct(d); len(errs) > 0 {
		return errs
	}
	return nil
}

func validateStruct(s any) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		field := fe.Field()
		if field == "lat" || field == "lng" {
			field = FieldLocation
		}
		if _, exists := out[field]; exists {
			continue
		}
		out[field] = fieldMessage(field, fe.Tag())
	}
	return out
}

func fieldMessage(field, tag string) string {
	switch field {
	case FieldPKStart:
		if tag == "required" {
			return "Introduzca el PK de inicio."
		}
		return "El PK de inicio debe ser un valor numérico."
	case FieldPKEnd:
		if tag == "required" {
			return "Introduzca el PK de fin."
		}
		return "El PK de fin debe ser un valor numérico."
	case FieldDate:
		return "La fecha debe tener el formato AAAA-MM-DD."
	case FieldElement:
		return "Seleccione un elemento."
	case FieldDefect:
		return "Seleccione un defecto."
	case FieldLocation:
		return "Coordenadas fuera de rango."
	default:
		return "Valor no válido."
	}
}
