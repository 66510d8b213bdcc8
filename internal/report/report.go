// Package report renders trips as self-contained HTML documents.
package report

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/jbonatakis/cabinlog/internal/maps"
	"github.com/jbonatakis/cabinlog/internal/trip"
)

const (
	Title     = "Informe de Viaje en Cabina"
	PhotoNote = "Nota: Este informe contiene fotografías. Para verlas, por favor, genere el informe completo desde la aplicación y guárdelo como PDF."

	displayDateLayout = "02/01/2006"
	emptyNotes        = "---"
	noCoords          = "N/A"
)

//go:embed templates/*.tmpl templates/logo.svg
var templateFS embed.FS

var (
	reportTmpl = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))
	emailTmpl  = template.Must(template.ParseFS(templateFS, "templates/email.html.tmpl"))
	logoURI    = mustLogo()
)

// Options controls optional report sections.
type Options struct {
	// MapURL is an interactive map reference for the located anomalies. Empty renders
	// the unavailable explanation instead.
	MapURL string
}

type anomalyRow struct {
	Element string
	Defect  string
	Level   string
	PK      string
	Coords  string
	Notes   string
}

type photoView struct {
	Src     template.URL
	Defect  string
	Element string
	PK      string
}

type view struct {
	Title      string
	Code       string
	Line       string
	Track      string
	Date       string
	Technician string
	PKStart    string
	PKEnd      string
	Anomalies  []anomalyRow
	Summary    string
	HasPhotos  bool
	PhotoNote  string

	Logo           template.URL
	MailtoHref     string
	MapURL         string
	MapUnavailable string
	Photos         []photoView
}

// RenderReport renders the full printable report. All trip text is escaped by the
// template engine; photos are embedded only when they are base64 image data URIs.
func RenderReport(t trip.Trip, opts Options) (string, error) {
	email, err := RenderEmailBody(t)
	if err != nil {
		return "", err
	}
	v := newView(t)
	v.Logo = logoURI
	v.MailtoHref = MailtoHref(t.Code, email)
	v.MapURL = opts.MapURL
	v.MapUnavailable = maps.UnavailableMessage
	for _, a := range t.Anomalies {
		if a.Photo == "" || !trip.IsImageDataURI(a.Photo) {
			continue
		}
		v.Photos = append(v.Photos, photoView{
			Src:     template.URL(a.Photo),
			Defect:  a.Defect,
			Element: a.Element,
			PK:      a.PK,
		})
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render report %s: %w", t.Code, err)
	}
	return buf.String(), nil
}

// RenderEmailBody renders the simplified fragment used as the mail body: no
// coordinates, no photos, a note when photos exist.
func RenderEmailBody(t trip.Trip) (string, error) {
	v := newView(t)
	for i := range v.Anomalies {
		v.Anomalies[i].Coords = ""
	}
	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render email body %s: %w", t.Code, err)
	}
	return buf.String(), nil
}

// MailtoHref builds the mailto: reference with the report subject and body.
func MailtoHref(code, body string) string {
	subject := Title + " - " + html.EscapeString(code)
	return "mailto:?subject=" + encodeURIComponent(subject) + "&body=" + encodeURIComponent(body)
}

// FormatDate renders an ISO date as DD/MM/YYYY, leaving unparsable values as they are.
func FormatDate(date string) string {
	d, err := time.Parse(trip.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return date
	}
	return d.Format(displayDateLayout)
}

func newView(t trip.Trip) view {
	v := view{
		Title:      Title,
		Code:       t.Code,
		Line:       t.Line,
		Track:      t.Track,
		Date:       FormatDate(t.Date),
		Technician: t.Technician,
		PKStart:    t.PKStart,
		PKEnd:      t.PKEnd,
		Summary:    t.AISummary,
		HasPhotos:  t.Anomalies.HasPhotos(),
		PhotoNote:  PhotoNote,
	}
	for _, a := range t.Anomalies {
		row := anomalyRow{
			Element: a.Element,
			Defect:  a.Defect,
			Level:   string(a.Level),
			PK:      a.PK,
			Coords:  noCoords,
			Notes:   a.Notes,
		}
		if a.Location != nil {
			row.Coords = fmt.Sprintf("%.5f, %.5f", a.Location.Lat, a.Location.Lng)
		}
		if row.Notes == "" {
			row.Notes = emptyNotes
		}
		v.Anomalies = append(v.Anomalies, row)
	}
	return v
}

func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func mustLogo() template.URL {
	b, err := templateFS.ReadFile("templates/logo.svg")
	if err != nil {
		panic(err)
	}
	return template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(b))
}
