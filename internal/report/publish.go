package report

import (
	"path/filepath"

	"github.com/jbonatakis/cabinlog/internal/maps"
	"github.com/jbonatakis/cabinlog/internal/trip"
)

// Publisher renders trips into report files under Dir.
type Publisher struct {
	Dir string
	// MapsKey enables the interactive map link. Empty renders the unavailable text.
	MapsKey string
}

// Publish renders t and writes it to Dir, returning the file path.
func (p Publisher) Publish(t trip.Trip) (string, error) {
	return p.PublishTo(t, filepath.Join(p.Dir, FileName(t.Code)))
}

// PublishTo renders t and writes it to path.
func (p Publisher) PublishTo(t trip.Trip, path string) (string, error) {
	var opts Options
	if link, ok := maps.Link(p.MapsKey, maps.Points(t.Anomalies)); ok {
		opts.MapURL = link
	}
	doc, err := RenderReport(t, opts)
	if err != nil {
		return "", err
	}
	if err := WriteFile(path, doc); err != nil {
		return "", err
	}
	return path, nil
}
