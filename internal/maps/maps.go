// Package maps builds map references for geolocated anomalies.
package maps

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jbonatakis/cabinlog/internal/trip"
)

const (
	UnavailableMessage = "No hay anomalías con geolocalización o la clave de API de Google Maps no está configurada."

	embedBaseURL  = "https://www.google.com/maps/embed/v1"
	staticBaseURL = "https://maps.googleapis.com/maps/api/staticmap"

	placeZoom  = "17"
	staticZoom = "18"
	staticSize = "640x480"
	mapType    = "satellite"
	markerHue  = "0x1A4488"
)

// Link returns an interactive satellite map reference for points. A single point opens a
// place view; several points become a route (first origin, last destination, the rest
// waypoints in order). It reports false when key is empty or there are no points.
func Link(key string, points []trip.Location) (string, bool) {
	if key == "" || len(points) == 0 {
		return "", false
	}
	v := url.Values{}
	v.Set("key", key)
	v.Set("maptype", mapType)

	if len(points) == 1 {
		v.Set("q", coord(points[0]))
		v.Set("zoom", placeZoom)
		return embedBaseURL + "/place?" + v.Encode(), true
	}

	v.Set("origin", coord(points[0]))
	v.Set("destination", coord(points[len(points)-1]))
	if mid := points[1 : len(points)-1]; len(mid) > 0 {
		parts := make([]string, len(mid))
		for i, p := range mid {
			parts[i] = coord(p)
		}
		v.Set("waypoints", strings.Join(parts, "|"))
	}
	return embedBaseURL + "/directions?" + v.Encode(), true
}

// StaticImageURL returns a static satellite image reference centered on one point.
func StaticImageURL(key string, center trip.Location) (string, bool) {
	if key == "" {
		return "", false
	}
	v := url.Values{}
	v.Set("center", coord(center))
	v.Set("zoom", staticZoom)
	v.Set("size", staticSize)
	v.Set("maptype", mapType)
	v.Set("markers", "color:"+markerHue+"|"+coord(center))
	v.Set("key", key)
	return staticBaseURL + "?" + v.Encode(), true
}

// Points extracts the coordinates of located anomalies, in list order.
func Points(anomalies trip.Anomalies) []trip.Location {
	var out []trip.Location
	for _, a := range anomalies {
		if a.Location != nil {
			out = append(out, *a.Location)
		}
	}
	return out
}

func coord(l trip.Location) string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}
