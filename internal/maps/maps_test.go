package maps

import (
	"net/url"
	"strings"
	"testing"

	"github.com/jbonatakis/cabinlog/internal/trip"
)

func parse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestLinkUnavailable(t *testing.T) {
	if _, ok := Link("", []trip.Location{{Lat: 1, Lng: 2}}); ok {
		t.Fatalf("missing key must be unavailable")
	}
	if _, ok := Link("k", nil); ok {
		t.Fatalf("no points must be unavailable")
	}
}

func TestLinkSinglePointUsesPlace(t *testing.T) {
	raw, ok := Link("k", []trip.Location{{Lat: 40.0712, Lng: -2.1354}})
	if !ok {
		t.Fatalf("expected link")
	}
	u := parse(t, raw)
	if !strings.HasSuffix(u.Path, "/place") {
		t.Fatalf("path = %q, want place", u.Path)
	}
	q := u.Query()
	if q.Get("q") != "40.0712,-2.1354" || q.Get("zoom") != "17" || q.Get("maptype") != "satellite" || q.Get("key") != "k" {
		t.Fatalf("unexpected query: %v", q)
	}
}

func TestLinkRouteThroughAllPoints(t *testing.T) {
	points := []trip.Location{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}, {Lat: 3, Lng: 3}, {Lat: 4.5, Lng: -4.5}}
	raw, ok := Link("k", points)
	if !ok {
		t.Fatalf("expected link")
	}
	u := parse(t, raw)
	if !strings.HasSuffix(u.Path, "/directions") {
		t.Fatalf("path = %q, want directions", u.Path)
	}
	q := u.Query()
	if q.Get("origin") != "1,1" || q.Get("destination") != "4.5,-4.5" || q.Get("waypoints") != "2,2|3,3" {
		t.Fatalf("unexpected route: %v", q)
	}
}

func TestLinkTwoPointsHasNoWaypoints(t *testing.T) {
	raw, _ := Link("k", []trip.Location{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}})
	if _, ok := parse(t, raw).Query()["waypoints"]; ok {
		t.Fatalf("two points must not produce waypoints")
	}
}

func TestStaticImageURL(t *testing.T) {
	if _, ok := StaticImageURL("", trip.Location{}); ok {
		t.Fatalf("missing key must be unavailable")
	}
	raw, ok := StaticImageURL("k", trip.Location{Lat: 39.5, Lng: -0.25})
	if !ok {
		t.Fatalf("expected url")
	}
	q := parse(t, raw).Query()
	if q.Get("center") != "39.5,-0.25" || q.Get("maptype") != "satellite" || q.Get("size") != "640x480" {
		t.Fatalf("unexpected query: %v", q)
	}
}

func TestPointsKeepsOrder(t *testing.T) {
	got := Points(trip.SampleTrip().Anomalies)
	if len(got) != 1 || got[0].Lat != 40.0712 {
		t.Fatalf("points = %v", got)
	}
}
