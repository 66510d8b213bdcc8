package report

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jbonatakis/cabinlog/internal/catalog"
	"github.com/jbonatakis/cabinlog/internal/maps"
	"github.com/jbonatakis/cabinlog/internal/trip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pngURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func parse(t *testing.T, doc string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	require.NoError(t, err)
	return d
}

func hostileTrip() trip.Trip {
	return trip.Trip{
		ID:         "x",
		Code:       "VC_2024_09_07_abcde",
		Line:       "<script>alert('line')</script>",
		Track:      `"><img src=x onerror=alert(1)>`,
		Date:       "2024-09-07",
		Technician: "O'Brien & Co",
		PKStart:    "0",
		PKEnd:      "10",
		Anomalies: trip.Anomalies{
			{ID: "a", Element: "Carril", Defect: "Estado de carril", Level: catalog.SeverityIAL, PK: "1", Notes: "<script>alert(2)</script>"},
		},
		AISummary: "</p><script>alert(3)</script>",
	}
}

func TestRenderReportEscapesUserText(t *testing.T) {
	doc, err := RenderReport(hostileTrip(), Options{})
	require.NoError(t, err)

	assert.NotContains(t, doc, "<script>")
	assert.NotContains(t, doc, "<img src=x")

	d := parse(t, doc)
	assert.Equal(t, 0, d.Find("script").Length())
	assert.Contains(t, d.Find(".trip-details").Text(), "<script>alert('line')</script>")
	assert.Contains(t, d.Find("#summary").Text(), "</p><script>alert(3)</script>")
}

func TestRenderReportZeroAnomalies(t *testing.T) {
	tr := trip.SampleTrip()
	tr.Anomalies = trip.Anomalies{}

	doc, err := RenderReport(tr, Options{})
	require.NoError(t, err)
	d := parse(t, doc)

	assert.Equal(t, 0, d.Find("table#anomalies").Length())
	assert.Equal(t, "No se registraron anomalías en este viaje.", d.Find("#no-anomalies").Text())
	assert.Equal(t, "Anomalías Registradas (0)", d.Find("#anomalies-title").Text())
	assert.Equal(t, 0, d.Find("#photos").Length())
}

func TestRenderReportDetailsAndRows(t *testing.T) {
	doc, err := RenderReport(trip.SampleTrip(), Options{})
	require.NoError(t, err)
	d := parse(t, doc)

	assert.Contains(t, d.Find(".trip-details").Text(), "07/09/2024")
	assert.Contains(t, d.Find(".trip-details").Text(), "0.0 - 168.5")

	rows := d.Find("table#anomalies tbody tr")
	require.Equal(t, 2, rows.Length())
	first := rows.Eq(0).Find("td")
	assert.Equal(t, "Balasto", first.Eq(0).Text())
	assert.Equal(t, "IAL", first.Eq(2).Text())
	assert.Equal(t, "40.07120, -2.13540", first.Eq(4).Text())
	second := rows.Eq(1).Find("td")
	assert.Equal(t, "N/A", second.Eq(4).Text())

	assert.Equal(t, 0, d.Find("#summary").Length(), "no summary block without aiSummary")
	assert.Contains(t, d.Find("#map").Text(), maps.UnavailableMessage)
}

func TestRenderReportEmptyNotes(t *testing.T) {
	tr := trip.SampleTrip()
	tr.Anomalies[1].Notes = ""
	doc, err := RenderReport(tr, Options{})
	require.NoError(t, err)
	cells := parse(t, doc).Find("table#anomalies tbody tr").Eq(1).Find("td")
	assert.Equal(t, "---", cells.Eq(5).Text())
}

func TestRenderReportPhotoGalleryOrder(t *testing.T) {
	tr := trip.SampleTrip()
	tr.Anomalies = append(tr.Anomalies, trip.Anomaly{ID: "c", Element: "Puentes", Defect: "Deficiente estado apreciable", Level: catalog.SeverityIAL, PK: "150"})
	tr.Anomalies[0].Photo = pngURI
	tr.Anomalies[2].Photo = pngURI
	tr.Anomalies[1].Photo = `javascript:alert(1)`

	doc, err := RenderReport(tr, Options{})
	require.NoError(t, err)
	d := parse(t, doc)

	photos := d.Find("#photos .photo-container")
	require.Equal(t, 2, photos.Length())
	src, _ := photos.Eq(0).Find("img").Attr("src")
	assert.Equal(t, pngURI, src)
	assert.Equal(t, "Insuficiencia de balasto (Balasto) en PK 45.2", photos.Eq(0).Find("p").Text())
	assert.Equal(t, "Deficiente estado apreciable (Puentes) en PK 150", photos.Eq(1).Find("p").Text())
	assert.NotContains(t, doc, "javascript:alert")
}

func TestRenderReportMapLink(t *testing.T) {
	link, ok := maps.Link("key", maps.Points(trip.SampleTrip().Anomalies))
	require.True(t, ok)

	doc, err := RenderReport(trip.SampleTrip(), Options{MapURL: link})
	require.NoError(t, err)
	href, exists := parse(t, doc).Find("#map a").Attr("href")
	require.True(t, exists)
	assert.Equal(t, link, href)
}

func TestRenderReportControls(t *testing.T) {
	tr := trip.SampleTrip()
	doc, err := RenderReport(tr, Options{})
	require.NoError(t, err)
	d := parse(t, doc)

	onclick, _ := d.Find("#print").Attr("onclick")
	assert.Equal(t, "window.print()", onclick)

	href, _ := d.Find("#email").Attr("href")
	require.True(t, strings.HasPrefix(href, "mailto:?subject="))
	u, err := url.Parse(href)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "Informe de Viaje en Cabina - VC_2024_09_07_demo1", q.Get("subject"))

	body, err := RenderEmailBody(tr)
	require.NoError(t, err)
	assert.Equal(t, body, q.Get("body"))

	logo, _ := d.Find(".header img").Attr("src")
	assert.True(t, strings.HasPrefix(logo, "data:image/svg+xml;base64,"))
}

func TestRenderEmailBody(t *testing.T) {
	tr := trip.SampleTrip()
	body, err := RenderEmailBody(tr)
	require.NoError(t, err)
	assert.NotContains(t, body, "40.07120")
	assert.NotContains(t, body, PhotoNote)
	assert.Contains(t, body, "07/09/2024")

	tr.Anomalies[0].Photo = pngURI
	tr.AISummary = "Resumen <b>breve</b>"
	body, err = RenderEmailBody(tr)
	require.NoError(t, err)
	assert.Contains(t, body, PhotoNote)
	assert.NotContains(t, body, "base64")
	assert.Contains(t, body, "Resumen &lt;b&gt;breve&lt;/b&gt;")
}

func TestMailtoHrefEscapesCode(t *testing.T) {
	href := MailtoHref("A&B", "x y")
	assert.Equal(t, "mailto:?subject=Informe%20de%20Viaje%20en%20Cabina%20-%20A%26amp%3BB&body=x%20y", href)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "31/12/2024", FormatDate("2024-12-31"))
	assert.Equal(t, "ayer", FormatDate("ayer"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Informe_VC_2024_09_07_demo1.html", FileName("VC_2024_09_07_demo1"))
	assert.Equal(t, "Informe_a_b.html", FileName("a/ b"))
	assert.Equal(t, "Informe_viaje.html", FileName(""))
}

func TestWriteFileAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", FileName("VC_x"))
	require.NoError(t, WriteFile(path, "<html></html>"))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(b))

	orig := startCommand
	t.Cleanup(func() { startCommand = orig })

	var gotArgs []string
	startCommand = func(name string, args ...string) error {
		gotArgs = append([]string{name}, args...)
		return nil
	}
	require.NoError(t, Open(path))
	assert.Equal(t, path, gotArgs[len(gotArgs)-1])

	startCommand = func(string, ...string) error { return errors.New("no browser") }
	err = Open(path)
	require.Error(t, err)
	assert.Contains(t, OpenFailureMessage(path), path)
}

func TestPublisherWritesReportUnderDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "informes")
	tr := trip.SampleTrip()

	path, err := Publisher{Dir: dir, MapsKey: "key"}.Publish(tr)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName(tr.Code)), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := parse(t, string(b))
	_, hasLink := doc.Find("#map a").Attr("href")
	assert.True(t, hasLink)

	path, err = Publisher{Dir: dir}.Publish(tr)
	require.NoError(t, err)
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Google Maps no está configurada")
}

func TestPublisherPublishToExplicitPath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "otro", "viaje.html")
	tr := trip.SampleTrip()

	path, err := Publisher{Dir: "ignored", MapsKey: "key"}.PublishTo(tr, out)
	require.NoError(t, err)
	assert.Equal(t, out, path)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	doc := parse(t, string(b))
	_, hasLink := doc.Find("#map a").Attr("href")
	assert.True(t, hasLink)
	assert.Contains(t, string(b), tr.Code)
}
