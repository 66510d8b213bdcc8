package photo

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jbonatakis/cabinlog/internal/trip"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	// Deliberately misleading extension: the type is sniffed from content.
	path := filepath.Join(t.TempDir(), "photo.dat")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
	return path
}

func decodeURI(t *testing.T, uri string) (string, image.Config) {
	t.Helper()
	meta, payload, ok := strings.Cut(uri, ",")
	if !ok {
		t.Fatalf("not a data uri: %.40s", uri)
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("decode image: %v", err)
	}
	return meta + "|" + format, cfg
}

func TestLoadPNGUntouched(t *testing.T) {
	uri, err := Load(writePNG(t, 40, 30), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %.40s", uri)
	}
	if !trip.IsImageDataURI(uri) {
		t.Fatalf("result must be accepted as an anomaly photo")
	}
	_, cfg := decodeURI(t, uri)
	if cfg.Width != 40 || cfg.Height != 30 {
		t.Fatalf("size = %dx%d, want 40x30", cfg.Width, cfg.Height)
	}
}

func TestLoadDownscalesKeepingAspect(t *testing.T) {
	uri, err := Load(writePNG(t, 200, 100), Options{MaxDimension: 50})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	kind, cfg := decodeURI(t, uri)
	if kind != "data:image/png;base64|png" {
		t.Fatalf("png should stay png, got %s", kind)
	}
	if cfg.Width != 50 || cfg.Height != 25 {
		t.Fatalf("size = %dx%d, want 50x25", cfg.Width, cfg.Height)
	}
}

func TestLoadSmallImageNotReencoded(t *testing.T) {
	path := writePNG(t, 10, 10)
	raw, _ := os.ReadFile(path)
	uri, err := Load(path, Options{MaxDimension: 100})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if uri != "data:image/png;base64,"+base64.StdEncoding.EncodeToString(raw) {
		t.Fatalf("small image should be stored byte for byte")
	}
}

func TestEncodeGIFBecomesJPEGWhenResized(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 80, 40), []color.Color{color.White, color.Black})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	uri, err := Encode(buf.Bytes(), Options{MaxDimension: 20})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/jpeg;base64,") {
		t.Fatalf("resized gif should be jpeg: %.40s", uri)
	}
}

func TestLoadRejectsNonImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("just some text, not a picture"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path, Options{})
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.jpg"), Options{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
