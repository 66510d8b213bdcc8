// Package photo turns image files into data URIs suitable for inline storage.
package photo

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

var ErrNotImage = errors.New("file is not an image")

const jpegQuality = 85

type Options struct {
	// MaxDimension bounds the longer side in pixels. Zero leaves images untouched.
	MaxDimension int
}

// Load reads the image at path and returns it as a base64 data URI. The MIME type is
// sniffed from the content, not the extension.
func Load(path string, opts Options) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read photo %s: %w", path, err)
	}
	return Encode(b, opts)
}

// Encode is Load for bytes already in memory.
func Encode(b []byte, opts Options) (string, error) {
	mime := mimetype.Detect(b)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime.String())
	}
	mimeType := mime.String()

	if opts.MaxDimension > 0 {
		if format, ok := resizableFormat(mimeType); ok {
			out, resized, err := downscale(b, opts.MaxDimension, format)
			if err != nil {
				return "", err
			}
			if resized {
				b = out
				if format == imaging.JPEG {
					mimeType = "image/jpeg"
				}
			}
		}
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

// resizableFormat maps decodable types to their output format. PNG stays PNG;
// everything else becomes JPEG.
func resizableFormat(mimeType string) (imaging.Format, bool) {
	switch mimeType {
	case "image/png":
		return imaging.PNG, true
	case "image/jpeg", "image/gif", "image/bmp", "image/tiff":
		return imaging.JPEG, true
	default:
		return 0, false
	}
}

func downscale(b []byte, max int, format imaging.Format) ([]byte, bool, error) {
	img, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	if err != nil {
		return nil, false, fmt.Errorf("decode photo: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= max && bounds.Dy() <= max {
		return nil, false, nil
	}
	fitted := imaging.Fit(img, max, max, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, false, fmt.Errorf("encode photo: %w", err)
	}
	return buf.Bytes(), true, nil
}
