// Package media prepares evidence attachments for submission.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/png"
)

const (
	// MaxFileBytes rejects oversized uploads before any decode work.
	MaxFileBytes = 20 << 20
	// MaxFiles caps attachments per report.
	MaxFiles = 10

	maxImageWidth = 1000
	jpegQuality   = 70
)

// Blob is one evidence attachment as received from the client.
type Blob struct {
	Name string `json:"name"`
	MIME string `json:"mime"`
	Data []byte `json:"data"`
}

// ValidateBatch enforces per-file size, batch count and duplicate rules.
func ValidateBatch(blobs []Blob) error {
	if len(blobs) > MaxFiles {
		return fmt.Errorf("cannot attach more than %d files", MaxFiles)
	}
	seen := make(map[string]struct{}, len(blobs))
	for _, b := range blobs {
		if len(b.Data) == 0 {
			return fmt.Errorf("file %q is empty", b.Name)
		}
		if len(b.Data) > MaxFileBytes {
			return fmt.Errorf("file %q exceeds %dMB", b.Name, MaxFileBytes>>20)
		}
		dup := fmt.Sprintf("%s|%d", b.Name, len(b.Data))
		if _, ok := seen[dup]; ok {
			return fmt.Errorf("file %q attached twice", b.Name)
		}
		seen[dup] = struct{}{}
	}
	return nil
}

// EncodeForSubmission converts attachments to the data-URL strings the
// backend expects. Videos pass through untouched; images are downscaled
// to maxImageWidth and re-encoded as JPEG.
func EncodeForSubmission(blobs []Blob) ([]string, error) {
	out := make([]string, 0, len(blobs))
	for _, b := range blobs {
		if strings.Contains(b.MIME, "video") {
			out = append(out, dataURL(b.MIME, b.Data))
			continue
		}
		encoded, err := compressImage(b)
		if err != nil {
			return nil, fmt.Errorf("compress %q: %w", b.Name, err)
		}
		out = append(out, encoded)
	}
	return out, nil
}

func compressImage(b Blob) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(b.Data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return dataURL("image/jpeg", buf.Bytes()), nil
}

func dataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
