package exporter

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/user/lyrexport/pkg/framestore"
)

// posterWidth is the poster thumbnail's target width. Source frames narrower
// than this are kept at their native size.
const posterWidth = 320

// readPosterSource returns the first staged frame's bytes, or nil when it is
// not available.
func (s *Service) readPosterSource(sess *framestore.Session) []byte {
	data, err := s.fs.ReadFile(filepath.Join(sess.FramesDir, framestore.FrameFileName(0)))
	if err != nil {
		return nil
	}
	return data
}

// writePoster scales the first frame down and writes it as a PNG next to the
// final output, named "<output>_poster.png".
func (s *Service) writePoster(src []byte, finalPath string) error {
	if len(src) == 0 {
		return nil
	}

	img, err := png.Decode(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("decode poster source: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width > posterWidth {
		height = height * posterWidth / width
		width = posterWidth
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("poster source has empty bounds")
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return fmt.Errorf("encode poster: %w", err)
	}

	posterPath := strings.TrimSuffix(finalPath, filepath.Ext(finalPath)) + "_poster.png"
	if err := s.fs.WriteFile(posterPath, buf.Bytes()); err != nil {
		return fmt.Errorf("write poster: %w", err)
	}
	return nil
}
