package framestore

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"
)

const (
	// maxDimension bounds frame width and height.
	maxDimension = 8192

	// minFrameFileBytes rejects corrupt near-empty output.
	minFrameFileBytes = 64

	encodeAttempts = 5
	encodeBackoff  = 200 * time.Millisecond
)

// SaveFrame validates a raw RGBA buffer, encodes it as PNG, and writes it
// under frameName in the session's frames directory. The file becomes visible
// under its canonical name only once fully durable: the store writes and syncs
// a uniquely named temp file, then renames it into place. The written file is
// then re-opened and verified against the request.
func (s *Store) SaveFrame(sessionID, frameName string, pixels []byte, width, height int) (string, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return "", err
	}

	if width <= 0 || width > maxDimension || height <= 0 || height > maxDimension {
		return "", fmt.Errorf("%w: dimensions %dx%d out of range (0, %d]", ErrValidation, width, height, maxDimension)
	}
	if expected := width * height * 4; len(pixels) != expected {
		return "", fmt.Errorf("%w: payload %d bytes, want %d for %dx%d RGBA", ErrValidation, len(pixels), expected, width, height)
	}

	img := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	data, err := encodeWithRetry(encodePNG, img, encodeAttempts, encodeBackoff, time.Sleep)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrFrameWrite, err)
	}

	finalPath := filepath.Join(sess.FramesDir, frameName)
	tmpPath := finalPath + "." + uuid.NewString() + ".tmp"

	if err := s.fs.WriteFileSync(tmpPath, data); err != nil {
		_ = s.fs.Remove(tmpPath)
		return "", fmt.Errorf("%w: %s", ErrFrameWrite, err)
	}
	if err := s.fs.Rename(tmpPath, finalPath); err != nil {
		_ = s.fs.Remove(tmpPath)
		return "", fmt.Errorf("%w: %s", ErrFrameWrite, err)
	}

	if err := s.verifyFrame(finalPath, width, height); err != nil {
		_ = s.fs.Remove(finalPath)
		return "", err
	}

	s.touch(sessionID)
	s.log.Debug(l10n.F("Saved frame %s (%dx%d)", frameName, width, height))
	return finalPath, nil
}

// verifyFrame re-opens a written frame and checks size, dimensions, and
// channel depth against the request.
func (s *Store) verifyFrame(path string, width, height int) error {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reopen: %s", ErrVerification, err)
	}
	if len(data) < minFrameFileBytes {
		return fmt.Errorf("%w: %d bytes below floor of %d", ErrVerification, len(data), minFrameFileBytes)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: decode: %s", ErrVerification, err)
	}
	if cfg.Width != width || cfg.Height != height {
		return fmt.Errorf("%w: decoded %dx%d, want %dx%d", ErrVerification, cfg.Width, cfg.Height, width, height)
	}
	if !is8BitColor(cfg.ColorModel) {
		return fmt.Errorf("%w: unexpected color model", ErrVerification)
	}

	return nil
}

// is8BitColor accepts the 8-bit-per-channel models the PNG encoder produces
// for RGBA input.
func is8BitColor(m color.Model) bool {
	switch m {
	case color.RGBAModel, color.NRGBAModel:
		return true
	default:
		return false
	}
}
