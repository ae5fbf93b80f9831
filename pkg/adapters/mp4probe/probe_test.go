package mp4probe

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Eyevinn/mp4ff/mp4"
)

// buildVideoInit builds a minimal init segment with one video track.
func buildVideoInit(t *testing.T, width, height int) []byte {
	t.Helper()

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(30000, "video", "en")

	trak := init.Moov.Trak
	trak.Tkhd.Width = mp4.Fixed32(width << 16)
	trak.Tkhd.Height = mp4.Fixed32(height << 16)

	var buf bytes.Buffer
	if err := init.Encode(&buf); err != nil {
		t.Fatalf("encode init segment: %v", err)
	}
	return buf.Bytes()
}

func TestReader_VideoTrackGeometry(t *testing.T) {
	data := buildVideoInit(t, 1280, 720)

	info, err := Reader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Reader failed: %v", err)
	}
	if info.Width != 1280 || info.Height != 720 {
		t.Errorf("geometry = %dx%d, want 1280x720", info.Width, info.Height)
	}
}

func TestReader_NoVideoTrack(t *testing.T) {
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(48000, "audio", "en")

	var buf bytes.Buffer
	if err := init.Encode(&buf); err != nil {
		t.Fatalf("encode init segment: %v", err)
	}

	_, err := Reader(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrNoVideoTrack) {
		t.Errorf("expected ErrNoVideoTrack, got %v", err)
	}
}

func TestReader_Garbage(t *testing.T) {
	_, err := Reader(bytes.NewReader([]byte("not an mp4 file at all......")))
	if err == nil {
		t.Error("expected an error for non-mp4 input")
	}
}
