package framestore

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"
)

// encodeFunc converts a frame image into a durable compressed format.
type encodeFunc func(img *image.RGBA) ([]byte, error)

// encodePNG is the production encoder.
func encodePNG(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeWithRetry runs enc up to attempts times with a fixed backoff between
// tries. There is no degraded fallback: if encoding never succeeds the save
// fails rather than emitting a corrupt frame.
func encodeWithRetry(enc encodeFunc, img *image.RGBA, attempts int, backoff time.Duration, sleep func(time.Duration)) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		data, err := enc(img)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if attempt < attempts {
			sleep(backoff)
		}
	}
	return nil, fmt.Errorf("image encode failed after %d attempts: %w", attempts, lastErr)
}
