package ffmpegcli

import "errors"

var (
	// ErrFFmpegNotFound is returned when no usable ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpegcli: ffmpeg not found")

	// ErrEncodeFailed is returned when ffmpeg exits with a non-zero status.
	// The wrapped message carries the captured diagnostic output.
	ErrEncodeFailed = errors.New("ffmpegcli: encoding failed")

	// ErrCancelled is returned when the child process was terminated by request.
	ErrCancelled = errors.New("ffmpegcli: cancelled")

	// ErrBusy is returned when an encode is requested while a child process
	// is already running.
	ErrBusy = errors.New("ffmpegcli: encoder busy")
)
