package speech

import "errors"

// Capture error kinds, classified from the underlying device or recognition
// failure.
var (
	ErrNoSpeech     = errors.New("no-speech")
	ErrAudioCapture = errors.New("audio-capture")
	ErrNotAllowed   = errors.New("not-allowed")
)

// UserMessage maps a capture error to the message shown to the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoSpeech):
		return "No speech detected. Please speak clearly into your microphone."
	case errors.Is(err, ErrAudioCapture):
		return "Could not start audio capture. Please check your microphone."
	case errors.Is(err, ErrNotAllowed):
		return "Microphone access denied. Please enable microphone permissions."
	default:
		return "Error with speech recognition. Please check your microphone settings."
	}
}
