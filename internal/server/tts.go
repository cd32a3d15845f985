package server

import "context"

// SpeechSynthesizer turns a response sentence into audio for the websocket
// transport. English responses only; Korean clients read text.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// NoopSynthesizer is used when no TTS backend is configured. It produces no
// audio, which callers treat as "skip the audio frames".
type NoopSynthesizer struct{}

func (NoopSynthesizer) Synthesize(context.Context, string) ([]byte, error) {
	return nil, nil
}
