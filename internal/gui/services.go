package gui

import (
	"context"

	"codeberg.org/snonux/speakeasy/internal/audio"
	"codeberg.org/snonux/speakeasy/internal/playback"
	"codeberg.org/snonux/speakeasy/internal/translation"
)

// Speaker is the playback controller as seen by the UI
type Speaker interface {
	Speak(text string)
	Pause()
	Resume()
	Stop()
	SetCallbacks(onStateChange func(playback.StateType), onFinish func(playback.Result))
	Close()
}

// VoiceEngine is the part of the speech engine the customization controls drive
type VoiceEngine interface {
	Voices() []audio.Voice
	SetRate(wpm int)
	SetVoice(id string)
}

// Fetcher downloads blog text
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Exporter writes text to an audio file
type Exporter interface {
	Export(ctx context.Context, text, path string) error
	Language() string
}

// Services holds everything the UI calls out to. All fields are required.
type Services struct {
	Engine     VoiceEngine
	Controller Speaker
	Fetcher    Fetcher
	Translator translation.Translator
	Exporter   Exporter
}
