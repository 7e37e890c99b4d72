package testutil

import (
	"context"
	"os"
	"sync"

	"codeberg.org/snonux/speakeasy/internal/audio"
	"codeberg.org/snonux/speakeasy/internal/playback"
)

// MockSpeaker records playback commands instead of speaking
type MockSpeaker struct {
	mu sync.Mutex

	Spoken  []string
	Pauses  int
	Resumes int
	Stops   int
	Closed  bool

	onStateChange func(playback.StateType)
	onFinish      func(playback.Result)
}

// Speak records the text
func (m *MockSpeaker) Speak(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Spoken = append(m.Spoken, text)
}

// Pause counts the call
func (m *MockSpeaker) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pauses++
}

// Resume counts the call
func (m *MockSpeaker) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resumes++
}

// Stop counts the call
func (m *MockSpeaker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stops++
}

// Close marks the speaker closed
func (m *MockSpeaker) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}

// SetCallbacks stores the callbacks so tests can fire them
func (m *MockSpeaker) SetCallbacks(onStateChange func(playback.StateType), onFinish func(playback.Result)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStateChange = onStateChange
	m.onFinish = onFinish
}

// EmitState calls the registered state callback
func (m *MockSpeaker) EmitState(state playback.StateType) {
	m.mu.Lock()
	fn := m.onStateChange
	m.mu.Unlock()
	if fn != nil {
		fn(state)
	}
}

// EmitFinish calls the registered finish callback
func (m *MockSpeaker) EmitFinish(result playback.Result) {
	m.mu.Lock()
	fn := m.onFinish
	m.mu.Unlock()
	if fn != nil {
		fn(result)
	}
}

// MockEngine records speech engine settings
type MockEngine struct {
	mu sync.Mutex

	VoiceList []audio.Voice
	Rate      int
	Voice     string
	Volume    float64
}

// Voices returns VoiceList
func (m *MockEngine) Voices() []audio.Voice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]audio.Voice(nil), m.VoiceList...)
}

// SetRate records the rate
func (m *MockEngine) SetRate(rate int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rate = rate
}

// SetVoice records the voice
func (m *MockEngine) SetVoice(voice string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Voice = voice
}

// SetVolume records the volume
func (m *MockEngine) SetVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Volume = volume
}

// Settings returns the recorded rate and voice
func (m *MockEngine) Settings() (int, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Rate, m.Voice
}

// MockFetcher returns canned blog text
type MockFetcher struct {
	mu sync.Mutex

	Text string
	Err  error
	URLs []string
}

// Fetch records url and returns Text or Err
func (m *MockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.URLs = append(m.URLs, url)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// TranslateCall is one recorded Translate call
type TranslateCall struct {
	Text       string
	TargetCode string
}

// MockTranslator returns a canned translation
type MockTranslator struct {
	mu sync.Mutex

	Result string
	Err    error
	Calls  []TranslateCall
}

// Translate records the call and returns Result or Err
func (m *MockTranslator) Translate(ctx context.Context, text, targetCode string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, TranslateCall{Text: text, TargetCode: targetCode})
	if m.Err != nil {
		return "", m.Err
	}
	return m.Result, nil
}

// Name returns the provider name
func (m *MockTranslator) Name() string {
	return "mock"
}

// MockExporter writes Data to the requested path
type MockExporter struct {
	mu sync.Mutex

	Data  []byte
	Err   error
	Lang  string
	Paths []string
	Texts []string
}

// Export records the call and writes Data to path
func (m *MockExporter) Export(ctx context.Context, text, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Paths = append(m.Paths, path)
	m.Texts = append(m.Texts, text)
	if m.Err != nil {
		return m.Err
	}
	return os.WriteFile(path, m.Data, 0644)
}

// Language returns Lang, defaulting to "en"
func (m *MockExporter) Language() string {
	if m.Lang == "" {
		return "en"
	}
	return m.Lang
}
