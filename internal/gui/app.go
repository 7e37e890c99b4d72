package gui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/speakeasy/internal"
	"codeberg.org/snonux/speakeasy/internal/audio"
	"codeberg.org/snonux/speakeasy/internal/blog"
	"codeberg.org/snonux/speakeasy/internal/playback"
	"codeberg.org/snonux/speakeasy/internal/translation"
)

// WindowTitle is the main window title
const WindowTitle = "SpeakEasy: Multi-Functional TTS and Blog-to-Audio App"

const (
	// DefaultRate is the speech rate selected on start and after reset
	DefaultRate = 150
	minRate     = 50
	maxRate     = 300

	// defaultShutdownWait bounds how long closing waits for background calls
	defaultShutdownWait = 5 * time.Second
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	urlEntry       *URLEntry
	textArea       *TextArea
	languageSelect *widget.Select
	voiceSelect    *widget.Select
	rateSlider     *widget.Slider
	rateLabel      *widget.Label
	statusLabel    *widget.Label
	audioPlayer    *AudioPlayer
	logViewer      *LogViewer

	convertButton   *ttwidget.Button
	clearURLButton  *ttwidget.Button
	translateButton *ttwidget.Button
	speakButton     *ttwidget.Button
	pauseButton     *ttwidget.Button
	resumeButton    *ttwidget.Button
	saveButton      *ttwidget.Button
	clearTextButton *ttwidget.Button
	resetButton     *ttwidget.Button

	// Themes menu
	mainMenu     *fyne.MainMenu
	lightItem    *fyne.MenuItem
	darkItem     *fyne.MenuItem
	currentTheme string

	// State
	voices       []audio.Voice
	voiceLabels  []string
	translatedTo string // Language code of the last translation, empty if none

	// generation is bumped by reset; fetch and translate results from an
	// older generation are dropped. Only touched on the event thread.
	generation int

	config   *Config
	services Services

	// async runs slow calls off the event thread, do marshals results back
	async func(func())
	do    func(func())

	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	shutdownWait time.Duration
	closeOnce    sync.Once
}

// Config holds GUI application configuration
type Config struct {
	Rate  int    // Initial speech rate in words per minute
	Voice string // Initial voice ID; empty selects the first voice
	Theme string // ThemeLight or ThemeDark
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		Rate:  DefaultRate,
		Theme: ThemeLight,
	}
}

// New creates the GUI application with its own Fyne app
func New(config *Config, services Services) *Application {
	return NewWithApp(app.NewWithID("org.codeberg.snonux.speakeasy"), config, services)
}

// NewWithApp builds the main window inside an existing Fyne app
func NewWithApp(fyneApp fyne.App, config *Config, services Services) *Application {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Rate == 0 {
		config.Rate = DefaultRate
	}

	ctx, cancel := context.WithCancel(context.Background())

	a := &Application{
		app:          fyneApp,
		config:       config,
		services:     services,
		do:           fyne.Do,
		ctx:          ctx,
		cancel:       cancel,
		shutdownWait: defaultShutdownWait,
	}
	a.async = func(f func()) {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			f()
		}()
	}

	a.voices = services.Engine.Voices()
	if len(a.voices) == 0 {
		a.voices = audio.DefaultVoices()
	}
	for _, v := range a.voices {
		a.voiceLabels = append(a.voiceLabels, voiceLabel(v))
	}

	a.setupUI()
	a.setTheme(config.Theme)

	services.Controller.SetCallbacks(
		func(state playback.StateType) {
			a.do(func() { a.setStatus(statusText(state)) })
		},
		func(result playback.Result) {
			a.do(func() { a.onPlaybackFinished(result) })
		},
	)

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(WindowTitle)
	a.window.SetIcon(theme.VolumeUpIcon())
	a.window.Resize(fyne.NewSize(800, 600))

	// Blog row
	a.urlEntry = NewURLEntry(a.onConvertBlog)
	a.urlEntry.SetOnEscape(a.unfocus)
	a.convertButton = ttwidget.NewButtonWithIcon("Convert Blog to Audio", theme.DownloadIcon(), a.onConvertBlog)
	a.clearURLButton = ttwidget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), a.onClearURL)

	blogRow := container.NewBorder(
		nil, nil,
		widget.NewLabel("Blog URL:"),
		container.NewHBox(a.convertButton, a.clearURLButton),
		a.urlEntry,
	)

	// Working text
	a.textArea = NewTextArea()
	a.textArea.SetOnEscape(a.unfocus)
	a.textArea.OnChanged = func(string) {
		a.translatedTo = ""
	}

	// Translation row
	a.languageSelect = widget.NewSelect(translation.LanguageNames(), nil)
	a.languageSelect.SetSelected(translation.DefaultLanguage)
	a.translateButton = ttwidget.NewButtonWithIcon("Translate", theme.ViewRefreshIcon(), a.onTranslate)

	languageRow := container.NewHBox(
		widget.NewLabel("Translate to:"),
		a.languageSelect,
		a.translateButton,
	)

	// Speech controls
	a.speakButton = ttwidget.NewButtonWithIcon("Speak", theme.MediaPlayIcon(), a.onSpeak)
	a.pauseButton = ttwidget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), a.onPause)
	a.resumeButton = ttwidget.NewButtonWithIcon("Resume", theme.MediaSkipNextIcon(), a.onResume)
	a.saveButton = ttwidget.NewButtonWithIcon("Save Audio", theme.DocumentSaveIcon(), a.onSaveAudio)
	a.clearTextButton = ttwidget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), a.onClearText)
	a.resetButton = ttwidget.NewButtonWithIcon("Reset", theme.HistoryIcon(), a.onReset)
	a.resetButton.Importance = widget.DangerImportance

	ttsRow := container.NewHBox(
		a.speakButton,
		a.pauseButton,
		a.resumeButton,
		widget.NewSeparator(),
		a.saveButton,
		a.clearTextButton,
		widget.NewSeparator(),
		a.resetButton,
	)

	// Customization
	a.rateLabel = widget.NewLabel("")
	a.rateSlider = widget.NewSlider(minRate, maxRate)
	a.rateSlider.Step = 1
	a.rateSlider.OnChanged = a.onRateChanged
	a.rateSlider.SetValue(float64(clampRate(a.config.Rate)))
	a.onRateChanged(a.rateSlider.Value)

	a.voiceSelect = widget.NewSelect(a.voiceLabels, a.onVoiceChanged)
	a.voiceSelect.SetSelectedIndex(a.voiceIndex(a.config.Voice))

	customization := container.NewGridWithColumns(2,
		container.NewBorder(nil, nil, a.rateLabel, nil, a.rateSlider),
		container.NewBorder(nil, nil, widget.NewLabel("Voice:"), nil, a.voiceSelect),
	)

	a.audioPlayer = NewAudioPlayer()
	a.logViewer = NewLogViewer()
	a.statusLabel = widget.NewLabel("Ready")
	a.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewBorder(
		container.NewVBox(blogRow, widget.NewSeparator()),
		container.NewVBox(
			languageRow,
			ttsRow,
			customization,
			widget.NewSeparator(),
			a.audioPlayer,
			a.logViewer,
			a.statusLabel,
		),
		nil, nil,
		a.textArea,
	)

	a.setupMenu()

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(a.shutdown)

	a.setupKeyboardShortcuts()
}

func (a *Application) setupMenu() {
	a.lightItem = fyne.NewMenuItem("Light Theme", func() { a.setTheme(ThemeLight) })
	a.darkItem = fyne.NewMenuItem("Dark Theme", func() { a.setTheme(ThemeDark) })
	a.mainMenu = fyne.NewMainMenu(fyne.NewMenu("Themes", a.lightItem, a.darkItem))
	a.window.SetMainMenu(a.mainMenu)
}

// setupTooltips sets up all tooltips after the tooltip layer has been created
func (a *Application) setupTooltips() {
	a.convertButton.SetToolTip("Fetch the blog's paragraphs into the text area")
	a.clearURLButton.SetToolTip("Clear the URL")
	a.translateButton.SetToolTip("Replace the text with its translation (Ctrl+T)")
	a.speakButton.SetToolTip("Read the text aloud (Ctrl+P)")
	a.pauseButton.SetToolTip("Pause after the current sentence")
	a.resumeButton.SetToolTip("Resume reading")
	a.saveButton.SetToolTip("Save the text as an MP3 file (Ctrl+S)")
	a.clearTextButton.SetToolTip("Clear the text")
	a.resetButton.SetToolTip("Stop reading and restore all defaults")
	a.audioPlayer.setupTooltips()
}

func (a *Application) setupKeyboardShortcuts() {
	shortcuts := map[fyne.KeyName]func(){
		fyne.KeyS: a.onSaveAudio,
		fyne.KeyT: a.onTranslate,
		fyne.KeyP: a.onSpeak,
	}
	for key, fn := range shortcuts {
		fn := fn
		a.window.Canvas().AddShortcut(
			&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault},
			func(fyne.Shortcut) { fn() },
		)
	}
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// LogViewer returns the activity log widget so the logger can write to it
func (a *Application) LogViewer() *LogViewer {
	return a.logViewer
}

// shutdown stops playback and waits for running fetch/translate/export calls
func (a *Application) shutdown() {
	a.closeOnce.Do(func() {
		log.Info("Shutting down")
		a.cancel()
		a.services.Controller.Stop()
		a.services.Controller.Close()
		a.audioPlayer.Clear()
		if !waitTimeout(&a.wg, a.shutdownWait) {
			log.Warn("Background calls still running, closing anyway", "waited", a.shutdownWait)
		}
	})
}

// waitTimeout waits for wg and reports false if d elapsed first
func waitTimeout(wg *sync.WaitGroup, d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}

func (a *Application) onConvertBlog() {
	url := strings.TrimSpace(a.urlEntry.Text)

	a.convertButton.Disable()
	a.setStatus("Fetching blog...")
	generation := a.generation

	a.async(func() {
		text, err := a.services.Fetcher.Fetch(a.ctx, url)
		a.do(func() {
			a.convertButton.Enable()
			if generation != a.generation {
				log.Debug("Dropping blog fetched before reset", "url", url)
				return
			}
			if err != nil {
				if !errors.Is(err, blog.ErrEmptyURL) {
					err = fmt.Errorf("Failed to fetch blog: %w", err)
				}
				a.showError(err)
				return
			}
			a.textArea.SetText(text)
			a.setStatus("Blog loaded")
			dialog.ShowInformation("Success", "Blog content loaded. Use Speak to listen or Save Audio to export.", a.window)
		})
	})
}

func (a *Application) onClearURL() {
	a.urlEntry.SetText("")
}

func (a *Application) onTranslate() {
	text := strings.TrimSpace(a.textArea.Text)
	if text == "" {
		return
	}
	language := a.languageSelect.Selected
	code := translation.LanguageCode(language)

	a.translateButton.Disable()
	a.setStatus(fmt.Sprintf("Translating to %s...", language))
	generation := a.generation

	a.async(func() {
		translated, err := a.services.Translator.Translate(a.ctx, text, code)
		a.do(func() {
			a.translateButton.Enable()
			if generation != a.generation {
				log.Debug("Dropping translation finished after reset", "target", code)
				return
			}
			if err != nil {
				a.showError(fmt.Errorf("Translation failed: %w", err))
				return
			}
			a.textArea.SetText(translated)
			a.translatedTo = code
			a.setStatus(fmt.Sprintf("Translated to %s", language))
			dialog.ShowInformation("Success", fmt.Sprintf("Text translated to %s.", language), a.window)
		})
	})
}

func (a *Application) onSpeak() {
	text := strings.TrimSpace(a.textArea.Text)
	if text == "" {
		return
	}
	a.services.Controller.Speak(text)
}

func (a *Application) onPause() {
	a.services.Controller.Pause()
}

func (a *Application) onResume() {
	a.services.Controller.Resume()
}

func (a *Application) onSaveAudio() {
	text := strings.TrimSpace(a.textArea.Text)
	if text == "" {
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if writer == nil {
			return // Cancelled
		}
		path := writer.URI().Path()
		writer.Close()
		a.exportAudio(text, path)
	}, a.window)
	d.SetFileName(a.suggestedFilename())
	d.SetFilter(storage.NewExtensionFileFilter([]string{".mp3"}))
	d.Show()
}

// exportAudio synthesizes text into path in the background
func (a *Application) exportAudio(text, path string) {
	if a.translatedTo != "" && a.translatedTo != a.services.Exporter.Language() {
		log.Warn("Saved audio uses the export language, not the translation language",
			"export_language", a.services.Exporter.Language(), "translated_to", a.translatedTo)
	}

	a.saveButton.Disable()
	a.setStatus("Saving audio...")

	a.async(func() {
		err := a.services.Exporter.Export(a.ctx, text, path)
		a.do(func() {
			a.saveButton.Enable()
			if err != nil {
				removeIfEmpty(path)
				a.showError(fmt.Errorf("Failed to save audio: %w", err))
				return
			}
			a.audioPlayer.SetAudioFile(path)
			a.setStatus("Audio saved")
			dialog.ShowInformation("Success", "Audio saved to "+path, a.window)
		})
	})
}

func (a *Application) suggestedFilename() string {
	if url := strings.TrimSpace(a.urlEntry.Text); url != "" {
		return internal.SuggestAudioFilename(url)
	}
	return internal.DefaultAudioFilename
}

func (a *Application) onClearText() {
	a.textArea.SetText("")
}

// onReset stops playback and restores every control to its default
func (a *Application) onReset() {
	a.generation++
	a.services.Controller.Stop()

	a.textArea.SetText("")
	a.urlEntry.SetText("")
	a.rateSlider.SetValue(DefaultRate)
	a.onRateChanged(DefaultRate)
	a.languageSelect.SetSelected(translation.DefaultLanguage)
	if len(a.voiceLabels) > 0 {
		a.voiceSelect.SetSelectedIndex(0)
		a.services.Engine.SetVoice(a.voices[0].ID)
	}
	a.audioPlayer.Clear()
	a.translatedTo = ""
	a.setStatus("Ready")

	log.Info("Settings reset")
}

func (a *Application) onRateChanged(value float64) {
	rate := int(value)
	a.rateLabel.SetText(fmt.Sprintf("Speech rate: %d", rate))
	a.services.Engine.SetRate(rate)
}

func (a *Application) onVoiceChanged(label string) {
	for i, l := range a.voiceLabels {
		if l == label {
			a.services.Engine.SetVoice(a.voices[i].ID)
			log.Debug("Voice selected", "voice", a.voices[i].ID)
			return
		}
	}
}

// voiceIndex returns the index of the voice with the given ID, or 0
func (a *Application) voiceIndex(id string) int {
	for i, v := range a.voices {
		if v.ID == id {
			return i
		}
	}
	return 0
}

func (a *Application) setTheme(name string) {
	name = normalizeTheme(name)
	a.currentTheme = name
	a.app.Settings().SetTheme(newTheme(name))

	a.lightItem.Checked = name == ThemeLight
	a.darkItem.Checked = name == ThemeDark
	a.mainMenu.Refresh()
}

func (a *Application) onPlaybackFinished(result playback.Result) {
	switch {
	case result.Err != nil:
		a.showError(fmt.Errorf("Speech failed: %w", result.Err))
	case result.Stopped:
		a.setStatus("Stopped")
	default:
		a.setStatus(fmt.Sprintf("Finished speaking (%d sentences)", result.Spoken))
	}
}

func (a *Application) unfocus() {
	a.window.Canvas().Unfocus()
}

func (a *Application) setStatus(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) showError(err error) {
	log.Error("Operation failed", "error", err)
	dialog.ShowError(err, a.window)
	a.setStatus("Error: " + err.Error())
}

func statusText(state playback.StateType) string {
	switch state {
	case playback.StatePlaying:
		return "Speaking..."
	case playback.StatePaused:
		return "Paused"
	case playback.StateStopping:
		return "Stopping..."
	default:
		return "Ready"
	}
}

func voiceLabel(v audio.Voice) string {
	if v.Name == "" || v.Name == v.ID {
		return v.ID
	}
	return fmt.Sprintf("%s (%s)", v.Name, v.ID)
}

func clampRate(rate int) int {
	if rate < minRate {
		return minRate
	}
	if rate > maxRate {
		return maxRate
	}
	return rate
}

// removeIfEmpty deletes the placeholder file a failed export leaves behind
func removeIfEmpty(path string) {
	if info, err := os.Stat(path); err == nil && info.Size() == 0 {
		os.Remove(path)
	}
}
