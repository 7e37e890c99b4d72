package gui

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

// AudioPlayer previews the last exported file with a system audio player
type AudioPlayer struct {
	widget.BaseWidget

	container   *fyne.Container
	playButton  *ttwidget.Button
	stopButton  *ttwidget.Button
	statusLabel *widget.Label

	mu        sync.Mutex
	audioFile string
	playCmd   *exec.Cmd
}

// NewAudioPlayer creates a new audio player widget
func NewAudioPlayer() *AudioPlayer {
	p := &AudioPlayer{}

	p.playButton = ttwidget.NewButtonWithIcon("", theme.MediaPlayIcon(), p.onPlay)
	p.stopButton = ttwidget.NewButtonWithIcon("", theme.MediaStopIcon(), p.onStop)
	p.statusLabel = widget.NewLabel("No saved audio")

	p.playButton.Disable()
	p.stopButton.Disable()

	p.container = container.NewHBox(
		p.playButton,
		p.stopButton,
		layout.NewSpacer(),
		p.statusLabel,
	)

	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer implements fyne.Widget
func (p *AudioPlayer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.container)
}

// setupTooltips must run after the window tooltip layer exists
func (p *AudioPlayer) setupTooltips() {
	p.playButton.SetToolTip("Play saved audio")
	p.stopButton.SetToolTip("Stop saved audio")
}

// SetAudioFile loads a file for preview
func (p *AudioPlayer) SetAudioFile(audioFile string) {
	if audioFile == "" {
		p.Clear()
		return
	}

	p.stop()
	p.mu.Lock()
	p.audioFile = audioFile
	p.mu.Unlock()

	p.playButton.Enable()
	p.stopButton.Disable()
	p.statusLabel.SetText("Saved: " + filepath.Base(audioFile))
}

// AudioFile returns the loaded file, empty if none
func (p *AudioPlayer) AudioFile() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.audioFile
}

// Clear stops playback and unloads the file
func (p *AudioPlayer) Clear() {
	p.stop()
	p.mu.Lock()
	p.audioFile = ""
	p.mu.Unlock()

	p.playButton.Disable()
	p.stopButton.Disable()
	p.statusLabel.SetText("No saved audio")
}

func (p *AudioPlayer) onPlay() {
	file := p.AudioFile()
	if file == "" {
		return
	}

	p.stop()
	cmd, err := playerCommand(runtime.GOOS, file, exec.LookPath)
	if err != nil {
		p.statusLabel.SetText(fmt.Sprintf("Error: %v", err))
		return
	}
	if err := cmd.Start(); err != nil {
		p.statusLabel.SetText(fmt.Sprintf("Error: %v", err))
		return
	}

	p.mu.Lock()
	p.playCmd = cmd
	p.mu.Unlock()

	p.stopButton.Enable()
	p.statusLabel.SetText("Playing: " + filepath.Base(file))
	log.Debug("Previewing saved audio", "file", file, "player", cmd.Path)

	go func() {
		err := cmd.Wait()

		p.mu.Lock()
		current := p.playCmd == cmd
		if current {
			p.playCmd = nil
		}
		p.mu.Unlock()

		// A newer playback or an explicit stop owns the labels
		if !current {
			return
		}
		fyne.Do(func() {
			p.stopButton.Disable()
			if err != nil {
				p.statusLabel.SetText(fmt.Sprintf("Player failed: %v", err))
				return
			}
			p.statusLabel.SetText("Finished: " + filepath.Base(file))
		})
	}()
}

func (p *AudioPlayer) onStop() {
	p.stop()
	p.stopButton.Disable()
	if file := p.AudioFile(); file != "" {
		p.statusLabel.SetText("Stopped: " + filepath.Base(file))
	}
}

// stop kills the running player process, if any
func (p *AudioPlayer) stop() {
	p.mu.Lock()
	cmd := p.playCmd
	p.playCmd = nil
	p.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		cmd.Process.Kill()
	}
}

// playerCommand picks a command line player for the platform
func playerCommand(goos, file string, lookPath func(string) (string, error)) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("afplay", file), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "/min", file), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		// mpg123 first since it handles MP3 files best
		candidates := [][]string{
			{"mpg123", "-q"},
			{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
			{"play", "-q"},
			{"paplay"},
			{"aplay", "-q"},
		}
		for _, c := range candidates {
			if _, err := lookPath(c[0]); err == nil {
				return exec.Command(c[0], append(c[1:], file)...), nil
			}
		}
		return nil, fmt.Errorf("no audio player found. Install mpg123, ffplay, sox, paplay, or aplay")
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
