package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// TextArea is the word-wrapped multi-line entry holding the working text.
// Escape calls the handler set with SetOnEscape instead of reaching the entry.
type TextArea struct {
	widget.Entry
	onEscape func()
}

// NewTextArea creates the text area
func NewTextArea() *TextArea {
	entry := &TextArea{}
	entry.MultiLine = true
	entry.Wrapping = fyne.TextWrapWord
	entry.SetPlaceHolder("Type text here, or fetch a blog post above...")
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedKey handles key events
func (e *TextArea) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(key)
}

// SetOnEscape sets the callback for when Escape is pressed
func (e *TextArea) SetOnEscape(f func()) {
	e.onEscape = f
}

// URLEntry is the single-line blog URL field
type URLEntry struct {
	widget.Entry
	onEscape func()
}

// NewURLEntry creates the URL field; Enter calls onSubmit
func NewURLEntry(onSubmit func()) *URLEntry {
	entry := &URLEntry{}
	entry.SetPlaceHolder("https://example.com/blog/post")
	entry.OnSubmitted = func(string) {
		if onSubmit != nil {
			onSubmit()
		}
	}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedKey handles key events
func (e *URLEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(key)
}

// SetOnEscape sets the callback for when Escape is pressed
func (e *URLEntry) SetOnEscape(f func()) {
	e.onEscape = f
}
