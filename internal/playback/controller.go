package playback

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Engine speaks one utterance and blocks until it is done or ctx is cancelled
type Engine interface {
	Speak(ctx context.Context, text string) error
}

type (
	speakMsg     struct{ chunks []string }
	pauseMsg     struct{}
	resumeMsg    struct{}
	stopMsg      struct{}
	snapshotMsg  struct{ reply chan Snapshot }
	callbacksMsg struct {
		onStateChange func(StateType)
		onFinish      func(Result)
	}
)

// Controller owns the utterance queue and the playback state machine
type Controller struct {
	engine Engine

	inbox     chan any
	utterDone chan error
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	// Owned by the run goroutine
	state    StateType
	queue    []string
	current  string
	inFlight bool
	cancel   context.CancelFunc
	spoken   int

	onStateChange func(StateType)
	onFinish      func(Result)
}

// NewController creates a controller and starts its goroutine
func NewController(engine Engine) *Controller {
	c := &Controller{
		engine:    engine,
		inbox:     make(chan any),
		utterDone: make(chan error, 1),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		state:     StateIdle,
	}
	go c.run()
	return c
}

// Speak replaces the pending queue with the sentences of text and starts
// speaking if idle
func (c *Controller) Speak(text string) {
	c.send(speakMsg{chunks: SplitSentences(text)})
}

// Pause stops playback before the next utterance. No effect unless playing.
func (c *Controller) Pause() {
	c.send(pauseMsg{})
}

// Resume continues a paused run. No effect unless paused.
func (c *Controller) Resume() {
	c.send(resumeMsg{})
}

// Stop clears the queue and cancels the utterance in flight
func (c *Controller) Stop() {
	c.send(stopMsg{})
}

// SetCallbacks registers the state change and run outcome callbacks. Both are
// called from the controller goroutine and must not call back into it
// synchronously.
func (c *Controller) SetCallbacks(onStateChange func(StateType), onFinish func(Result)) {
	c.send(callbacksMsg{onStateChange: onStateChange, onFinish: onFinish})
}

// Snapshot returns the current state. After Close it reports idle.
func (c *Controller) Snapshot() Snapshot {
	reply := make(chan Snapshot, 1)
	if !c.send(snapshotMsg{reply: reply}) {
		return Snapshot{State: StateIdle}
	}
	return <-reply
}

// Close cancels any utterance and stops the controller goroutine
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		close(c.quit)
	})
	<-c.done
}

// send delivers msg to the controller goroutine; false once closed
func (c *Controller) send(msg any) bool {
	select {
	case c.inbox <- msg:
		return true
	case <-c.done:
		return false
	}
}

func (c *Controller) run() {
	defer close(c.done)

	for {
		select {
		case <-c.quit:
			if c.cancel != nil {
				c.cancel()
			}
			return

		case msg := <-c.inbox:
			c.handle(msg)

		case err := <-c.utterDone:
			c.utteranceFinished(err)
		}
	}
}

func (c *Controller) handle(msg any) {
	switch m := msg.(type) {
	case speakMsg:
		c.queue = m.chunks
		if c.state == StateIdle && len(c.queue) > 0 {
			c.spoken = 0
			c.setState(StatePlaying)
			c.startNext()
		}

	case pauseMsg:
		if c.state == StatePlaying {
			c.setState(StatePaused)
		}

	case resumeMsg:
		if c.state != StatePaused {
			return
		}
		c.setState(StatePlaying)
		if !c.inFlight {
			if len(c.queue) == 0 {
				c.finish(Result{Spoken: c.spoken})
				return
			}
			c.startNext()
		}

	case stopMsg:
		if c.state == StateIdle || c.state == StateStopping {
			c.queue = nil
			return
		}
		c.queue = nil
		if c.inFlight {
			c.setState(StateStopping)
			c.cancel()
			return
		}
		c.finish(Result{Spoken: c.spoken, Stopped: true})

	case snapshotMsg:
		m.reply <- Snapshot{
			State:   c.state,
			Current: c.current,
			Pending: append([]string(nil), c.queue...),
		}

	case callbacksMsg:
		c.onStateChange = m.onStateChange
		c.onFinish = m.onFinish
	}
}

// startNext pops the queue head and speaks it in its own goroutine
func (c *Controller) startNext() {
	text := c.queue[0]
	c.queue = c.queue[1:]

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.current = text
	c.inFlight = true

	log.Debug("Speaking utterance", "text", text, "pending", len(c.queue))

	go func() {
		c.utterDone <- c.speak(ctx, text)
	}()
}

// speak calls the engine, turning a panic into an error
func (c *Controller) speak(ctx context.Context, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("speech engine panic: %v", r)
		}
	}()
	return c.engine.Speak(ctx, text)
}

func (c *Controller) utteranceFinished(err error) {
	c.inFlight = false
	c.current = ""
	c.cancel()
	c.cancel = nil

	switch {
	case c.state == StateStopping:
		c.finish(Result{Spoken: c.spoken, Stopped: true})
		// A Speak arrived while the cancelled utterance was winding down
		if len(c.queue) > 0 {
			c.spoken = 0
			c.setState(StatePlaying)
			c.startNext()
		}

	case err != nil:
		log.Warn("Speech failed", "error", err)
		c.queue = nil
		c.finish(Result{Spoken: c.spoken, Err: err})

	default:
		c.spoken++
		if len(c.queue) == 0 {
			c.finish(Result{Spoken: c.spoken})
			return
		}
		if c.state == StatePlaying {
			c.startNext()
		}
	}
}

// finish returns to idle and reports the run outcome
func (c *Controller) finish(result Result) {
	c.setState(StateIdle)
	if c.onFinish != nil {
		c.onFinish(result)
	}
}

func (c *Controller) setState(to StateType) {
	if c.state == to {
		return
	}
	if !canTransition(c.state, to) {
		log.Error("Invalid playback transition", "from", c.state, "to", to)
		return
	}

	log.Debug("Playback state", "from", c.state, "to", to)
	c.state = to
	if c.onStateChange != nil {
		c.onStateChange(to)
	}
}
