// Package playback reads text aloud one sentence at a time.
//
// A Controller is an actor: a single goroutine owns the utterance queue and
// the playback state, and every public method is a message to it. At most
// one utterance is handed to the Engine at any time. Pause takes effect
// between utterances; Stop cancels the utterance in flight.
//
//	c := playback.NewController(engine)
//	defer c.Close()
//	c.SetCallbacks(onState, onFinish)
//	c.Speak("Hello. World.")
package playback
