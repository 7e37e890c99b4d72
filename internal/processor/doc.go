// Package processor wires the speakeasy services together. It turns the
// effective configuration into a speech engine, playback controller, blog
// fetcher, translator and audio exporter, and hands them to the GUI or to
// the listing commands.
package processor
