// Package translation translates text into one of the supported target
// languages. Three providers are available: the free Google Translate web
// endpoint (default), OpenAI chat completions and Gemini. Every provider is
// wrapped in a circuit breaker that fails fast after repeated errors; there
// are no retries.
package translation
