package translation

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sony/gobreaker"
)

// breakerTranslator fails fast while the wrapped provider keeps failing
type breakerTranslator struct {
	next Translator
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next in a circuit breaker that opens after three
// consecutive failures and probes again after 30 seconds
func NewBreaker(next Translator) Translator {
	settings := gobreaker.Settings{
		Name:    next.Name(),
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			// Cancellation says nothing about the service's health
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrEmptyText)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Translation circuit breaker", "provider", name, "from", from.String(), "to", to.String())
		},
	}

	return &breakerTranslator{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the wrapped provider's name
func (b *breakerTranslator) Name() string {
	return b.next.Name()
}

// Translate calls the wrapped provider unless the breaker is open
func (b *breakerTranslator) Translate(ctx context.Context, text, targetCode string) (string, error) {
	if _, err := checkText(text); err != nil {
		return "", err
	}

	log.Info("Translating", "provider", b.next.Name(), "target", targetCode, "chars", len(text))

	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, text, targetCode)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}
